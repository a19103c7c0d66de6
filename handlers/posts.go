package handlers

import (
	"errors"
	"strconv"
	"time"

	middlewares "github.com/Romain-GUILLEMOT/PlumyrBack/middleware"
	"github.com/Romain-GUILLEMOT/PlumyrBack/models"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils/dbTools"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type PostHandler struct {
	Posts dbTools.PostStore
	Users dbTools.UserStore
}

func NewPostHandler(posts dbTools.PostStore, users dbTools.UserStore) *PostHandler {
	return &PostHandler{Posts: posts, Users: users}
}

type PostInput struct {
	Title   string `json:"title" form:"title" validate:"required,max=100"`
	Content string `json:"content" form:"content" validate:"required"`
}

type postResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	AuthorID  uint      `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author.Username,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
	}
}

func pageParam(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func totalPages(total int64) int64 {
	pages := (total + dbTools.PageSize - 1) / dbTools.PageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ----------------------
// 📌 Feed public paginé
// ----------------------
func (h *PostHandler) Home(c *fiber.Ctx) error {
	page := pageParam(c)

	posts, total, err := h.Posts.ListPage(c.Context(), page)
	if err != nil {
		utils.Error("Feed listing failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erreur lors du chargement du feed. (Code: PLUPOST-001)",
		})
	}

	items := make([]postResponse, 0, len(posts))
	for i := range posts {
		items = append(items, toPostResponse(&posts[i]))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts":       items,
		"page":        page,
		"page_size":   dbTools.PageSize,
		"total":       total,
		"total_pages": totalPages(total),
	})
}

// ----------------------
// 📌 Posts d'un auteur
// ----------------------
func (h *PostHandler) UserPosts(c *fiber.Ctx) error {
	username := c.Params("username")
	user, err := h.Users.FindByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, dbTools.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cet utilisateur n'existe pas. (Code: PLUPOST-002)",
			})
		}
		utils.Error("User lookup failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erreur interne. (Code: PLUPOST-003)",
		})
	}

	page := pageParam(c)
	posts, total, err := h.Posts.ListByAuthor(c.Context(), user.ID, page)
	if err != nil {
		utils.Error("Author listing failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erreur interne. (Code: PLUPOST-004)",
		})
	}

	items := make([]postResponse, 0, len(posts))
	for i := range posts {
		items = append(items, toPostResponse(&posts[i]))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": fiber.Map{
			"username": user.Username,
			"avatar":   user.Avatar,
		},
		"posts":       items,
		"page":        page,
		"page_size":   dbTools.PageSize,
		"total":       total,
		"total_pages": totalPages(total),
	})
}

// ----------------------
// 📌 Lire un post
// ----------------------
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	post, status, msg := h.fetchPost(c)
	if post == nil {
		return c.Status(status).JSON(fiber.Map{"message": msg})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"post": toPostResponse(post),
		// true seulement pour le propriétaire connecté : le front s'en
		// sert pour afficher les boutons modifier/supprimer.
		"mine": utils.CanModifyPost(middlewares.ActingUserID(c), post),
	})
}

// ----------------------
// 📌 Créer un post
// ----------------------
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var input PostInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Requête invalide. (Code: PLUPOST-007)",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Titre ou contenu invalide. (Code: PLUPOST-008)",
		})
	}

	authorID := middlewares.ActingUserID(c)
	post, err := h.Posts.Create(c.Context(), authorID, input.Title, input.Content)
	if err != nil {
		utils.Error("Post creation failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erreur lors de la création du post. (Code: PLUPOST-009)",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Ton post a été publié ! 🎉",
		"post_id": post.ID,
	})
}

// ----------------------
// 📌 Modifier un post (propriétaire uniquement)
// ----------------------
func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	post, status, msg := h.fetchPost(c)
	if post == nil {
		return c.Status(status).JSON(fiber.Map{"message": msg})
	}
	if !utils.CanModifyPost(middlewares.ActingUserID(c), post) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Action non autorisée. (Code: PLUPOST-010)",
		})
	}

	var input PostInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Requête invalide. (Code: PLUPOST-011)",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Titre ou contenu invalide. (Code: PLUPOST-012)",
		})
	}

	if err := h.Posts.Update(c.Context(), post, input.Title, input.Content); err != nil {
		utils.Error("Post update failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erreur lors de la modification. (Code: PLUPOST-013)",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post mis à jour !",
	})
}

// ----------------------
// 📌 Supprimer un post (propriétaire uniquement)
// ----------------------
func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	post, status, msg := h.fetchPost(c)
	if post == nil {
		return c.Status(status).JSON(fiber.Map{"message": msg})
	}
	if !utils.CanModifyPost(middlewares.ActingUserID(c), post) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Action non autorisée. (Code: PLUPOST-014)",
		})
	}

	if err := h.Posts.Delete(c.Context(), post.ID); err != nil {
		utils.Error("Post deletion failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erreur lors de la suppression. (Code: PLUPOST-015)",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post supprimé avec succès.",
	})
}

// fetchPost factorise parse de l'id + lookup. Retourne (nil, status,
// message) quand la requête doit s'arrêter là.
func (h *PostHandler) fetchPost(c *fiber.Ctx) (*models.Post, int, string) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, fiber.StatusBadRequest, "ID de post invalide. (Code: PLUPOST-005)"
	}

	post, err := h.Posts.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, dbTools.ErrNotFound) {
			return nil, fiber.StatusNotFound, "Ce post n'existe pas. (Code: PLUPOST-006)"
		}
		utils.Error("Post lookup failed", "err", err)
		return nil, fiber.StatusInternalServerError, "Erreur interne. (Code: PLUPOST-016)"
	}
	return post, 0, ""
}
