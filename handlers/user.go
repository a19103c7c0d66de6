package handlers

import (
	"errors"

	middlewares "github.com/Romain-GUILLEMOT/PlumyrBack/middleware"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils/dbTools"
	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	Users     dbTools.UserStore
	StaticDir string
}

func NewAccountHandler(users dbTools.UserStore, staticDir string) *AccountHandler {
	return &AccountHandler{Users: users, StaticDir: staticDir}
}

type UpdateAccountInput struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" form:"email" validate:"required,email"`
}

// ----------------------
// 📌 Profil du compte connecté
// ----------------------
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	userID := middlewares.ActingUserID(c)
	user, err := h.Users.FindByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Impossible de récupérer vos données utilisateur ! (Code: PLUACC-001)",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Utilisateur authentifié !",
		"status":  "success",
		"data": fiber.Map{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"avatar":   "/static/profile/" + user.Avatar,
		},
	})
}

// ----------------------
// 📌 Mise à jour du profil (username, email, avatar)
// ----------------------
func (h *AccountHandler) UpdateAccount(c *fiber.Ctx) error {
	var input UpdateAccountInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Requête invalide. (Code: PLUACC-002)",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Champs invalides. (Code: PLUACC-003)",
		})
	}

	// L'avatar est optionnel : absence de fichier = pas de changement.
	var avatarName string
	if file, err := c.FormFile("avatar"); err == nil {
		avatarName, err = utils.SaveAvatar(file, h.StaticDir)
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrUnsupportedFormat):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "Seuls les formats jpg et png sont acceptés. (Code: PLUACC-004)",
				})
			case errors.Is(err, utils.ErrInvalidImage):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "Image invalide ou corrompue. (Code: PLUACC-005)",
				})
			default:
				utils.Error("Avatar ingestion failed", "err", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Erreur lors de l'upload de l'avatar. (Code: PLUACC-006)",
				})
			}
		}
	}

	userID := middlewares.ActingUserID(c)
	user, err := h.Users.UpdateProfile(c.Context(), userID, input.Username, input.Email, avatarName)
	if err != nil {
		switch {
		case errors.Is(err, dbTools.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Un compte avec cet email existe déjà. (Code: PLUACC-007)",
			})
		case errors.Is(err, dbTools.ErrUsernameTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Ce nom d'utilisateur est déjà pris. (Code: PLUACC-008)",
			})
		default:
			utils.Error("Profile update failed", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Erreur lors de la mise à jour. (Code: PLUACC-009)",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Ton compte a été mis à jour ✅",
		"data": fiber.Map{
			"username": user.Username,
			"email":    user.Email,
			"avatar":   "/static/profile/" + user.Avatar,
		},
	})
}
