package auth

import (
	"strings"

	"github.com/Romain-GUILLEMOT/PlumyrBack/utils"
	"github.com/gofiber/fiber/v2"
)

type LoginUserInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (h *Handler) LoginUser(c *fiber.Ctx) error {
	var input LoginUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Requête invalide. (Code: PLULOG-001)",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Champs invalides. (Code: PLULOG-002)",
		})
	}

	// Même message pour email inconnu et mauvais mot de passe.
	user, err := h.Users.Authenticate(c.Context(), input.Email, input.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Identifiants incorrects. (Code: PLULOG-003)",
		})
	}

	accessToken, err := h.Sessions.Issue(user.ID)
	if err != nil {
		utils.Error("Erreur génération accessToken", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erreur interne. (Code: PLULOG-004)",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Connexion réussie ✅",
		"access_token": accessToken,
		"user": fiber.Map{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"avatar":   user.Avatar,
		},
	})
}

func (h *Handler) LogoutUser(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")

	if err := h.Sessions.Revoke(token); err != nil {
		utils.Error("Session revocation failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erreur interne. (Code: PLULOG-005)",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Déconnexion réussie 👋",
	})
}
