package auth

import (
	"errors"
	"strings"

	"github.com/Romain-GUILLEMOT/PlumyrBack/utils"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils/dbTools"
	"github.com/gofiber/fiber/v2"
)

type RegisterUserInput struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

func (h *Handler) RegisterUser(c *fiber.Ctx) error {
	var input RegisterUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "La requête est invalide. Merci de vérifier les données envoyées. (Code: PLUREG-001)",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Champs invalides. (Code: PLUREG-002)",
		})
	}

	email := strings.ToLower(input.Email)
	if err := utils.CheckEmailDomain(email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error() + " (Code: PLUREG-003)",
		})
	}

	user, err := h.Users.Register(c.Context(), input.Username, email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, dbTools.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Un compte avec cet email existe déjà. (Code: PLUREG-004)",
			})
		case errors.Is(err, dbTools.ErrUsernameTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Ce nom d'utilisateur est déjà pris. (Code: PLUREG-005)",
			})
		default:
			utils.Error("User registration failed", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Erreur lors de la création du compte. (Code: PLUREG-006)",
				"error": func() string {
					if h.Debug {
						return err.Error()
					}
					return "Unknown"
				}(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "🎉 Compte créé avec succès",
		"user_id": user.ID,
	})
}
