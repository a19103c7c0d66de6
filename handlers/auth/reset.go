package auth

import (
	"strings"
	"time"

	"github.com/Romain-GUILLEMOT/PlumyrBack/htmlemail"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils"
	"github.com/gofiber/fiber/v2"
)

// Un seul mail de reset par adresse toutes les 5 minutes.
const resetMailThrottle = 5 * time.Minute

type RequestResetInput struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type ConfirmResetInput struct {
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

func (h *Handler) RequestReset(c *fiber.Ctx) error {
	var input RequestResetInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Requête invalide. (Code: PLURST-001)",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "L'adresse email fournie est invalide ou mal formée. (Code: PLURST-002)",
		})
	}

	email := strings.ToLower(input.Email)
	user, err := h.Users.FindByEmail(c.Context(), email)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Aucun compte avec cet email. (Code: PLURST-003)",
		})
	}

	key := "reset_mail:" + email
	ttl, err := h.KV.TTL(key)
	if err != nil {
		utils.Error("Redis TTL check failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erreur interne. (Code: PLURST-004)",
		})
	}
	if ttl > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Un email a déjà été envoyé à cette adresse. (Code: PLURST-005)",
			"data":    ttl.Seconds(),
		})
	}

	token, err := h.Reset.Issue(user.ID, user.Password)
	if err != nil {
		utils.Error("Reset token issuance failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erreur interne. (Code: PLURST-006)",
		})
	}

	link := h.AppURL + "/reset_password/" + token
	htmlBody, err := htmlemail.ResetPassword(link)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erreur interne. (Code: PLURST-007)",
		})
	}
	if err := h.Mailer.Send(user.Email, "Plumyr - Réinitialisation du mot de passe", htmlBody); err != nil {
		utils.Error("Cannot send email", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "L'email n'a pas pu être envoyé, réessaie plus tard. (Code: PLURST-008)",
		})
	}

	if err := h.KV.Set(key, "1", resetMailThrottle); err != nil {
		utils.Error("Redis set throttle failed", "err", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Va checker tes mails 📧, ton lien de réinitialisation t'y attend !",
	})
}

// CheckResetToken permet au front d'afficher le formulaire seulement si le
// token du lien est encore bon.
func (h *Handler) CheckResetToken(c *fiber.Ctx) error {
	if _, _, err := h.Reset.Verify(c.Params("token")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Token invalide ou expiré. Redemande un lien. (Code: PLURST-009)",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "🔑 Token valide",
	})
}

func (h *Handler) ConfirmReset(c *fiber.Ctx) error {
	userID, fingerprint, err := h.Reset.Verify(c.Params("token"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Token invalide ou expiré. Redemande un lien. (Code: PLURST-010)",
		})
	}

	var input ConfirmResetInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Requête invalide. (Code: PLURST-011)",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Le mot de passe doit faire au moins 8 caractères. (Code: PLURST-012)",
		})
	}

	user, err := h.Users.FindByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Token invalide ou expiré. Redemande un lien. (Code: PLURST-013)",
		})
	}

	// Le token embarque l'empreinte du hash au moment de l'émission : un
	// mot de passe déjà changé depuis rend tous les anciens liens morts.
	if utils.HashFingerprint(user.Password) != fingerprint {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Token invalide ou expiré. Redemande un lien. (Code: PLURST-014)",
		})
	}

	if err := h.Users.UpdatePassword(c.Context(), user.ID, input.Password); err != nil {
		utils.Error("Password update failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Erreur interne. (Code: PLURST-015)",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Mot de passe mis à jour avec succès 🎉",
	})
}
