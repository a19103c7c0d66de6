package middlewares

import (
	"strings"

	"github.com/Romain-GUILLEMOT/PlumyrBack/utils"
	"github.com/gofiber/fiber/v2"
)

// RequireAuth bloque la requête sans session valide et pose l'id
// utilisateur dans c.Locals("user_id").
func RequireAuth(sessions *utils.SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token d'accès manquant ou mal formé.",
			})
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		userID, err := sessions.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token invalide ou utilisateur introuvable.",
			})
		}

		c.Locals("user_id", userID)

		return c.Next()
	}
}

// OptionalAuth pose l'identité si un token valide est présent, laisse
// passer en anonyme sinon. Le feed et les pages de post sont publics.
func OptionalAuth(sessions *utils.SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token := strings.TrimPrefix(auth, "Bearer ")
			if userID, err := sessions.Verify(token); err == nil {
				c.Locals("user_id", userID)
			}
		}
		return c.Next()
	}
}

// ActingUserID relit l'identité posée par les middlewares. 0 = anonyme.
func ActingUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("user_id").(uint); ok {
		return id
	}
	return 0
}
