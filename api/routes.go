package api

import (
	"github.com/Romain-GUILLEMOT/PlumyrBack/handlers"
	"github.com/Romain-GUILLEMOT/PlumyrBack/handlers/auth"
	middlewares "github.com/Romain-GUILLEMOT/PlumyrBack/middleware"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes reçoit les handlers déjà construits : aucune dépendance
// n'est résolue ici, on ne fait que brancher.
func SetupRoutes(app *fiber.App, sessions *utils.SessionManager, authH *auth.Handler, postH *handlers.PostHandler, accountH *handlers.AccountHandler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("✅ API en bonne santé !")
	})
	app.Get("/about", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":        "Plumyr",
			"description": "Un blog personnel : des posts, des auteurs, rien de plus.",
		})
	})

	// Lecture publique (identité optionnelle : un visiteur anonyme passe)
	app.Get("/", postH.Home)
	app.Get("/home", postH.Home)
	app.Get("/post/:id", middlewares.OptionalAuth(sessions), postH.GetPost)
	app.Get("/user/:username", postH.UserPosts)

	// Authentification
	app.Post("/register", authH.RegisterUser)
	app.Post("/login", authH.LoginUser)
	app.Get("/logout", middlewares.RequireAuth(sessions), authH.LogoutUser)

	// Compte (session requise)
	app.Get("/account", middlewares.RequireAuth(sessions), accountH.Me)
	app.Post("/account", middlewares.RequireAuth(sessions), accountH.UpdateAccount)

	// Posts (session requise, la propriété est vérifiée dans le handler)
	app.Post("/post/new", middlewares.RequireAuth(sessions), postH.CreatePost)
	app.Post("/post/:id/update", middlewares.RequireAuth(sessions), postH.UpdatePost)
	app.Post("/post/:id/delete", middlewares.RequireAuth(sessions), postH.DeletePost)

	// Reset du mot de passe, indépendant de toute session
	app.Post("/reset_password", authH.RequestReset)
	app.Get("/reset_password/:token", authH.CheckResetToken)
	app.Post("/reset_password/:token", authH.ConfirmReset)
}
