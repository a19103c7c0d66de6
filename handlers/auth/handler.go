package auth

import (
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils/dbTools"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// MailSender est la surface d'envoi dont le reset a besoin ;
// *utils.Mailer l'implémente, les tests la remplacent.
type MailSender interface {
	Send(to string, subject string, content string) error
}

// Handler regroupe les dépendances des routes d'authentification ;
// tout est injecté, rien de global.
type Handler struct {
	Users    dbTools.UserStore
	Sessions *utils.SessionManager
	Reset    *utils.ResetTokenService
	Mailer   MailSender
	KV       utils.KV
	AppURL   string
	Debug    bool
}

func NewHandler(users dbTools.UserStore, sessions *utils.SessionManager, reset *utils.ResetTokenService, mailer MailSender, kv utils.KV, appURL string, debug bool) *Handler {
	return &Handler{
		Users:    users,
		Sessions: sessions,
		Reset:    reset,
		Mailer:   mailer,
		KV:       kv,
		AppURL:   appURL,
		Debug:    debug,
	}
}
