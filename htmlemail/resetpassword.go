package htmlemail

import (
	"bytes"
	"html/template"
)

func ResetPassword(link string) (string, error) {
	tmpl, err := template.New("email").Parse(`
		<!DOCTYPE html>
		<html>
			<body style="font-family: sans-serif; background-color: #6C63FF; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background: white; padding: 20px; border-radius: 8px;">
					<h2 style="color: #6C63FF;">🔑 Réinitialisation du mot de passe</h2>
					<p>Pour choisir un nouveau mot de passe, clique sur le lien suivant :</p>
					<p style="text-align: center;"><a href="{{.Link}}" style="color: #6C63FF;">{{.Link}}</a></p>
					<p style="color: #777;">Ce lien est valable 30 minutes. Si tu n'as rien demandé, ignore ce mail.</p>
				</div>
			</body>
		</html>
	`)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct{ Link string }{Link: link})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
