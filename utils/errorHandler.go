package utils

import (
	"fmt"
	"runtime/debug"
	"time"
)

func (m *Mailer) SendErrorMail(reportTo, code, file, content, extra string) {
	if reportTo == "" {
		return
	}
	full := fmt.Sprintf(
		"Code erreur : %s\n\nFile: %s\n\nDétails :\n%s\n\nInfos supplémentaires :\n%s",
		code, file, content, extra,
	)

	_ = m.Send(reportTo, "🚨 Erreur ["+code+"]", full)
}

func HandlePanic(mailer *Mailer, reportTo string) {
	if r := recover(); r != nil {
		code := fmt.Sprintf("777-%d", time.Now().Unix()%1000)
		stack := string(debug.Stack())
		if mailer != nil {
			mailer.SendErrorMail(reportTo, code, "global", fmt.Sprintf("%v\n\nStacktrace:\n%s", r, stack), "")
		}
		Fatal("Application crashed", "code", code, "reason", r)
	}
}
