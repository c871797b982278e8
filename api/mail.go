package main

import (
	"bytes"
	"html/template"

	"github.com/go-mail/mail/v2"
)

const welcomeTemplate = `
{{define "subject"}}Welcome to Todo List!{{end}}

{{define "plainBody"}}Hi {{.Username}},

Thanks for signing up. Your account is ready, log in and start adding todos.
{{end}}

{{define "htmlBody"}}<html><body>
<p>Hi {{.Username}},</p>
<p>Thanks for signing up. Your account is ready, log in and start adding todos.</p>
</body></html>{{end}}
`

var welcomeTmpl = template.Must(template.New("welcome").Parse(welcomeTemplate))

type mailer struct {
	dialer *mail.Dialer
	sender string
}

// newMailer returns a disabled mailer when no SMTP host is configured.
func newMailer(host string, port int, username string, password string, sender string) *mailer {
	if host == "" {
		return &mailer{}
	}
	return &mailer{
		dialer: mail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

// sendWelcome delivers the registration mail in the background. Delivery is
// best effort: a failure is logged and never fails the request.
func (m *mailer) sendWelcome(u *user) {
	if m.dialer == nil {
		return
	}
	go func() {
		if err := m.send(u.Email, welcomeTmpl, u); err != nil {
			log.WithField("email", u.Email).Error(err)
		}
	}()
}

func (m *mailer) send(to string, tmpl *template.Template, data any) error {
	var subject bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return err
	}
	var plainBody bytes.Buffer
	if err := tmpl.ExecuteTemplate(&plainBody, "plainBody", data); err != nil {
		return err
	}
	var htmlBody bytes.Buffer
	if err := tmpl.ExecuteTemplate(&htmlBody, "htmlBody", data); err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	var err error
	for i := 0; i < 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			break
		}
	}
	return err
}
