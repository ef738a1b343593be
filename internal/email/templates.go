package email

import (
	"html/template"
)

// Template names.
const (
	TemplateWelcome         = "welcome"
	TemplatePasswordReset   = "password-reset"
	TemplatePasswordChanged = "password-changed"
)

type emailTemplate struct {
	subject string
	body    *template.Template
}

const layout = `<!DOCTYPE html><html><body style="font-family:sans-serif">{{template "content" .}}<p style="color:#888">Brand Studio</p></body></html>`

func mustTemplate(name, content string) *template.Template {
	t := template.Must(template.New(name).Parse(layout))
	return template.Must(t.New("content").Parse(content))
}

var templates = map[string]emailTemplate{
	TemplateWelcome: {
		subject: "Welcome to Brand Studio",
		body: mustTemplate(TemplateWelcome,
			`<p>Hi {{.FullName}},</p><p>Your account is ready. <a href="{{.LoginURL}}">Sign in</a> to get started.</p>`),
	},
	TemplatePasswordReset: {
		subject: "Reset your password",
		body: mustTemplate(TemplatePasswordReset,
			`<p>Hi {{.FullName}},</p><p><a href="{{.ResetURL}}">Choose a new password</a>. This link expires in {{.ExpiresIn}}.</p><p>If you did not ask for this, ignore this email.</p>`),
	},
	TemplatePasswordChanged: {
		subject: "Your password was changed",
		body: mustTemplate(TemplatePasswordChanged,
			`<p>Hi {{.FullName}},</p><p>Your password was just changed. If this was not you, reset it immediately.</p>`),
	},
}
