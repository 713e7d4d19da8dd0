package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

const verificationSubject = "Please confirm your e-mail address"

var verificationText = texttemplate.Must(texttemplate.New("verification.txt").Parse(
	`Hello{{if .FirstName}} {{.FirstName}}{{end}},

you are receiving this e-mail because {{.Email}} was used to register an account.

To confirm this is correct, open {{.Link}}

Or submit this key to the verify-email endpoint: {{.Key}}

The link expires in {{.ValidFor}}.
`))

var verificationHTML = htmltemplate.Must(htmltemplate.New("verification.html").Parse(
	`<p>Hello{{if .FirstName}} {{.FirstName}}{{end}},</p>
<p>you are receiving this e-mail because {{.Email}} was used to register an account.</p>
<p><a href="{{.Link}}">Confirm your e-mail address</a></p>
<p>Or submit this key to the verify-email endpoint: <code>{{.Key}}</code></p>
<p>The link expires in {{.ValidFor}}.</p>
`))

// VerificationData feeds the verification templates.
type VerificationData struct {
	Email     string
	FirstName string
	Key       string
	Link      string
	ValidFor  string
}

// VerificationMessage renders the e-mail confirmation message.
func VerificationMessage(d VerificationData) (Message, error) {
	var text, html bytes.Buffer
	if err := verificationText.Execute(&text, d); err != nil {
		return Message{}, fmt.Errorf("error during executing template %s: %w", verificationText.Name(), err)
	}
	if err := verificationHTML.Execute(&html, d); err != nil {
		return Message{}, fmt.Errorf("error during executing template %s: %w", verificationHTML.Name(), err)
	}
	return Message{
		To:      []string{d.Email},
		Subject: verificationSubject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
