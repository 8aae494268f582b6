package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"math"
	texttemplate "text/template"
	"time"
)

// VerificationSubject es el asunto del correo con el OTP.
const VerificationSubject = "Your PrivateLabelify Verification Code"

const brand = "PrivateLabelify"

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templatesFS, "templates/*.html.tmpl"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templatesFS, "templates/*.txt.tmpl"))
)

type verificationData struct {
	Brand    string
	To       string
	Code     string
	ValidFor string
}

// Message es un correo ya renderizado.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// RenderVerification arma el correo de verificación. now se usa para calcular la vigencia visible.
func RenderVerification(to, code string, expiresAt, now time.Time) (Message, error) {
	data := verificationData{
		Brand:    brand,
		To:       to,
		Code:     code,
		ValidFor: validFor(expiresAt.Sub(now)),
	}

	var html, text bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, "verification.html.tmpl", data); err != nil {
		return Message{}, fmt.Errorf("render html: %w", err)
	}
	if err := textTemplates.ExecuteTemplate(&text, "verification.txt.tmpl", data); err != nil {
		return Message{}, fmt.Errorf("render text: %w", err)
	}
	return Message{
		To:      to,
		Subject: VerificationSubject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

func validFor(d time.Duration) string {
	minutes := int(math.Round(d.Minutes()))
	if minutes <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
