package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// ContactData is rendered into the contact-form notification
type ContactData struct {
	Name       string
	Email      string
	Subject    string
	Message    string
	ReceivedAt time.Time
}

// StartupData is rendered into the startup notification
type StartupData struct {
	StartedAt   time.Time
	Environment string
	SMTPHost    string
	SMTPPort    int
	Provider    string
	From        string
	To          string
	Version     string
	Endpoints   []string
}

const contactHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>New Contact Message</title>
</head>
<body style="margin:0;padding:0;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;background-color:#f4f5f7;">
<table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f4f5f7;padding:40px 0;">
<tr><td align="center">
<table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
  <tr><td style="padding:32px 40px 16px;text-align:center;">
    <h1 style="margin:0;font-size:24px;color:#1a1a2e;">New Contact Message</h1>
    <p style="margin:8px 0 0;font-size:14px;color:#8888a0;">Contact Form Submission</p>
  </td></tr>
  <tr><td style="padding:8px 40px;font-size:15px;color:#4a4a68;line-height:1.6;">
    <p style="margin:0 0 12px;"><strong>Name:</strong> {{ .Name }}</p>
    <p style="margin:0 0 12px;"><strong>Email:</strong> <a href="mailto:{{ .Email }}">{{ .Email }}</a></p>
    <p style="margin:0 0 12px;"><strong>Subject:</strong> {{ .Subject }}</p>
    <p style="margin:0 0 4px;"><strong>Message:</strong></p>
    <div style="white-space:pre-wrap;background-color:#f9f9fc;border-left:4px solid #6c63ff;padding:12px 16px;">{{ .Message }}</div>
  </td></tr>
  <tr><td style="padding:16px 40px;background-color:#f9f9fc;border-top:1px solid #eeeef2;">
    <p style="margin:0;font-size:12px;color:#aaaabc;text-align:center;">
      Received on {{ dateInZone "2006-01-02 15:04:05 MST" .ReceivedAt "UTC" }}<br>
      Reply directly to this email to respond to {{ .Name | trim }}
    </p>
  </td></tr>
</table>
</td></tr>
</table>
</body>
</html>`

const contactText = `New Contact Form Message

From: {{ .Name }} ({{ .Email }})
Subject: {{ .Subject }}

Message:
{{ .Message }}

Sent on: {{ dateInZone "2006-01-02 15:04:05 MST" .ReceivedAt "UTC" }}
`

const startupHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Email API Server Started</title>
</head>
<body style="margin:0;padding:0;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;background-color:#f4f5f7;">
<table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f4f5f7;padding:40px 0;">
<tr><td align="center">
<table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
  <tr><td style="padding:32px 40px 16px;text-align:center;">
    <h1 style="margin:0;font-size:24px;color:#1a1a2e;">Email API Server Started</h1>
    <p style="margin:8px 0 0;font-size:14px;color:#16a34a;font-weight:bold;">SERVICE ONLINE</p>
  </td></tr>
  <tr><td style="padding:8px 40px;font-size:15px;color:#4a4a68;line-height:1.6;">
    <p style="margin:0 0 8px;"><strong>Startup Time:</strong> {{ dateInZone "2006-01-02 15:04:05 MST" .StartedAt "UTC" }}</p>
    <p style="margin:0 0 8px;"><strong>Environment:</strong> {{ .Environment | upper }}</p>
    <p style="margin:0 0 8px;"><strong>Provider:</strong> {{ .Provider }}</p>
    {{- if .SMTPHost }}
    <p style="margin:0 0 8px;"><strong>SMTP Host:</strong> {{ .SMTPHost }}:{{ .SMTPPort }}</p>
    {{- end }}
    <p style="margin:0 0 8px;"><strong>From Email:</strong> {{ .From }}</p>
    <p style="margin:0 0 8px;"><strong>Default Recipient:</strong> {{ .To }}</p>
    <p style="margin:0 0 4px;"><strong>Available Endpoints:</strong></p>
    <ul style="margin:0 0 8px;padding-left:20px;">
    {{- range .Endpoints }}
      <li>{{ . }}</li>
    {{- end }}
    </ul>
  </td></tr>
  <tr><td style="padding:16px 40px;background-color:#f9f9fc;border-top:1px solid #eeeef2;">
    <p style="margin:0;font-size:12px;color:#aaaabc;text-align:center;">
      This is an automated startup notification. Server Version: {{ .Version | default "dev" }}
    </p>
  </td></tr>
</table>
</td></tr>
</table>
</body>
</html>`

const startupText = `EMAIL API SERVER STARTUP NOTIFICATION

Server Status: ONLINE
Startup Time: {{ dateInZone "2006-01-02 15:04:05 MST" .StartedAt "UTC" }}
Environment: {{ .Environment | upper }}
Provider: {{ .Provider }}
{{- if .SMTPHost }}
SMTP Host: {{ .SMTPHost }}:{{ .SMTPPort }}
{{- end }}
From Email: {{ .From }}
Default Recipient: {{ .To }}

Available Endpoints:
{{- range .Endpoints }}
- {{ . }}
{{- end }}

Server Version: {{ .Version | default "dev" }}
`

var (
	contactHTMLTmpl = htmltemplate.Must(htmltemplate.New("contact.html").Funcs(sprig.HtmlFuncMap()).Parse(contactHTML))
	contactTextTmpl = texttemplate.Must(texttemplate.New("contact.txt").Funcs(sprig.TxtFuncMap()).Parse(contactText))
	startupHTMLTmpl = htmltemplate.Must(htmltemplate.New("startup.html").Funcs(sprig.HtmlFuncMap()).Parse(startupHTML))
	startupTextTmpl = texttemplate.Must(texttemplate.New("startup.txt").Funcs(sprig.TxtFuncMap()).Parse(startupText))
)

func render(name string, exec func(*bytes.Buffer) error) (string, error) {
	var buf bytes.Buffer
	if err := exec(&buf); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// ContactEmailHTML renders the HTML body for a contact-form submission.
// All submitted values are escaped.
func ContactEmailHTML(d ContactData) (string, error) {
	return render("contact html", func(b *bytes.Buffer) error { return contactHTMLTmpl.Execute(b, d) })
}

// ContactEmailText renders the plain-text body for a contact-form submission
func ContactEmailText(d ContactData) (string, error) {
	return render("contact text", func(b *bytes.Buffer) error { return contactTextTmpl.Execute(b, d) })
}

// StartupEmailHTML renders the HTML body for the startup notification
func StartupEmailHTML(d StartupData) (string, error) {
	return render("startup html", func(b *bytes.Buffer) error { return startupHTMLTmpl.Execute(b, d) })
}

// StartupEmailText renders the plain-text body for the startup notification
func StartupEmailText(d StartupData) (string, error) {
	return render("startup text", func(b *bytes.Buffer) error { return startupTextTmpl.Execute(b, d) })
}
