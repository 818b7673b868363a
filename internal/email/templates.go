package email

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	subjectVerification        = "Verify your email address"
	subjectPasswordReset       = "Reset your password"
	subjectDeliveryReminderFmt = "Delivery due: %s"
)

type ctaEmailData struct {
	Title    string
	Heading  string
	Body     string
	CTALabel string
	CTAURL   string
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 24px;">
  <div style="max-width: 520px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="margin-top: 0; color: #1a1a2e;">{{.Heading}}</h2>
    <p style="color: #444; line-height: 1.5;">{{.Body}}</p>
    {{if .CTAURL}}
    <p style="text-align: center; margin: 28px 0;">
      <a href="{{.CTAURL}}" style="background: #0f3460; color: #ffffff; padding: 12px 28px; border-radius: 6px; text-decoration: none;">{{.CTALabel}}</a>
    </p>
    <p style="color: #888; font-size: 12px;">If the button does not work, copy this link: {{.CTAURL}}</p>
    {{end}}
  </div>
</body>
</html>`))

func renderEmailTemplate(name string, data ctaEmailData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
