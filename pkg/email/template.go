package email

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"

	"github.com/Masterminds/sprig/v3"
)

// MissingValue is rendered in place of a blank field.
const MissingValue = "(not provided)"

// QuoteEmailData holds the values interpolated into a quote notification.
type QuoteEmailData struct {
	FullName      string
	Email         string
	Phone         string
	CoverageType  string
	CoverageLabel string
	ReceivedAt    string
	Missing       string
}

const quoteHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Quote Request</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>New Quote Request</h2>
    <p><strong>Name:</strong> {{ .FullName | trim | default .Missing }}</p>
    <p><strong>Email:</strong> {{ .Email | trim | default .Missing }}</p>
    <p><strong>Phone:</strong> {{ .Phone | trim | default .Missing }}</p>
    <p><strong>Coverage Type:</strong> {{ .CoverageType | trim | default .Missing }}{{ with .CoverageLabel }} ({{ . }}){{ end }}</p>
    {{- with .ReceivedAt }}
    <p style="color: #888; font-size: 12px;">Received {{ . }}</p>
    {{- end }}
</body>
</html>`

const quoteTextTemplate = `New Quote Request

Name: {{ .FullName | trim | default .Missing }}
Email: {{ .Email | trim | default .Missing }}
Phone: {{ .Phone | trim | default .Missing }}
Coverage Type: {{ .CoverageType | trim | default .Missing }}{{ with .CoverageLabel }} ({{ . }}){{ end }}
{{- with .ReceivedAt }}

Received {{ . }}
{{- end }}
`

var (
	quoteHTML = template.Must(template.New("quote.html").Funcs(sprig.HtmlFuncMap()).Parse(quoteHTMLTemplate))
	quoteText = texttemplate.Must(texttemplate.New("quote.txt").Funcs(sprig.TxtFuncMap()).Parse(quoteTextTemplate))
)

// RenderQuoteEmail renders the HTML and plain-text bodies. Blank fields
// come out as MissingValue rather than failing.
func RenderQuoteEmail(data QuoteEmailData) (htmlBody, textBody string, err error) {
	if data.Missing == "" {
		data.Missing = MissingValue
	}

	var html bytes.Buffer
	if err := quoteHTML.Execute(&html, data); err != nil {
		return "", "", fmt.Errorf("failed to execute html quote template: %w", err)
	}

	var text bytes.Buffer
	if err := quoteText.Execute(&text, data); err != nil {
		return "", "", fmt.Errorf("failed to execute text quote template: %w", err)
	}

	return html.String(), text.String(), nil
}
