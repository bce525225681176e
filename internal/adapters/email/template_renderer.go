package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	texttemplate "text/template"

	"rsvpbackend/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// TemplateRSVPReceived is the host notification sent for each new RSVP.
const TemplateRSVPReceived = "rsvp_received"

// notification is one parsed email: <name>_subject.txt, <name>.txt and <name>.html.
type notification struct {
	subject *texttemplate.Template
	text    *texttemplate.Template
	html    *template.Template
}

type templateRenderer struct {
	notifications map[string]notification
}

// NewTemplateRenderer parses the embedded notification templates.
// A template that fails to parse is reported here rather than on first send.
func NewTemplateRenderer() (domain.EmailTemplateRenderer, error) {
	return newTemplateRenderer(templateFS, TemplateRSVPReceived)
}

func newTemplateRenderer(fsys fs.FS, names ...string) (*templateRenderer, error) {
	r := &templateRenderer{notifications: make(map[string]notification, len(names))}
	for _, name := range names {
		subject, err := texttemplate.ParseFS(fsys, "templates/"+name+"_subject.txt")
		if err != nil {
			return nil, fmt.Errorf("parse %s subject: %w", name, err)
		}
		text, err := texttemplate.ParseFS(fsys, "templates/"+name+".txt")
		if err != nil {
			return nil, fmt.Errorf("parse %s text: %w", name, err)
		}
		html, err := template.ParseFS(fsys, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s html: %w", name, err)
		}
		r.notifications[name] = notification{subject: subject, text: text, html: html}
	}
	return r, nil
}

// Render executes the named notification with data. The subject is trimmed to a single line.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	n, ok := r.notifications[templateName]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", templateName)
	}
	var buf bytes.Buffer
	if err := n.subject.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	subject = strings.Join(strings.Fields(buf.String()), " ")

	buf.Reset()
	if err := n.html.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err := n.text.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return subject, htmlBody, buf.String(), nil
}
