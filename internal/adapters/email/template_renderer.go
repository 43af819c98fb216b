package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"
	texttemplate "text/template"

	"eventqa/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer implements domain.EmailTemplateRenderer using embedded template files.
// Parsed templates are cached by file name.
type templateRenderer struct {
	mu    sync.Mutex
	html  map[string]*template.Template
	plain map[string]*texttemplate.Template
}

// NewTemplateRenderer returns an EmailTemplateRenderer that loads templates from the embedded templates folder.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		html:  make(map[string]*template.Template),
		plain: make(map[string]*texttemplate.Template),
	}
}

// Render executes the named template (e.g. "welcome") with data and returns subject, html, and text bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	subject, err = r.renderFile(templateName+"_subject.txt", data, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = r.renderFile(templateName+".html", data, true)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = r.renderFile(templateName+".txt", data, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func (r *templateRenderer) renderFile(name string, data any, html bool) (string, error) {
	var buf bytes.Buffer
	if html {
		t, err := r.htmlTemplate(name)
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	} else {
		t, err := r.textTemplate(name)
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (r *templateRenderer) htmlTemplate(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.html[name]; ok {
		return t, nil
	}
	t, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, err
	}
	r.html[name] = t
	return t, nil
}

func (r *templateRenderer) textTemplate(name string) (*texttemplate.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.plain[name]; ok {
		return t, nil
	}
	t, err := texttemplate.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, err
	}
	r.plain[name] = t
	return t, nil
}
