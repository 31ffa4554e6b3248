// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public blog,
// the shared views, and the login flow. Templates are compiled into the
// binary; page templates are paired with the base layout, standalone
// templates carry their own document shell.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for the <title> tag
	SiteName  string         // Site name shown in the header
	CSRFToken string         // CSRF token for forms
	Data      map[string]any // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates render as full HTML pages without the base layout.
var standaloneTemplates = map[string]bool{
	"login":      true,
	"2fa_verify": true,
	"2fa_setup":  true,
}

// New creates a Renderer by parsing the compiled-in templates. Each page
// template is paired with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			// date formats an optional timestamp for display.
			"date": func(t *time.Time) string {
				if t == nil {
					return ""
				}
				return t.Format("January 2, 2006")
			},
			// safe marks pre-rendered Markdown HTML as trusted. Only ever
			// applied to goldmark output, never to user input directly.
			"safe": func(s string) template.HTML {
				return template.HTML(s)
			},
		},
	}

	for name, text := range pageTemplates {
		var tmpl *template.Template
		var err error

		if standaloneTemplates[name] {
			tmpl, err = template.New(name).Funcs(r.funcMap).Parse(text)
		} else {
			tmpl, err = template.New("base").Funcs(r.funcMap).Parse(baseTemplate)
			if err == nil {
				_, err = tmpl.Parse(text)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		r.templates[name] = tmpl
	}

	return r, nil
}

// Render executes the named template into the response with the given
// status code. Output is buffered so a template failure produces a clean
// 500 instead of a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data *PageData) error {
	html, err := r.HTML(name, data)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(html)
	return err
}

// HTML executes the named template and returns the rendered bytes.
// Used by handlers that cache rendered pages before writing them.
func (r *Renderer) HTML(name string, data *PageData) ([]byte, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", name)
	}

	if data == nil {
		data = &PageData{}
	}
	if data.Data == nil {
		data.Data = map[string]any{}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
