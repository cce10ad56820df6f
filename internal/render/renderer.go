// Package render produces the static redirect page: social-preview tags for
// crawlers, an immediate redirect for browsers.
package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// PageData carries everything the redirect page template needs. Title and
// Description are escaped per context (attribute, text, script) by
// html/template during rendering.
type PageData struct {
	VisibleURL  string
	RedirectURL string
	Title       string
	Description string
	ImageURL    string
	BuildID     string
}

// Renderer renders PageData into a self-contained HTML document.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded page template.
func New() (*Renderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the final document bytes.
func (r *Renderer) Render(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// pageTemplate mirrors the page layout static hosts expect: Open Graph and
// Twitter Card tags carrying the visible URL's metadata, a zero-delay meta
// refresh, a script redirect as fallback, and a small spinner UI with a
// manual link.
const pageTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <meta name="description" content="{{.Description}}">
    <meta name="generator" content="linkforge {{.BuildID}}">

    <!-- Open Graph -->
    <meta property="og:type" content="website">
    <meta property="og:url" content="{{.VisibleURL}}">
    <meta property="og:title" content="{{.Title}}">
    <meta property="og:description" content="{{.Description}}">
    <meta property="og:image" content="{{.ImageURL}}">
    <meta property="og:image:width" content="1200">
    <meta property="og:image:height" content="630">

    <!-- Twitter Card -->
    <meta name="twitter:card" content="summary_large_image">
    <meta name="twitter:title" content="{{.Title}}">
    <meta name="twitter:description" content="{{.Description}}">
    <meta name="twitter:image" content="{{.ImageURL}}">

    <!-- Redirección -->
    <meta http-equiv="refresh" content="0;url={{.RedirectURL}}">
    <script>window.location.href = "{{.RedirectURL}}";</script>

    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            display: flex;
            align-items: center;
            justify-content: center;
            min-height: 100vh;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
        }
        .container {
            text-align: center;
            padding: 2rem;
        }
        .spinner {
            border: 3px solid rgba(255,255,255,0.3);
            border-top: 3px solid white;
            border-radius: 50%;
            width: 50px;
            height: 50px;
            animation: spin 0.8s linear infinite;
            margin: 0 auto 1.5rem;
        }
        @keyframes spin {
            to { transform: rotate(360deg); }
        }
        h1 {
            font-size: 1.5rem;
            margin: 0 0 1rem;
            font-weight: 600;
        }
        p {
            opacity: 0.9;
            margin: 0.5rem 0;
        }
        a {
            color: white;
            text-decoration: underline;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="spinner"></div>
        <h1>Redirigiendo...</h1>
        <p>Serás redirigido automáticamente</p>
        <p><a href="{{.RedirectURL}}">O haz clic aquí</a></p>
    </div>
</body>
</html>
`
