// Package web embeds the browser client served next to the API.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages lists every client page with its title; the key is the page id used by app.js.
var Pages = map[string]string{
	"login":              "Sign in",
	"register":           "Create account",
	"dashboard":          "Dashboard",
	"business-setup":     "Business setup",
	"staff-management":   "Staff management",
	"schedule-dashboard": "Schedules",
	"staff-portal":       "My shifts",
}

// Templates parses the page shell. Every page renders through "base".
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Static serves the files under static/ rooted at "/".
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
