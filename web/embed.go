package web

import "embed"

// TemplatesFS holds the html views. layout.html wraps every page.
//
//go:embed templates/*.html
var TemplatesFS embed.FS
