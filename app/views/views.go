// Package views renders the storefront pages with html/template. Templates
// are embedded so the binary is self-contained.
package views

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/shashiranjanraj/shakkar/pkg/auth"
	"github.com/shashiranjanraj/shakkar/pkg/logger"
	"github.com/shashiranjanraj/shakkar/pkg/storage"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"imageURL": storage.ImageURL,
}

var tpl = template.Must(template.New("shakkar").Funcs(funcs).ParseFS(files, "templates/*.html"))

// Page is the data envelope every template receives. Data carries the
// page-specific payload.
type Page struct {
	Title      string
	State      auth.State
	Identity   string
	ShowBanner bool
	Data       interface{}
}

// ShowEmployeeNav reports whether the orders/report nav entries render.
func (p Page) ShowEmployeeNav() bool { return p.State.ShowEmployeeNav() }

// ShowSignIn reports whether the sign-in link renders.
func (p Page) ShowSignIn() bool { return p.State.ShowSignIn() }

// Render writes the named template. Render failures are logged and answered
// with a bare 500; the template set is parsed at init so this only fires on
// data errors.
func Render(w http.ResponseWriter, name string, page Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.ExecuteTemplate(w, name, page); err != nil {
		logger.Error("render failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
