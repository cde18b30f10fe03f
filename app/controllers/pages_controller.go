package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/shakkar/app/views"
	"github.com/shashiranjanraj/shakkar/pkg/response"
)

// PageController serves the static pages and the health probe.
type PageController struct{}

func NewPageController() *PageController { return &PageController{} }

// Home renders the landing page. The event banner shows here.
func (c *PageController) Home(w http.ResponseWriter, r *http.Request) {
	views.Render(w, "home", page(r, "Home", true, nil))
}

// About renders the company blurb. No banner on this page.
func (c *PageController) About(w http.ResponseWriter, r *http.Request) {
	views.Render(w, "about", page(r, "About Us", false, nil))
}

// Healthz answers liveness probes.
func (c *PageController) Healthz(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"status": "ok"})
}
