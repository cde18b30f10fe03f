package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/shakkar/app/services/backend"
	"github.com/shashiranjanraj/shakkar/app/services/cart"
	"github.com/shashiranjanraj/shakkar/app/views"
	"github.com/shashiranjanraj/shakkar/pkg/logger"
	"github.com/shashiranjanraj/shakkar/pkg/session"
)

// sessionKeyCheckout carries the checkout selection from the catalog to the
// customer info view, the server-side stand-in for client navigation state.
const sessionKeyCheckout = "checkoutCart"

// ProductController serves the catalog and the checkout hand-off.
type ProductController struct {
	backend *backend.Client
}

func NewProductController(client *backend.Client) *ProductController {
	return &ProductController{backend: client}
}

// Index renders the catalog with quantity inputs and a running total.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.backend.ListProducts(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("catalog fetch failed", "error", err)
		renderError(w, r, err.Error())
		return
	}

	views.Render(w, "products", page(r, "Our Cookies", true, cart.FromProducts(products)))
}

// Checkout applies the posted quantities against a fresh catalog (quantities
// clamp to current stock), then hands the selection to the customer info
// view. An all-zero selection is a no-op back to the catalog.
func (c *ProductController) Checkout(w http.ResponseWriter, r *http.Request) {
	products, err := c.backend.ListProducts(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("catalog fetch failed", "error", err)
		renderError(w, r, err.Error())
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	selection := cart.FromProducts(products)
	for field := range r.PostForm {
		name, ok := strings.CutPrefix(field, "qty:")
		if !ok {
			continue
		}
		selection = selection.SetQuantity(name, r.PostForm.Get(field))
	}

	if selection.IsEmpty() {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	if err := saveCheckout(w, r, selection); err != nil {
		logger.WithCtx(r.Context()).Error("checkout save failed", "error", err)
		renderError(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/customerinfoform", http.StatusSeeOther)
}

// saveCheckout persists the selection in the session as a JSON string.
func saveCheckout(w http.ResponseWriter, r *http.Request, selection cart.Cart) error {
	raw, err := json.Marshal(selection)
	if err != nil {
		return err
	}

	sess := session.FromCtx(r)
	sess.Set(sessionKeyCheckout, string(raw))
	return sess.Save(w)
}

// loadCheckout restores the selection saved by Checkout. ok is false when
// there is no selection (direct navigation, expired session).
func loadCheckout(r *http.Request) (cart.Cart, bool) {
	raw, ok := session.FromCtx(r).GetString(sessionKeyCheckout)
	if !ok || raw == "" {
		return cart.Cart{}, false
	}

	var selection cart.Cart
	if err := json.Unmarshal([]byte(raw), &selection); err != nil {
		logger.Warn("stored checkout selection unreadable", "error", err)
		return cart.Cart{}, false
	}
	return selection, !selection.IsEmpty()
}

// clearCheckout drops the selection after a completed submission.
func clearCheckout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	sess.Delete(sessionKeyCheckout)
	if err := sess.Save(w); err != nil {
		logger.Warn("checkout clear failed", "error", err)
	}
}
