package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/shakkar/app/models"
	"github.com/shashiranjanraj/shakkar/app/services/backend"
	"github.com/shashiranjanraj/shakkar/app/services/cart"
	"github.com/shashiranjanraj/shakkar/app/services/jobs"
	"github.com/shashiranjanraj/shakkar/app/views"
	"github.com/shashiranjanraj/shakkar/pkg/bind"
	"github.com/shashiranjanraj/shakkar/pkg/event"
	"github.com/shashiranjanraj/shakkar/pkg/logger"
)

// CustomerController collects contact details and drives order submission.
type CustomerController struct {
	backend *backend.Client
	poller  *jobs.Poller
}

func NewCustomerController(client *backend.Client, poller *jobs.Poller) *CustomerController {
	return &CustomerController{backend: client, poller: poller}
}

// customerInfoView is the template payload for the contact form.
type customerInfoView struct {
	Lines  []cart.Line
	Total  string
	Info   models.CustomerInfo
	Errors map[string]string
}

// Form renders the contact form with the selection summary. The event banner
// is hidden on this page.
func (c *CustomerController) Form(w http.ResponseWriter, r *http.Request) {
	selection, ok := loadCheckout(r)
	if !ok {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	c.renderForm(w, r, selection, customerInfoView{})
}

// Submit validates the contact details, posts the order and polls the job to
// a terminal state before answering. The visitor closing the tab cancels the
// request context, which stops the poll loop.
func (c *CustomerController) Submit(w http.ResponseWriter, r *http.Request) {
	selection, ok := loadCheckout(r)
	if !ok {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	var info models.CustomerInfo
	errs, err := bind.Form(r, &info)
	if err != nil {
		renderError(w, r, err.Error())
		return
	}
	if len(errs) > 0 {
		c.renderForm(w, r, selection, customerInfoView{Info: info, Errors: errs})
		return
	}

	submission := models.OrderSubmission{
		PersonalInfo:    info,
		CustomerProduct: models.CustomerProduct{ProductsToSubmit: selection.SubmitItems()},
	}

	log := logger.WithCtx(r.Context())

	arn, err := c.backend.SubmitOrder(r.Context(), submission)
	if err != nil {
		log.Error("order submission rejected", "error", err)
		renderError(w, r, err.Error())
		return
	}

	log.Info("order submitted, polling", "executionArn", arn)
	_, err = c.poller.Wait(r.Context(), "order", func(ctx context.Context) (models.JobState, error) {
		return c.backend.OrderStatus(ctx, arn)
	})
	if err != nil {
		var term *jobs.TerminalError
		if errors.As(err, &term) {
			renderError(w, r, term.Output)
			return
		}
		log.Error("order status poll failed", "error", err)
		renderError(w, r, err.Error())
		return
	}

	event.FireAsync("order.placed", models.OrderPlacedEvent{
		CustomerName: info.CustomerName,
		Email:        info.Email,
		Items:        len(selection.Selected()),
		Total:        selection.Total(),
		ExecutionArn: arn,
	})

	clearCheckout(w, r)
	views.Render(w, "order_success", page(r, "Order placed", true, nil))
}

func (c *CustomerController) renderForm(w http.ResponseWriter, r *http.Request, selection cart.Cart, view customerInfoView) {
	view.Lines = selection.Selected()
	view.Total = selection.Total()
	views.Render(w, "customerinfo", page(r, "Your details", false, view))
}
