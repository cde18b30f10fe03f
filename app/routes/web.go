// Package routes wires every storefront URL to its controller.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/shakkar/app/controllers"
	"github.com/shashiranjanraj/shakkar/app/services/backend"
	"github.com/shashiranjanraj/shakkar/app/services/jobs"
	"github.com/shashiranjanraj/shakkar/app/views"
	"github.com/shashiranjanraj/shakkar/pkg/middleware"
	"github.com/shashiranjanraj/shakkar/pkg/router"
	"github.com/shashiranjanraj/shakkar/pkg/workerpool"
)

// detailFetchWorkers bounds the concurrent product lookups on the order
// detail view.
const detailFetchWorkers = 8

// Register mounts the full storefront on r.
func Register(r *router.Router) {
	registerListeners()

	client := backend.New()
	poller := jobs.New()
	pool := workerpool.New(detailFetchWorkers)

	pages := controllers.NewPageController()
	products := controllers.NewProductController(client)
	customer := controllers.NewCustomerController(client, poller)
	orders := controllers.NewOrderController(client, pool)
	report := controllers.NewReportController(client, poller)
	authC := controllers.NewAuthController(client)

	r.Get("/", "root", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/home", http.StatusMovedPermanently)
	})
	r.Get("/home", "pages.home", pages.Home)
	r.Get("/about", "pages.about", pages.About)
	r.Get("/healthz", "pages.healthz", pages.Healthz)

	r.Get("/products", "products.index", products.Index)
	r.Post("/products", "products.checkout", products.Checkout)

	r.Get("/customerinfoform", "customer.form", customer.Form)
	r.Post("/customerinfoform", "customer.submit", customer.Submit)

	r.Get("/orders", "orders.index", orders.Index, middleware.RequireSignIn)
	r.Get("/orders/{id}", "orders.show", orders.Show, middleware.RequireSignIn)
	r.Get("/generatereport", "report.generate", report.Generate, middleware.RequireSignIn)

	r.Get("/signin", "auth.signin", authC.SignIn)
	r.Get("/callback", "auth.callback", authC.Callback)
	r.Post("/callback/fragment", "auth.fragment", authC.FragmentToken)
	r.Get("/signout", "auth.signout", authC.SignOut)

	r.HandleFunc("/static/*", views.StaticHandler().ServeHTTP)
}
