package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/shakkar/app/models"
	"github.com/shashiranjanraj/shakkar/app/services/backend"
	"github.com/shashiranjanraj/shakkar/app/views"
	"github.com/shashiranjanraj/shakkar/pkg/cache"
	"github.com/shashiranjanraj/shakkar/pkg/collection"
	"github.com/shashiranjanraj/shakkar/pkg/logger"
	"github.com/shashiranjanraj/shakkar/pkg/metrics"
	"github.com/shashiranjanraj/shakkar/pkg/workerpool"
)

// productCacheTTL keeps order-detail product lookups cheap across page
// refreshes without letting prices go stale for long.
const productCacheTTL = 60 * time.Second

// OrderController serves the order list and detail views for signed-in staff.
type OrderController struct {
	backend *backend.Client
	pool    *workerpool.Pool
}

func NewOrderController(client *backend.Client, pool *workerpool.Pool) *OrderController {
	return &OrderController{backend: client, pool: pool}
}

// Index lists the caller's orders. A backend failure is logged and renders
// the empty state rather than an error page.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.backend.ListOrders(r.Context(), bearerToken(r))
	if err != nil {
		logger.WithCtx(r.Context()).Error("orders fetch failed", "error", err)
		orders = nil
	}

	views.Render(w, "orders", page(r, "Orders", true, struct{ Orders []models.Order }{orders}))
}

// detailLine pairs an ordered item with the product's current state. The
// amount shown is the current price times the ordered quantity, matching the
// catalog's behavior rather than a historical snapshot.
type detailLine struct {
	Item    models.OrderedItem
	Product models.Product
	Amount  models.Money
	Err     string
}

// orderDetailView is the template payload for one order.
type orderDetailView struct {
	Order models.Order
	Lines []detailLine
}

// Show renders one order. Line-item products are fetched as a bounded batch
// through the worker pool, with each product cached briefly in Redis.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := c.backend.GetOrder(r.Context(), bearerToken(r), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("order fetch failed", "id", id, "error", err)
		renderError(w, r, err.Error())
		return
	}

	view := orderDetailView{Order: order, Lines: c.fetchLines(r, order)}
	views.Render(w, "order_detail", page(r, "Order detail", true, view))
}

// fetchLines resolves every line item's product concurrently. Duplicate
// product ids collapse to one lookup.
func (c *OrderController) fetchLines(r *http.Request, order models.Order) []detailLine {
	token := bearerToken(r)

	ids := collection.Unique(collection.Map(order.OrderedItems, func(it models.OrderedItem) string {
		return it.ProductID
	}))

	type result struct {
		product models.Product
		err     error
	}
	results := make([]result, len(ids))

	err := c.pool.ForEach(len(ids), func(i int) {
		results[i].product, results[i].err = c.product(r, token, ids[i])
	})
	if err != nil {
		// Pool shut down mid-request; fall back to sequential fetches.
		for i, pid := range ids {
			results[i].product, results[i].err = c.product(r, token, pid)
		}
	}

	byID := map[string]result{}
	for i, pid := range ids {
		byID[pid] = results[i]
	}

	return collection.Map(order.OrderedItems, func(it models.OrderedItem) detailLine {
		res := byID[it.ProductID]
		if res.err != nil {
			return detailLine{Item: it, Err: res.err.Error()}
		}
		return detailLine{
			Item:    it,
			Product: res.product,
			Amount:  res.product.Price * models.Money(int(it.Quantity)),
		}
	})
}

// product reads through the short-TTL Redis cache to the backend.
func (c *OrderController) product(r *http.Request, token, id string) (models.Product, error) {
	key := "shakkar:product:" + id

	var p models.Product
	if cache.Get(key, &p) {
		metrics.CacheHits.WithLabelValues("product").Inc()
		return p, nil
	}
	metrics.CacheMisses.WithLabelValues("product").Inc()

	p, err := c.backend.GetProduct(r.Context(), token, id)
	if err != nil {
		return p, err
	}

	if err := cache.Set(key, p, productCacheTTL); err != nil {
		logger.Warn("product cache write failed", "id", id, "error", err)
	}
	return p, nil
}
