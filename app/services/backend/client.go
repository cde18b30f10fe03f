// Package backend is the REST client for the commerce backend. All storefront
// data comes through here; nothing else in the app issues outbound HTTP.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shashiranjanraj/shakkar/app/models"
	"github.com/shashiranjanraj/shakkar/config"
	"github.com/shashiranjanraj/shakkar/pkg/auth"
	gohttp "github.com/shashiranjanraj/shakkar/pkg/http"
	"github.com/shashiranjanraj/shakkar/pkg/metrics"
)

// Client talks to the commerce backend API.
type Client struct {
	base string
}

// New returns a Client against the configured API base URL.
func New() *Client {
	return &Client{base: config.APIBaseURL()}
}

// NewWithBase returns a Client against an explicit base URL. Tests use this.
func NewWithBase(base string) *Client {
	return &Client{base: base}
}

// ListProducts fetches the catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveBackendCall("list_products", time.Now())

	resp, err := gohttp.Get(c.base + "/products").WithContext(ctx).Send()
	if err != nil {
		return nil, fmt.Errorf("backend: list products: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return nil, fmt.Errorf("backend: list products: %w", err)
	}

	var out models.ProductList
	if err := resp.JSON(&out); err != nil {
		return nil, fmt.Errorf("backend: list products: %w", err)
	}
	return out.Products, nil
}

// GetProduct fetches one product by id. Requires a bearer token.
func (c *Client) GetProduct(ctx context.Context, token, id string) (models.Product, error) {
	defer metrics.ObserveBackendCall("get_product", time.Now())

	var p models.Product
	resp, err := gohttp.Get(c.base+"/products/"+id).Bearer(token).WithContext(ctx).Send()
	if err != nil {
		return p, fmt.Errorf("backend: get product %s: %w", id, err)
	}
	if err := resp.Throw(); err != nil {
		return p, fmt.Errorf("backend: get product %s: %w", id, err)
	}
	if err := resp.JSON(&p); err != nil {
		return p, fmt.Errorf("backend: get product %s: %w", id, err)
	}
	return p, nil
}

// ListOrders fetches the caller's orders. Requires a bearer token.
func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	defer metrics.ObserveBackendCall("list_orders", time.Now())

	resp, err := gohttp.Get(c.base + "/orders").Bearer(token).WithContext(ctx).Send()
	if err != nil {
		return nil, fmt.Errorf("backend: list orders: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return nil, fmt.Errorf("backend: list orders: %w", err)
	}

	var out models.OrderList
	if err := resp.JSON(&out); err != nil {
		return nil, fmt.Errorf("backend: list orders: %w", err)
	}
	return out.Orders, nil
}

// GetOrder fetches one order by id. Requires a bearer token.
func (c *Client) GetOrder(ctx context.Context, token, id string) (models.Order, error) {
	defer metrics.ObserveBackendCall("get_order", time.Now())

	var o models.Order
	resp, err := gohttp.Get(c.base+"/orders/"+id).Bearer(token).WithContext(ctx).Send()
	if err != nil {
		return o, fmt.Errorf("backend: get order %s: %w", id, err)
	}
	if err := resp.Throw(); err != nil {
		return o, fmt.Errorf("backend: get order %s: %w", id, err)
	}
	if err := resp.JSON(&o); err != nil {
		return o, fmt.Errorf("backend: get order %s: %w", id, err)
	}
	return o, nil
}

// SubmitOrder posts an order submission. The backend must answer 202 with an
// execution identifier or the submission is treated as failed.
func (c *Client) SubmitOrder(ctx context.Context, sub models.OrderSubmission) (string, error) {
	defer metrics.ObserveBackendCall("submit_order", time.Now())
	return c.submitJob(ctx, "/orders", sub)
}

// OrderStatus polls the order job status.
func (c *Client) OrderStatus(ctx context.Context, executionArn string) (models.JobState, error) {
	defer metrics.ObserveBackendCall("order_status", time.Now())
	return c.jobStatus(ctx, "/orders/status/"+executionArn)
}

// CreateReport starts the report generation job.
func (c *Client) CreateReport(ctx context.Context) (string, error) {
	defer metrics.ObserveBackendCall("create_report", time.Now())
	return c.submitJob(ctx, "/create-report", nil)
}

// ReportStatus polls the report job status.
func (c *Client) ReportStatus(ctx context.Context, executionArn string) (models.JobState, error) {
	defer metrics.ObserveBackendCall("report_status", time.Now())
	return c.jobStatus(ctx, "/create-report/status/"+executionArn)
}

// PresignedURLs fetches the report download bundle. The backend returns
// {"urloutputs": "<json>"} where the inner JSON carries one singleton object
// per report file.
func (c *Client) PresignedURLs(ctx context.Context, executionArn string) (models.ReportURLs, error) {
	defer metrics.ObserveBackendCall("presigned_urls", time.Now())

	var urls models.ReportURLs
	resp, err := gohttp.Get(c.base + "/get-presigned-urls/" + executionArn).WithContext(ctx).Send()
	if err != nil {
		return urls, fmt.Errorf("backend: presigned urls: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return urls, fmt.Errorf("backend: presigned urls: %w", err)
	}

	var envelope struct {
		URLOutputs string `json:"urloutputs"`
	}
	if err := resp.JSON(&envelope); err != nil {
		return urls, fmt.Errorf("backend: presigned urls: %w", err)
	}

	var inner struct {
		Orders struct {
			URL string `json:"presigned_url_orders_str"`
		} `json:"presigned_url_orders_str"`
		Products struct {
			URL string `json:"presigned_url_products_str"`
		} `json:"presigned_url_products_str"`
	}
	if err := json.Unmarshal([]byte(envelope.URLOutputs), &inner); err != nil {
		return urls, fmt.Errorf("backend: presigned urls payload: %w", err)
	}

	urls.OrdersURL = inner.Orders.URL
	urls.ProductsURL = inner.Products.URL
	if urls.OrdersURL == "" || urls.ProductsURL == "" {
		return urls, fmt.Errorf("backend: presigned urls payload missing links")
	}
	return urls, nil
}

// ExchangeToken trades a PKCE authorization code plus its verifier for the
// token set.
func (c *Client) ExchangeToken(ctx context.Context, code, verifier string) (auth.TokenSet, error) {
	defer metrics.ObserveBackendCall("exchange_token", time.Now())

	var tokens auth.TokenSet
	payload := map[string]string{
		"grant_type":    "authorization_code",
		"client_id":     config.AuthClientID(),
		"code":          code,
		"redirect_uri":  config.AuthRedirectURI(),
		"code_verifier": verifier,
	}

	resp, err := gohttp.Post(c.base + "/exchange-token").Body(payload).WithContext(ctx).Send()
	if err != nil {
		return tokens, fmt.Errorf("backend: exchange token: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return tokens, fmt.Errorf("backend: exchange token: %w", err)
	}
	if err := resp.JSON(&tokens); err != nil {
		return tokens, fmt.Errorf("backend: exchange token: %w", err)
	}
	if tokens.AccessToken == "" {
		return tokens, fmt.Errorf("backend: exchange token: response carried no access token")
	}
	return tokens, nil
}

// submitJob posts to a job endpoint and insists on 202 + executionArn.
func (c *Client) submitJob(ctx context.Context, path string, body interface{}) (string, error) {
	req := gohttp.Post(c.base + path).WithContext(ctx)
	if body != nil {
		req = req.Body(body)
	}

	resp, err := req.Send()
	if err != nil {
		return "", fmt.Errorf("backend: submit %s: %w", path, err)
	}
	if resp.StatusCode != 202 {
		return "", fmt.Errorf("backend: submit %s: expected 202, got %d: %s", path, resp.StatusCode, resp.Text())
	}

	var accepted models.JobAccepted
	if err := resp.JSON(&accepted); err != nil {
		return "", fmt.Errorf("backend: submit %s: %w", path, err)
	}
	if accepted.ExecutionArn == "" {
		return "", fmt.Errorf("backend: submit %s: 202 without executionArn", path)
	}
	return accepted.ExecutionArn, nil
}

// jobStatus GETs a status endpoint and decodes the state.
func (c *Client) jobStatus(ctx context.Context, path string) (models.JobState, error) {
	var state models.JobState

	resp, err := gohttp.Get(c.base + path).WithContext(ctx).Send()
	if err != nil {
		return state, fmt.Errorf("backend: status %s: %w", path, err)
	}
	if err := resp.Throw(); err != nil {
		return state, fmt.Errorf("backend: status %s: %w", path, err)
	}
	if err := resp.JSON(&state); err != nil {
		return state, fmt.Errorf("backend: status %s: %w", path, err)
	}
	return state, nil
}
