package backend

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shakkar/app/models"
	gohttp "github.com/shashiranjanraj/shakkar/pkg/http"
	"github.com/shashiranjanraj/shakkar/pkg/testkit"
)

const base = "https://api.test.example.com"

// withMock installs a single-step mock transport for the duration of the test.
func withMock(t *testing.T, step testkit.MockStep) {
	t.Helper()
	s := &testkit.Scenario{Name: t.Name(), BackendMockStep: []testkit.MockStep{step}}
	gohttp.DefaultClient.Transport = testkit.NewMockTransport(s)
	t.Cleanup(gohttp.ResetTransport)
}

func TestListProducts(t *testing.T) {
	// Prices arrive both quoted and bare depending on the backend handler.
	withMock(t, testkit.MockStep{
		MatchURL: base + "/products",
		ReturnData: testkit.MockReturnData{Body: json.RawMessage(`{
			"products": [
				{"id":"p1","product_name":"Sugar 1kg","price":"3.50","inventory_count":"12","image":"sugar.jpg"},
				{"id":"p2","product_name":"Jaggery 500g","price":2.25,"inventory_count":4,"image":""}
			]
		}`)},
	})

	products, err := NewWithBase(base).ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, models.Money(3.5), products[0].Price)
	assert.Equal(t, models.FlexInt(12), products[0].InventoryCount)
	assert.Equal(t, models.Money(2.25), products[1].Price)
}

func TestListProductsNon200(t *testing.T) {
	withMock(t, testkit.MockStep{
		MatchURL:   base + "/products",
		ReturnData: testkit.MockReturnData{StatusCode: 500, Body: json.RawMessage(`{"message":"boom"}`)},
	})

	_, err := NewWithBase(base).ListProducts(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSubmitOrderRequires202WithExecutionArn(t *testing.T) {
	sub := models.OrderSubmission{
		PersonalInfo: models.CustomerInfo{CustomerName: "Asha Rao", Email: "asha@example.com", Phone: "5550102030"},
		CustomerProduct: models.CustomerProduct{ProductsToSubmit: []models.SubmitItem{
			{Name: "Sugar 1kg", ID: "p1", Quantity: 2, Price: 3.5},
		}},
	}

	t.Run("accepted", func(t *testing.T) {
		withMock(t, testkit.MockStep{
			MatchURL:    base + "/orders",
			MatchMethod: "POST",
			ReturnData: testkit.MockReturnData{
				StatusCode: 202,
				Body:       json.RawMessage(`{"executionArn":"arn:states:::execution:orders:42"}`),
			},
		})

		arn, err := NewWithBase(base).SubmitOrder(context.Background(), sub)
		require.NoError(t, err)
		assert.Equal(t, "arn:states:::execution:orders:42", arn)
	})

	t.Run("202 without executionArn", func(t *testing.T) {
		withMock(t, testkit.MockStep{
			MatchURL:    base + "/orders",
			MatchMethod: "POST",
			ReturnData:  testkit.MockReturnData{StatusCode: 202, Body: json.RawMessage(`{}`)},
		})

		_, err := NewWithBase(base).SubmitOrder(context.Background(), sub)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "executionArn")
	})

	t.Run("plain 200 is a failure", func(t *testing.T) {
		withMock(t, testkit.MockStep{
			MatchURL:    base + "/orders",
			MatchMethod: "POST",
			ReturnData:  testkit.MockReturnData{StatusCode: 200, Body: json.RawMessage(`{"executionArn":"x"}`)},
		})

		_, err := NewWithBase(base).SubmitOrder(context.Background(), sub)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 202")
	})
}

func TestOrderStatus(t *testing.T) {
	withMock(t, testkit.MockStep{
		MatchURL: base + "/orders/status/arn-1",
		ReturnData: testkit.MockReturnData{
			Body: json.RawMessage(`{"status":"FAILED","output":"inventory check failed"}`),
		},
	})

	state, err := NewWithBase(base).OrderStatus(context.Background(), "arn-1")

	require.NoError(t, err)
	assert.Equal(t, models.JobFailed, state.Status)
	assert.Equal(t, "inventory check failed", state.Output)
}

func TestPresignedURLsParsesNestedPayload(t *testing.T) {
	inner := `{"presigned_url_orders_str":{"presigned_url_orders_str":"https://bucket/orders.csv?sig=a"},` +
		`"presigned_url_products_str":{"presigned_url_products_str":"https://bucket/products.csv?sig=b"}}`
	envelope, _ := json.Marshal(map[string]string{"urloutputs": inner})

	withMock(t, testkit.MockStep{
		MatchURL:   base + "/get-presigned-urls/arn-9",
		ReturnData: testkit.MockReturnData{Body: envelope},
	})

	urls, err := NewWithBase(base).PresignedURLs(context.Background(), "arn-9")

	require.NoError(t, err)
	assert.Equal(t, "https://bucket/orders.csv?sig=a", urls.OrdersURL)
	assert.Equal(t, "https://bucket/products.csv?sig=b", urls.ProductsURL)
}

func TestPresignedURLsMissingLink(t *testing.T) {
	envelope, _ := json.Marshal(map[string]string{"urloutputs": `{}`})
	withMock(t, testkit.MockStep{
		MatchURL:   base + "/get-presigned-urls/arn-9",
		ReturnData: testkit.MockReturnData{Body: envelope},
	})

	_, err := NewWithBase(base).PresignedURLs(context.Background(), "arn-9")
	require.Error(t, err)
}

func TestExchangeToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		withMock(t, testkit.MockStep{
			MatchURL:    base + "/exchange-token",
			MatchMethod: "POST",
			ReturnData: testkit.MockReturnData{
				Body: json.RawMessage(`{"access_token":"at","id_token":"it","refresh_token":"rt"}`),
			},
		})

		tokens, err := NewWithBase(base).ExchangeToken(context.Background(), "code-1", "verifier-1")
		require.NoError(t, err)
		assert.Equal(t, "at", tokens.AccessToken)
		assert.Equal(t, "it", tokens.IDToken)
		assert.Equal(t, "rt", tokens.RefreshToken)
	})

	t.Run("no access token", func(t *testing.T) {
		withMock(t, testkit.MockStep{
			MatchURL:    base + "/exchange-token",
			MatchMethod: "POST",
			ReturnData:  testkit.MockReturnData{Body: json.RawMessage(`{}`)},
		})

		_, err := NewWithBase(base).ExchangeToken(context.Background(), "code-1", "verifier-1")
		require.Error(t, err)
	})
}
