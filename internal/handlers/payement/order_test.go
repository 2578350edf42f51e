package payement

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performOrderRequest(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/order/place", func(c *gin.Context) {
		c.Set("user_id", "user123")
		handler(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/order/place", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// La validation du paiement partagé rejette avant tout accès à la base.
func TestPlaceOrderSplitMismatch(t *testing.T) {
	body := `{
		"items": [{"productId": "p1", "name": "Kurta", "size": "M", "quantity": 1, "price": 1000}],
		"amount": 1000,
		"address": {"firstName": "Asha", "street": "12 MG Road", "city": "Bengaluru"},
		"splitPayment": {
			"payer1": {"name": "Asha", "amount": 500},
			"payer2": {"name": "Ravi", "amount": 400}
		}
	}`

	w := performOrderRequest(t, PlaceOrder, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "split amounts mismatch")
}

func TestPlaceOrderInvalidBody(t *testing.T) {
	w := performOrderRequest(t, PlaceOrder, `{"amount": 0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	body := `{
		"items": [],
		"amount": 1000,
		"address": {"firstName": "Asha"}
	}`
	w := performOrderRequest(t, PlaceOrder, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderRazorpaySplitMismatch(t *testing.T) {
	body := `{
		"items": [{"productId": "p1", "name": "Kurta", "size": "M", "quantity": 1, "price": 999}],
		"amount": 999,
		"address": {"firstName": "Asha", "street": "12 MG Road", "city": "Bengaluru"},
		"splitPayment": {
			"payer1": {"name": "Asha", "amount": 499.50},
			"payer2": {"name": "Ravi", "amount": 250}
		}
	}`

	w := performOrderRequest(t, PlaceOrderRazorpay, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "split amounts mismatch")
}
