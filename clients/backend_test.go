package clients_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/vladpolisuk/sport-shop-client/clients"
	"github.com/vladpolisuk/sport-shop-client/models"
)

// ---- token source stub ----

type stubTokens struct {
	token string
}

func (s *stubTokens) Token() string { return s.token }

func newClient(t *testing.T, serverURL, token string) (*clients.BackendClient, *stubTokens) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	tokens := &stubTokens{token: token}
	return clients.NewBackendClient(serverURL, 5*time.Second, tokens, logger), tokens
}

func TestRequestsCarryBearerTokenWhenPresent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"name":"Barbell","price":500}`))
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, "tok-123")
	product, err := client.FetchProduct(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "Barbell", product.Name)
}

func TestAnonymousRequestsCarryNoAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, "")
	_, err := client.FetchProduct(context.Background(), 1)

	assert.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedResponseFiresHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, "stale-token")
	hookFired := false
	client.OnUnauthorized(func() { hookFired = true })

	_, err := client.FetchMyOrders(context.Background(), 1, 20)

	assert.True(t, clients.IsUnauthorized(err))
	assert.True(t, hookFired)
	assert.EqualError(t, err, "unauthorized access")
}

func TestForbiddenResponseKeepsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, "tok")
	hookFired := false
	client.OnUnauthorized(func() { hookFired = true })

	err := client.DeleteProduct(context.Background(), 1)

	assert.True(t, clients.IsForbidden(err))
	assert.False(t, hookFired)
	assert.EqualError(t, err, "access forbidden")
}

func TestErrorMessageExtractedFromBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"insufficient stock"}`))
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, "tok")
	_, err := client.CreateOrder(context.Background(), models.CreateOrderRequest{})

	assert.EqualError(t, err, "insufficient stock")
}

func TestErrorMessageFallsBackToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, "tok")
	_, err := client.FetchProduct(context.Background(), 1)

	assert.EqualError(t, err, "http error: status 500")
}

func TestNotFoundIsClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"customer not found"}`))
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, "tok")
	_, err := client.CheckCustomerByEmail(context.Background(), "a@b.c")

	assert.True(t, clients.IsNotFound(err))
	assert.False(t, clients.IsForbidden(err))
}

func TestNoContentResponseNeedsNoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, "tok")

	assert.NoError(t, client.DeleteOrder(context.Background(), 5))
}

func TestWrappedListResponsesAreUnwrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/delivery/methods", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":1,"code":"courier","name":"Courier","isActive":true}]}`))
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, "")
	methods, err := client.FetchDeliveryMethods(context.Background())

	assert.NoError(t, err)
	assert.Len(t, methods, 1)
	assert.Equal(t, "courier", methods[0].Code)
}

func TestDeliveryCostQueryParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/delivery/cost", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("method"))
		assert.Equal(t, "10", r.URL.Query().Get("distance"))
		assert.Equal(t, "3", r.URL.Query().Get("weight"))
		w.Write([]byte(`350`))
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, "")
	cost, err := client.DeliveryCost(context.Background(), 1, 10, 3)

	assert.NoError(t, err)
	assert.Equal(t, 350.0, cost)
}

func TestMyOrdersScopedToCurrentUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/my", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("currentUser"))
		w.Write([]byte(`[{"id":10,"status":"NEW"}]`))
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL, "tok")
	orders, err := client.FetchMyOrders(context.Background(), 1, 20)

	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, int64(10), orders[0].ID)
}
