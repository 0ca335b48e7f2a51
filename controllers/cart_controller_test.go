package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/vladpolisuk/sport-shop-client/clients"
	"github.com/vladpolisuk/sport-shop-client/controllers"
	"github.com/vladpolisuk/sport-shop-client/middleware"
	"github.com/vladpolisuk/sport-shop-client/models"
	"github.com/vladpolisuk/sport-shop-client/services"
	"github.com/vladpolisuk/sport-shop-client/storage"
)

// ---- session stub ----

type stubSession struct {
	token string
	user  *models.User
}

func (s *stubSession) Token() string             { return s.token }
func (s *stubSession) CurrentUser() *models.User { return s.user }
func (s *stubSession) IsAdmin() bool             { return s.user != nil && s.user.HasRole(models.RoleAdmin) }

// ---- helpers ----

func setupCartRouter(t *testing.T, backendURL string, session middleware.Session) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()

	backend := clients.NewBackendClient(backendURL, 5*time.Second, &stubSession{token: "tok"}, logger)
	carts := services.NewCartService(storage.NewMemory(), services.NopNotifier{}, logger)
	cc := controllers.NewCartController(carts, backend)

	r := gin.New()
	cart := r.Group("/cart")
	cart.Use(middleware.SessionRequired(session))
	{
		cart.GET("", cc.Get)
		cart.POST("/add", cc.Add)
		cart.PUT("/items/:product_id", cc.SetQuantity)
		cart.DELETE("/remove/:product_id", cc.Remove)
		cart.DELETE("/clear", cc.Clear)
	}
	return r
}

func catalogBackend() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/1":
			w.Write([]byte(`{"id":1,"name":"Barbell","price":500,"stock":10}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"product not found"}`))
		}
	}))
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestCartRequiresSession(t *testing.T) {
	server := catalogBackend()
	defer server.Close()
	r := setupCartRouter(t, server.URL, &stubSession{})

	w := doJSON(r, http.MethodGet, "/cart", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddFetchesProductFromCatalog(t *testing.T) {
	server := catalogBackend()
	defer server.Close()
	session := &stubSession{token: "tok", user: &models.User{Username: "alice"}}
	r := setupCartRouter(t, server.URL, session)

	w := doJSON(r, http.MethodPost, "/cart/add", gin.H{"productId": 1, "quantity": 2})
	assert.Equal(t, http.StatusOK, w.Code)

	var cart models.Cart
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Len(t, cart.Items, 1)
	// name and price come from the catalog, not the request
	assert.Equal(t, "Barbell", cart.Items[0].Name)
	assert.Equal(t, 500.0, cart.Items[0].Price)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddUnknownProductKeepsBackendStatus(t *testing.T) {
	server := catalogBackend()
	defer server.Close()
	session := &stubSession{token: "tok", user: &models.User{Username: "alice"}}
	r := setupCartRouter(t, server.URL, session)

	w := doJSON(r, http.MethodPost, "/cart/add", gin.H{"productId": 99, "quantity": 1})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "product not found")
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	server := catalogBackend()
	defer server.Close()
	session := &stubSession{token: "tok", user: &models.User{Username: "alice"}}
	r := setupCartRouter(t, server.URL, session)

	doJSON(r, http.MethodPost, "/cart/add", gin.H{"productId": 1, "quantity": 2})
	w := doJSON(r, http.MethodPut, "/cart/items/1", gin.H{"quantity": 0})
	assert.Equal(t, http.StatusOK, w.Code)

	var cart models.Cart
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)
}

func TestClearEmptiesCart(t *testing.T) {
	server := catalogBackend()
	defer server.Close()
	session := &stubSession{token: "tok", user: &models.User{Username: "alice"}}
	r := setupCartRouter(t, server.URL, session)

	doJSON(r, http.MethodPost, "/cart/add", gin.H{"productId": 1, "quantity": 2})
	w := doJSON(r, http.MethodDelete, "/cart/clear", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/cart", nil)
	var cart models.Cart
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)
}
