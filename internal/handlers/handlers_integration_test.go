package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"toystore/internal/cart"
	"toystore/internal/database"
	"toystore/internal/middleware"
	"toystore/internal/models"
	"toystore/internal/repositories"
	"toystore/internal/server"
	"toystore/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

const adminToken = "test_admin_token"

// setupApp builds the full application on a private in-memory SQLite database
// seeded with the demo catalog.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	v := viper.New()
	v.SetDefault("JWT_SECRET", "test_jwt_secret")
	v.AutomaticEnv()

	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	return server.New(server.Dependencies{
		Store:      repositories.NewGORMStore(db),
		Carts:      cart.NewMemoryStore(),
		JWTSecret:  v.GetString("JWT_SECRET"),
		TokenTTL:   time.Hour,
		AdminToken: adminToken,
	})
}

type request struct {
	method, path string
	body         any
	token        string
	headers      map[string]string
}

// do sends req and decodes the JSON response into out when out is non-nil.
func do(t *testing.T, app *fiber.App, req request, out any) int {
	t.Helper()

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		require.NoError(t, err)
		body = bytes.NewReader(payload)
	}
	httpReq := httptest.NewRequest(req.method, req.path, body)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := app.Test(httpReq, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	var resp map[string]string
	status := do(t, app, request{
		method: http.MethodPost,
		path:   "/api/v1/auth/login",
		body:   map[string]string{"email": email, "password": password},
	}, &resp)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	newUser := map[string]string{
		"email":     "test@example.com",
		"password":  "password123",
		"full_name": "Test User",
		"address":   "Novosibirsk, Lenina 1",
	}

	var registerResp map[string]any
	status := do(t, app, request{method: http.MethodPost, path: "/api/v1/auth/register", body: newUser}, &registerResp)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User registered successfully", registerResp["message"])
	user := registerResp["user"].(map[string]any)
	assert.NotContains(t, user, "password_hash")

	status = do(t, app, request{method: http.MethodPost, path: "/api/v1/auth/register", body: newUser}, nil)
	assert.Equal(t, http.StatusConflict, status)

	var invalidResp map[string]any
	status = do(t, app, request{method: http.MethodPost, path: "/api/v1/auth/register", body: map[string]string{
		"email": "not-an-email", "password": "123",
	}}, &invalidResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, invalidResp["errors"], "Email")

	status = do(t, app, request{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{
		"email": "test@example.com", "password": "wrong",
	}}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	token := login(t, app, "test@example.com", "password123")
	authService := services.NewAuthService(nil, "test_jwt_secret", time.Hour)
	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", claims["email"])
	assert.Contains(t, claims, "user_id")
}

func TestCatalogEndpoints(t *testing.T) {
	app := setupApp(t)

	var categories []models.Category
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodGet, path: "/api/v1/categories"}, &categories))
	assert.Len(t, categories, 4)

	var dolls []models.Product
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodGet, path: "/api/v1/products?category_id=3&min_age=4"}, &dolls))
	require.NotEmpty(t, dolls)
	for _, p := range dolls {
		assert.Equal(t, uint(3), p.CategoryID)
		assert.LessOrEqual(t, p.AgeMin, 4)
	}

	var found []models.Product
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodGet, path: "/api/v1/products?search=lego"}, &found))
	assert.Len(t, found, 2)

	var product models.Product
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodGet, path: "/api/v1/products/3"}, &product))
	assert.Equal(t, "Barbie Dreamhouse", product.Name)
	require.NotNil(t, product.Category)
	assert.Equal(t, "Dolls", product.Category.Name)

	assert.Equal(t, http.StatusNotFound, do(t, app, request{method: http.MethodGet, path: "/api/v1/products/999"}, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, app, request{method: http.MethodGet, path: "/api/v1/products/abc"}, nil))
}

type cartView struct {
	Items []struct {
		Product  models.Product  `json:"product"`
		Quantity int             `json:"quantity"`
		Subtotal decimal.Decimal `json:"subtotal"`
	} `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func TestCheckoutPaymentAndDeliveryFlow(t *testing.T) {
	app := setupApp(t)
	token := login(t, app, "ivanov@example.com", database.DemoPassword)

	// --- Cart ---
	addToCart := func(productID uint, quantity int) int {
		return do(t, app, request{
			method: http.MethodPost,
			path:   "/api/v1/cart",
			token:  token,
			body:   map[string]any{"product_id": productID, "quantity": quantity},
		}, nil)
	}
	assert.Equal(t, http.StatusOK, addToCart(3, 1))
	assert.Equal(t, http.StatusOK, addToCart(7, 2))
	assert.Equal(t, http.StatusBadRequest, addToCart(7, 0))
	assert.Equal(t, http.StatusConflict, addToCart(3, 100))
	assert.Equal(t, http.StatusNotFound, addToCart(999, 1))

	var view cartView
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodGet, path: "/api/v1/cart", token: token}, &view))
	require.Len(t, view.Items, 2)
	assert.Equal(t, "13997.99", view.Total.StringFixed(2))

	// --- Checkout ---
	var checkoutResp struct {
		Order models.Order    `json:"order"`
		Total decimal.Decimal `json:"total"`
	}
	status := do(t, app, request{method: http.MethodPost, path: "/api/v1/checkout", token: token}, &checkoutResp)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "13997.99", checkoutResp.Total.StringFixed(2))
	assert.Equal(t, models.OrderStatusCreated, checkoutResp.Order.Status)
	assert.Len(t, checkoutResp.Order.Items, 2)
	orderPath := fmt.Sprintf("/api/v1/orders/%d", checkoutResp.Order.ID)

	view = cartView{}
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodGet, path: "/api/v1/cart", token: token}, &view))
	assert.Empty(t, view.Items)

	assert.Equal(t, http.StatusBadRequest, do(t, app, request{method: http.MethodPost, path: "/api/v1/checkout", token: token}, nil))

	var product models.Product
	do(t, app, request{method: http.MethodGet, path: "/api/v1/products/3"}, &product)
	assert.Equal(t, 4, product.StockQuantity)

	// --- Orders ---
	var summaries []services.OrderSummary
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodGet, path: "/api/v1/orders", token: token}, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "13997.99", summaries[0].Total.StringFixed(2))

	// --- Payment ---
	pay := func(method string) int {
		return do(t, app, request{
			method: http.MethodPost,
			path:   orderPath + "/pay",
			token:  token,
			body:   map[string]string{"method": method},
		}, nil)
	}
	assert.Equal(t, http.StatusBadRequest, pay(""))
	assert.Equal(t, http.StatusBadRequest, pay("Bitcoin"))

	var paymentResp struct {
		Payment models.Payment `json:"payment"`
	}
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodGet, path: orderPath + "/payment", token: token}, &paymentResp))
	assert.Zero(t, paymentResp.Payment.ID)

	assert.Equal(t, http.StatusOK, pay(models.PaymentMethodCard))
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodGet, path: orderPath + "/payment", token: token}, &paymentResp))
	assert.Equal(t, "13997.99", paymentResp.Payment.Amount.StringFixed(2))
	assert.Equal(t, models.PaymentStatusSucceeded, paymentResp.Payment.Status)

	// --- Ownership ---
	otherToken := login(t, app, "petrova@mail.ru", database.DemoPassword)
	assert.Equal(t, http.StatusNotFound, do(t, app, request{method: http.MethodGet, path: orderPath, token: otherToken}, nil))
	assert.Equal(t, http.StatusNotFound, do(t, app, request{
		method: http.MethodPost, path: orderPath + "/pay", token: otherToken, body: map[string]string{"method": "Cash"},
	}, nil))

	// --- Delivery (staff) ---
	adminPath := fmt.Sprintf("/api/v1/admin/orders/%d", checkoutResp.Order.ID)
	admin := map[string]string{middleware.AdminTokenHeader: adminToken}
	assert.Equal(t, http.StatusUnauthorized, do(t, app, request{method: http.MethodPost, path: adminPath + "/delivery", token: token}, nil))
	assert.Equal(t, http.StatusCreated, do(t, app, request{method: http.MethodPost, path: adminPath + "/delivery", headers: admin}, nil))
	assert.Equal(t, http.StatusConflict, do(t, app, request{method: http.MethodPost, path: adminPath + "/delivery", headers: admin}, nil))
	assert.Equal(t, http.StatusConflict, do(t, app, request{method: http.MethodPost, path: adminPath + "/deliver", headers: admin}, nil))
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodPost, path: adminPath + "/ship", headers: admin}, nil))
	assert.Equal(t, http.StatusConflict, do(t, app, request{method: http.MethodPost, path: orderPath + "/cancel", token: token}, nil))
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodPost, path: adminPath + "/deliver", headers: admin}, nil))

	var detail services.OrderDetail
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodGet, path: orderPath, token: token}, &detail))
	assert.Equal(t, models.OrderStatusDelivered, detail.Status)
	require.NotNil(t, detail.DeliveryStatus)
	assert.Equal(t, models.DeliveryStatusDelivered, *detail.DeliveryStatus)
	require.NotNil(t, detail.PaymentStatus)
	assert.Equal(t, models.PaymentStatusSucceeded, *detail.PaymentStatus)
	assert.Equal(t, "Barbie Dreamhouse", detail.Items[0].Name)
}

func TestCancelAndLogout(t *testing.T) {
	app := setupApp(t)
	token := login(t, app, "sidorov@gmail.com", database.DemoPassword)

	do(t, app, request{method: http.MethodPost, path: "/api/v1/cart", token: token, body: map[string]any{"product_id": 4, "quantity": 3}}, nil)
	var checkoutResp struct {
		Order models.Order `json:"order"`
	}
	require.Equal(t, http.StatusCreated, do(t, app, request{method: http.MethodPost, path: "/api/v1/checkout", token: token}, &checkoutResp))

	var product models.Product
	do(t, app, request{method: http.MethodGet, path: "/api/v1/products/4"}, &product)
	assert.Equal(t, 0, product.StockQuantity)

	var found []models.Product
	do(t, app, request{method: http.MethodGet, path: "/api/v1/products?search=drone"}, &found)
	assert.Empty(t, found)

	cancelPath := fmt.Sprintf("/api/v1/orders/%d/cancel", checkoutResp.Order.ID)
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodPost, path: cancelPath, token: token}, nil))
	do(t, app, request{method: http.MethodGet, path: "/api/v1/products/4"}, &product)
	assert.Equal(t, 3, product.StockQuantity)

	// Logout drops the cart.
	do(t, app, request{method: http.MethodPost, path: "/api/v1/cart", token: token, body: map[string]any{"product_id": 6, "quantity": 1}}, nil)
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodPost, path: "/api/v1/auth/logout", token: token}, nil))

	var view cartView
	do(t, app, request{method: http.MethodGet, path: "/api/v1/cart", token: token}, &view)
	assert.Empty(t, view.Items)

	// Removing a single line.
	do(t, app, request{method: http.MethodPost, path: "/api/v1/cart", token: token, body: map[string]any{"product_id": 6, "quantity": 1}}, nil)
	do(t, app, request{method: http.MethodPost, path: "/api/v1/cart", token: token, body: map[string]any{"product_id": 10, "quantity": 1}}, nil)
	view = cartView{}
	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodDelete, path: "/api/v1/cart/items/6", token: token}, &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, uint(10), view.Items[0].Product.ID)

	assert.Equal(t, http.StatusOK, do(t, app, request{method: http.MethodDelete, path: "/api/v1/cart", token: token}, nil))
}
