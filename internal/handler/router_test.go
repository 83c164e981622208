package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"maitri-medico/internal/cache"
	"maitri-medico/internal/middleware"
	"maitri-medico/internal/repository"
	"maitri-medico/internal/service"
	"maitri-medico/internal/storage"
	"maitri-medico/internal/testutil"
	"maitri-medico/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const (
	superEmail = "meera@maitri.test"
	adminEmail = "asha@maitri.test"
	password   = "correct-horse"
)

type testAPI struct {
	app   *fiber.App
	store *storage.MemoryStore
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	db := testutil.NewDB(t)
	ctx := context.Background()

	productRepo := repository.NewProductRepo(db)
	requestRepo := repository.NewRequestRepo(db)
	cartRepo := repository.NewCartRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)

	if err := service.Seed(ctx, privilegeRepo, roleRepo, userRepo, service.SeedConfig{
		Email: superEmail, Password: password, FullName: "Meera",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := storage.NewMemoryStore()
	tokens := jwt.NewManager("test-secret", time.Hour)
	productCache := cache.NewProductCache(nil, 0)

	catalog := service.NewCatalogService(db, productRepo, cartRepo, store, productCache, service.NopPublisher{})
	requests := service.NewRequestService(db, requestRepo, productRepo, cartRepo, store, productCache, service.NopPublisher{})
	users := service.NewUserService(userRepo, roleRepo)

	if _, err := users.CreateUser(ctx, service.Actor{Name: "seed"}, &service.CreateUserRequest{
		Email: adminEmail, Password: password, FullName: "Asha",
	}); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	const maxUpload = 1 << 20
	app := NewApp("test", maxUpload+(1<<20))
	SetupRoutes(app, Handlers{
		Product:   NewProductHandler(catalog, maxUpload),
		Request:   NewRequestHandler(requests, maxUpload),
		Cart:      NewCartHandler(service.NewCartService(db, cartRepo, productRepo, repository.NewOrderRepo(db))),
		Auth:      NewAuthHandler(service.NewAuthService(userRepo, tokens)),
		User:      NewUserHandler(users),
		Dashboard: NewDashboardHandler(service.NewDashboardService(repository.NewDashboardRepo(db))),
		Role:      NewRoleHandler(roleRepo),
	}, middleware.RequireAuth(tokens, userRepo))

	return &testAPI{app: app, store: store}
}

func (a *testAPI) do(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	body := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("%s %s: decode %q: %v", req.Method, req.URL.Path, raw, err)
		}
	}
	return resp.StatusCode, body
}

func (a *testAPI) json(t *testing.T, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.do(t, req)
}

func (a *testAPI) login(t *testing.T, email string) string {
	t.Helper()
	status, body := a.json(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: %d %v", email, status, body)
	}
	return body["token"].(string)
}

func nested(body map[string]interface{}, key string) map[string]interface{} {
	m, _ := body[key].(map[string]interface{})
	return m
}

func TestAuth_Guards(t *testing.T) {
	api := setupAPI(t)

	status, body := api.json(t, http.MethodGet, "/api/v1/admin/requests", "", nil)
	if status != http.StatusUnauthorized || body["error"] != "unauthorized" {
		t.Fatalf("no token: %d %v", status, body)
	}

	status, _ = api.json(t, http.MethodGet, "/api/v1/admin/requests", "garbage", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", status)
	}

	admin := api.login(t, adminEmail)
	status, body = api.json(t, http.MethodGet, "/api/v1/superadmin/requests", admin, nil)
	if status != http.StatusForbidden || body["error"] != "forbidden" {
		t.Fatalf("admin on superadmin route: %d %v", status, body)
	}

	status, _ = api.json(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": adminEmail, "password": "wrong-password",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong password: %d", status)
	}

	status, body = api.json(t, http.MethodGet, "/api/v1/auth/me", admin, nil)
	if status != http.StatusOK || nested(body, "user")["email"] != adminEmail {
		t.Fatalf("me: %d %v", status, body)
	}
}

func TestRequestFlow_SubmitApprove(t *testing.T) {
	api := setupAPI(t)
	admin := api.login(t, adminEmail)
	super := api.login(t, superEmail)

	status, body := api.json(t, http.MethodPost, "/api/v1/admin/request/add", admin, map[string]string{
		"name": "CalmTea", "price": "199", "category": "naturalHerbalMentalWellness",
	})
	if status != http.StatusCreated {
		t.Fatalf("submit: %d %v", status, body)
	}
	req := nested(body, "request")
	if req["status"] != "pending" {
		t.Fatalf("status = %v", req["status"])
	}
	id := req["id"].(string)

	status, body = api.json(t, http.MethodGet, "/api/v1/products/category/naturalHerbalMentalWellness", "", nil)
	if status != http.StatusOK || len(body["products"].([]interface{})) != 0 {
		t.Fatalf("catalog before approval: %d %v", status, body)
	}

	status, body = api.json(t, http.MethodPost, "/api/v1/superadmin/requests/"+id+"/approve", super, nil)
	if status != http.StatusOK || nested(body, "request")["status"] != "approved" {
		t.Fatalf("approve: %d %v", status, body)
	}

	status, body = api.json(t, http.MethodPost, "/api/v1/superadmin/requests/"+id+"/approve", super, nil)
	if status != http.StatusConflict || body["error"] != "conflict" {
		t.Fatalf("second approve: %d %v", status, body)
	}

	status, body = api.json(t, http.MethodGet, "/api/v1/products/category/naturalHerbalMentalWellness", "", nil)
	products := body["products"].([]interface{})
	if status != http.StatusOK || len(products) != 1 {
		t.Fatalf("catalog after approval: %d %v", status, body)
	}
	if p := products[0].(map[string]interface{}); p["name"] != "CalmTea" {
		t.Fatalf("product = %v", p)
	}

	status, body = api.json(t, http.MethodPost, "/api/v1/admin/requests/"+id+"/cancel", admin, nil)
	if status != http.StatusConflict {
		t.Fatalf("cancel approved: %d %v", status, body)
	}
}

func TestSubmit_MultipartUpload(t *testing.T) {
	api := setupAPI(t)
	admin := api.login(t, adminEmail)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("name", "Brahmi")
	w.WriteField("price", "240")
	w.WriteField("category", "naturalHerbalMentalWellness")
	fw, _ := w.CreateFormFile("image", "brahmi.png")
	fw.Write(testutil.PNG)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/request/add", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)
	status, body := api.do(t, req)
	if status != http.StatusCreated {
		t.Fatalf("submit: %d %v", status, body)
	}
	data := nested(nested(body, "request"), "product_data")
	img, _ := data["image"].(string)
	if !strings.HasPrefix(img, "memory://") {
		t.Fatalf("image = %v", data["image"])
	}
}

func TestSubmit_NotAnImage(t *testing.T) {
	api := setupAPI(t)
	admin := api.login(t, adminEmail)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("name", "Brahmi")
	w.WriteField("price", "240")
	w.WriteField("category", "naturalHerbalMentalWellness")
	fw, _ := w.CreateFormFile("image", "brahmi.png")
	fw.Write([]byte("plain text pretending to be a png"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/request/add", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)
	status, body := api.do(t, req)
	if status != http.StatusBadRequest || body["error"] != "validation_error" {
		t.Fatalf("non-image: %d %v", status, body)
	}
	if len(api.store.RetireCalls) != 0 {
		t.Fatalf("nothing was stored, nothing to retire")
	}
}

func TestErrorEnvelope(t *testing.T) {
	api := setupAPI(t)

	status, body := api.json(t, http.MethodGet, "/api/v1/products/not-a-uuid", "", nil)
	if status != http.StatusBadRequest || body["error"] != "validation_error" {
		t.Fatalf("bad id: %d %v", status, body)
	}

	status, body = api.json(t, http.MethodGet, "/api/v1/products/6f1c1f3e-8a7d-4b43-9f3a-0d3c2b1a0e9f", "", nil)
	if status != http.StatusNotFound || body["error"] != "not_found" {
		t.Fatalf("missing product: %d %v", status, body)
	}

	status, body = api.json(t, http.MethodGet, "/api/v1/no-such-route", "", nil)
	if status != http.StatusNotFound || body["error"] != "not_found" {
		t.Fatalf("unknown route: %d %v", status, body)
	}

	status, body = api.json(t, http.MethodGet, "/api/v1/products/category/unknown", "", nil)
	if status != http.StatusOK || len(body["products"].([]interface{})) != 0 {
		t.Fatalf("unknown category: %d %v", status, body)
	}
}

func TestCartEndpoints(t *testing.T) {
	api := setupAPI(t)
	super := api.login(t, superEmail)

	status, body := api.json(t, http.MethodPost, "/api/v1/superadmin/products", super, map[string]string{
		"name": "Ashwagandha", "price": "349.50", "category": "antiAnxiety",
	})
	if status != http.StatusCreated {
		t.Fatalf("create product: %d %v", status, body)
	}
	productID := nested(body, "product")["id"].(string)

	_, body = api.json(t, http.MethodGet, "/api/v1/cart/new", "", nil)
	cartID := body["cart_id"].(string)

	for i := 0; i < 2; i++ {
		status, body = api.json(t, http.MethodPost, "/api/v1/cart", "", map[string]interface{}{
			"cart_id": cartID, "product_id": productID, "quantity": 1,
		})
		if status != http.StatusCreated {
			t.Fatalf("add #%d: %d %v", i+1, status, body)
		}
	}

	status, body = api.json(t, http.MethodGet, "/api/v1/cart/"+cartID, "", nil)
	items := body["cartItems"].([]interface{})
	if status != http.StatusOK || len(items) != 1 {
		t.Fatalf("get cart: %d %v", status, body)
	}
	if q := items[0].(map[string]interface{})["quantity"]; q != float64(2) {
		t.Fatalf("quantity = %v", q)
	}

	status, body = api.json(t, http.MethodPost, "/api/v1/cart/"+cartID+"/checkout", "", map[string]string{
		"customer_name": "Priya", "phone": "9876543210", "address": "12 MG Road, Pune",
	})
	if status != http.StatusCreated || nested(body, "order")["status"] != "placed" {
		t.Fatalf("checkout: %d %v", status, body)
	}

	_, body = api.json(t, http.MethodGet, "/api/v1/cart/"+cartID, "", nil)
	if len(body["cartItems"].([]interface{})) != 0 {
		t.Fatalf("cart not cleared: %v", body)
	}
}

func (a *testAPI) form(t *testing.T, path, token string, values url.Values) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	return a.do(t, req)
}

func TestSubmit_URLEncodedForm(t *testing.T) {
	api := setupAPI(t)
	admin := api.login(t, adminEmail)

	status, body := api.form(t, "/api/v1/admin/request/add", admin, url.Values{
		"name":     {"Tulsi Drops"},
		"price":    {"120.75"},
		"category": {"naturalHerbalMentalWellness"},
	})
	if status != http.StatusCreated {
		t.Fatalf("submit: %d %v", status, body)
	}
	req := nested(body, "request")
	if req["status"] != "pending" || req["request_type"] != "add" {
		t.Fatalf("unexpected request: %v", req)
	}
	if name := nested(req, "product_data")["name"]; name != "Tulsi Drops" {
		t.Fatalf("snapshot name = %v", name)
	}

	status, body = api.form(t, "/api/v1/admin/request/add", admin, url.Values{
		"name":     {"Tulsi Drops"},
		"price":    {"abc"},
		"category": {"naturalHerbalMentalWellness"},
	})
	if status != http.StatusBadRequest || body["error"] != "validation_error" {
		t.Fatalf("bad price: %d %v", status, body)
	}
}

func TestProductJSON_HidesAssetHandle(t *testing.T) {
	api := setupAPI(t)
	super := api.login(t, superEmail)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("name", "Shankhpushpi")
	w.WriteField("price", "210")
	w.WriteField("category", "cognitiveFocusEnhancers")
	fw, _ := w.CreateFormFile("image", "leaf.png")
	fw.Write(testutil.PNG)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/superadmin/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+super)
	status, body := api.do(t, req)
	if status != http.StatusCreated {
		t.Fatalf("create: %d %v", status, body)
	}
	id := nested(body, "product")["id"].(string)

	status, body = api.json(t, http.MethodGet, "/api/v1/products/"+id, "", nil)
	product := nested(body, "product")
	if status != http.StatusOK || product["image"] == nil {
		t.Fatalf("get: %d %v", status, body)
	}
	if _, ok := product["asset_handle"]; ok {
		t.Fatalf("asset_handle exposed on public route: %v", product)
	}
}
