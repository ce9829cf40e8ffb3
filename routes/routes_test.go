package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mohammedmirzada/order-tracking/configs"
	"github.com/mohammedmirzada/order-tracking/entity"
	"github.com/mohammedmirzada/order-tracking/pkg/testutil"
	"github.com/mohammedmirzada/order-tracking/ws"
)

type api struct {
	t     *testing.T
	r     *gin.Engine
	db    *gorm.DB
	cfg   *configs.Config
	token string
}

func setupAPI(t *testing.T) *api {
	return newAPI(t, nil)
}

func newAPI(t *testing.T, hub *ws.EventHub) *api {
	gin.SetMode(gin.TestMode)

	cfg := &configs.Config{
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		CORSOrigins:    []string{"*"},
		UploadDir:      t.TempDir(),
		UploadMaxBytes: 1 << 20,
	}
	db := testutil.NewDB(t)

	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, db, cfg, hub)

	return &api{t: t, r: r, db: db, cfg: cfg}
}

// signIn registers a user and keeps its token for later calls.
func (a *api) signIn() *api {
	a.t.Helper()
	creds := gin.H{"email": "ops@example.com", "password": "secret123"}

	w := a.call(http.MethodPost, "/auth/register", creds)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.call(http.MethodPost, "/auth/login", creds)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(a.t, out.AccessToken)
	a.token = out.AccessToken
	return a
}

func (a *api) call(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func (a *api) create(path string, body any) map[string]any {
	a.t.Helper()
	w := a.call(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeMap(a.t, w)
}

func (a *api) parties() (supplierID, forwarderID string) {
	s := a.create("/suppliers", gin.H{"name": "Acme Supplies"})
	f := a.create("/forwarders", gin.H{"name": "Fast Freight"})
	return s["id"].(string), f["id"].(string)
}

func TestHealthIsPublic(t *testing.T) {
	a := setupAPI(t)
	w := a.call(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestCORSPreflight(t *testing.T) {
	a := setupAPI(t)
	req := httptest.NewRequest(http.MethodOptions, "/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestAuth(t *testing.T) {
	a := setupAPI(t)

	t.Run("register hides the hash", func(t *testing.T) {
		w := a.call(http.MethodPost, "/auth/register", gin.H{"email": "Ops@Example.com", "password": "secret123", "name": "Ops"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decodeMap(t, w)
		assert.Equal(t, "ops@example.com", body["email"])
		assert.Equal(t, "USER", body["role"])
		assert.NotContains(t, body, "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := a.call(http.MethodPost, "/auth/register", gin.H{"email": "ops@example.com", "password": "another1"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Email already exists", decodeMap(t, w)["message"])
	})

	t.Run("invalid body", func(t *testing.T) {
		w := a.call(http.MethodPost, "/auth/register", gin.H{"email": "nope", "password": "123"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, decodeMap(t, w)["errors"], 2)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := a.call(http.MethodPost, "/auth/login", gin.H{"email": "ops@example.com", "password": "wrong-one"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeMap(t, w)["message"])
	})

	t.Run("unknown email", func(t *testing.T) {
		w := a.call(http.MethodPost, "/auth/login", gin.H{"email": "ghost@example.com", "password": "secret123"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeMap(t, w)["message"])
	})

	t.Run("me without token", func(t *testing.T) {
		w := a.call(http.MethodGet, "/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized", decodeMap(t, w)["message"])
	})

	t.Run("me with token", func(t *testing.T) {
		w := a.call(http.MethodPost, "/auth/login", gin.H{"email": "OPS@example.com", "password": "secret123"})
		require.Equal(t, http.StatusOK, w.Code)
		a.token = decodeMap(t, w)["accessToken"].(string)

		w = a.call(http.MethodGet, "/auth/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeMap(t, w)
		assert.Equal(t, "ops@example.com", body["email"])
		assert.Equal(t, "Ops", body["name"])
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := setupAPI(t)
	for _, path := range []string{"/suppliers", "/forwarders", "/orders", "/invoices", "/uploads/x.pdf"} {
		w := a.call(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestUnknownFieldsAreRejected(t *testing.T) {
	a := setupAPI(t).signIn()

	w := a.call(http.MethodPost, "/suppliers", gin.H{"name": "Acme", "color": "red"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "property color should not exist", decodeMap(t, w)["message"])

	w = a.call(http.MethodPost, "/suppliers", `{"name": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Malformed JSON body", decodeMap(t, w)["message"])
}

func TestTrailingBodyDataIsRejected(t *testing.T) {
	a := setupAPI(t).signIn()

	w := a.call(http.MethodPost, "/suppliers", `{"name":"Zed Co"} {"x":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "Request body must contain a single JSON object", decodeMap(t, w)["message"])

	w = a.call(http.MethodGet, "/suppliers?search=zed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeMap(t, w)["meta"].(map[string]any)["total"])

	// trailing whitespace is still a single value
	a.create("/suppliers", "{\"name\":\"Zed Co\"}\n  ")
}

func TestSupplierCRUD(t *testing.T) {
	a := setupAPI(t).signIn()

	created := a.create("/suppliers", gin.H{"name": "  Acme  "})
	id := created["id"].(string)
	assert.Equal(t, "Acme", created["name"])
	assert.NotEmpty(t, created["createdAt"])

	w := a.call(http.MethodPost, "/suppliers", gin.H{"name": "Acme"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.call(http.MethodPost, "/suppliers", gin.H{"name": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.call(http.MethodGet, "/suppliers/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme", decodeMap(t, w)["name"])

	w = a.call(http.MethodPatch, "/suppliers/"+id, gin.H{"name": "Acme Ltd"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Ltd", decodeMap(t, w)["name"])

	w = a.call(http.MethodPatch, "/suppliers/"+id, gin.H{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Ltd", decodeMap(t, w)["name"])

	w = a.call(http.MethodPatch, "/suppliers/missing", gin.H{"name": "Other"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Supplier not found", decodeMap(t, w)["message"])

	w = a.call(http.MethodDelete, "/suppliers/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.call(http.MethodGet, "/suppliers/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.call(http.MethodDelete, "/suppliers/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestForwarderCRUD(t *testing.T) {
	a := setupAPI(t).signIn()

	created := a.create("/forwarders", gin.H{"name": "Fast Freight"})
	id := created["id"].(string)

	w := a.call(http.MethodPost, "/forwarders", gin.H{"name": "Fast Freight"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.call(http.MethodPatch, "/forwarders/"+id, gin.H{"name": "Slow Freight"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Slow Freight", decodeMap(t, w)["name"])

	w = a.call(http.MethodDelete, "/forwarders/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.call(http.MethodGet, "/forwarders/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Forwarder not found", decodeMap(t, w)["message"])
}

func TestPaginationAndSearch(t *testing.T) {
	a := setupAPI(t).signIn()
	for i := 1; i <= 23; i++ {
		a.create("/suppliers", gin.H{"name": fmt.Sprintf("Vendor %02d", i)})
	}
	a.create("/suppliers", gin.H{"name": "ACME Widgets"})
	a.create("/suppliers", gin.H{"name": "acme parts"})

	meta := func(w *httptest.ResponseRecorder) map[string]any {
		return decodeMap(t, w)["meta"].(map[string]any)
	}

	w := a.call(http.MethodGet, "/suppliers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeMap(t, w)["data"], 10)
	assert.Equal(t, map[string]any{"total": 25.0, "page": 1.0, "limit": 10.0, "totalPages": 3.0}, meta(w))

	w = a.call(http.MethodGet, "/suppliers?page=3&limit=10", nil)
	assert.Len(t, decodeMap(t, w)["data"], 5)

	w = a.call(http.MethodGet, "/suppliers?page=7&limit=10", nil)
	body := decodeMap(t, w)
	assert.Equal(t, []any{}, body["data"])
	assert.Equal(t, 25.0, body["meta"].(map[string]any)["total"])

	w = a.call(http.MethodGet, "/suppliers?limit=7", nil)
	assert.Equal(t, 4.0, meta(w)["totalPages"])

	w = a.call(http.MethodGet, "/suppliers?limit=zero&page=-2", nil)
	assert.Equal(t, 10.0, meta(w)["limit"])
	assert.Equal(t, 1.0, meta(w)["page"])

	w = a.call(http.MethodGet, "/suppliers?search=AcMe", nil)
	assert.Equal(t, 2.0, meta(w)["total"])

	w = a.call(http.MethodGet, "/suppliers?search=nothing-like-this", nil)
	assert.Equal(t, 0.0, meta(w)["total"])
	assert.Equal(t, 0.0, meta(w)["totalPages"])
}

func TestOrderExample(t *testing.T) {
	a := setupAPI(t).signIn()
	supplierID, forwarderID := a.parties()

	body := gin.H{
		"refNumber":   "PO-1",
		"supplierId":  supplierID,
		"forwarderId": forwarderID,
		"items":       []gin.H{{"itemName": "Widget", "quantity": 2, "price": 5, "total": 10}},
	}
	order := a.create("/orders", body)

	assert.Equal(t, "PO-1", order["refNumber"])
	assert.Equal(t, "DRAFT", order["status"])
	assert.Equal(t, "Acme Supplies", order["supplier"].(map[string]any)["name"])
	assert.Equal(t, "Fast Freight", order["forwarder"].(map[string]any)["name"])
	assert.Equal(t, []any{}, order["invoices"])
	items := order["items"].([]any)
	require.Len(t, items, 1)
	assert.EqualValues(t, 10, items[0].(map[string]any)["total"])
	assert.EqualValues(t, 5, items[0].(map[string]any)["price"])

	w := a.call(http.MethodPost, "/orders", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderValidation(t *testing.T) {
	a := setupAPI(t).signIn()
	supplierID, forwarderID := a.parties()

	cases := map[string]gin.H{
		"missing supplier": {"refNumber": "PO-1", "forwarderId": forwarderID},
		"bad status":       {"refNumber": "PO-1", "supplierId": supplierID, "forwarderId": forwarderID, "status": "LOST"},
		"bad date":         {"refNumber": "PO-1", "supplierId": supplierID, "forwarderId": forwarderID, "orderDate": "soon"},
		"zero quantity": {"refNumber": "PO-1", "supplierId": supplierID, "forwarderId": forwarderID,
			"items": []gin.H{{"itemName": "Widget", "quantity": 0, "price": 1, "total": 0}}},
		"negative price": {"refNumber": "PO-1", "supplierId": supplierID, "forwarderId": forwarderID,
			"items": []gin.H{{"itemName": "Widget", "quantity": 1, "price": -1, "total": 0}}},
		"fractional quantity": {"refNumber": "PO-1", "supplierId": supplierID, "forwarderId": forwarderID,
			"items": []gin.H{{"itemName": "Widget", "quantity": 1.5, "price": 1, "total": 1}}},
		"unknown item field": {"refNumber": "PO-1", "supplierId": supplierID, "forwarderId": forwarderID,
			"items": []gin.H{{"itemName": "Widget", "quantity": 1, "price": 1, "total": 1, "colour": "red"}}},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := a.call(http.MethodPost, "/orders", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	w := a.call(http.MethodGet, "/orders", nil)
	assert.Equal(t, 0.0, decodeMap(t, w)["meta"].(map[string]any)["total"])
}

func TestOrderWithUnknownSupplierIsConflict(t *testing.T) {
	a := setupAPI(t).signIn()
	_, forwarderID := a.parties()

	w := a.call(http.MethodPost, "/orders", gin.H{
		"refNumber":   "PO-1",
		"supplierId":  "7f2c1a38-4a4e-4f0e-9d0a-3c5b1f1f2e11",
		"forwarderId": forwarderID,
		"items":       []gin.H{{"itemName": "Widget", "quantity": 1, "price": 1, "total": 1}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var n int64
	require.NoError(t, a.db.Model(&entity.OrderItem{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestOrderUpdateAndSearch(t *testing.T) {
	a := setupAPI(t).signIn()
	supplierID, forwarderID := a.parties()

	order := a.create("/orders", gin.H{"refNumber": "PO-77", "supplierId": supplierID, "forwarderId": forwarderID})
	id := order["id"].(string)
	a.create("/orders", gin.H{"refNumber": "PO-78", "supplierId": supplierID, "forwarderId": forwarderID, "shipmentName": "Blue Whale"})

	w := a.call(http.MethodPatch, "/orders/"+id, gin.H{"status": "SHIPPED", "shipmentName": "Red Fox", "dispatchDate": "2024-06-01"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeMap(t, w)
	assert.Equal(t, "SHIPPED", updated["status"])
	assert.Equal(t, "Red Fox", updated["shipmentName"])
	assert.Equal(t, "PO-77", updated["refNumber"])
	assert.Contains(t, updated["dispatchDate"], "2024-06-01")
	assert.Equal(t, "Acme Supplies", updated["supplier"].(map[string]any)["name"])

	w = a.call(http.MethodPatch, "/orders/"+id, gin.H{"status": "LOST"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.call(http.MethodPatch, "/orders/"+id, gin.H{"refNumber": "PO-78"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.call(http.MethodPatch, "/orders/7f2c1a38-4a4e-4f0e-9d0a-3c5b1f1f2e11", gin.H{"status": "PLACED"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", decodeMap(t, w)["message"])

	w = a.call(http.MethodGet, "/orders?search=red%20fox", nil)
	assert.Equal(t, 1.0, decodeMap(t, w)["meta"].(map[string]any)["total"])
	w = a.call(http.MethodGet, "/orders?search=po-7", nil)
	assert.Equal(t, 2.0, decodeMap(t, w)["meta"].(map[string]any)["total"])
}

func TestDeletingReferencedSupplierIsConflict(t *testing.T) {
	a := setupAPI(t).signIn()
	supplierID, forwarderID := a.parties()
	a.create("/orders", gin.H{"refNumber": "PO-1", "supplierId": supplierID, "forwarderId": forwarderID})

	w := a.call(http.MethodDelete, "/suppliers/"+supplierID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = a.call(http.MethodDelete, "/forwarders/"+forwarderID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderDeleteCascades(t *testing.T) {
	a := setupAPI(t).signIn()
	supplierID, forwarderID := a.parties()

	order := a.create("/orders", gin.H{
		"refNumber":   "PO-1",
		"supplierId":  supplierID,
		"forwarderId": forwarderID,
		"items":       []gin.H{{"itemName": "Widget", "quantity": 2, "price": 5, "total": 10}},
		"invoice":     gin.H{"invoiceNumber": "INV-1", "invoiceDate": "2024-06-01"},
	})
	id := order["id"].(string)
	invoices := order["invoices"].([]any)
	require.Len(t, invoices, 1)
	invoiceID := invoices[0].(map[string]any)["id"].(string)

	w := a.call(http.MethodDelete, "/orders/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.call(http.MethodGet, "/orders/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = a.call(http.MethodGet, "/invoices/"+invoiceID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var n int64
	require.NoError(t, a.db.Model(&entity.OrderItem{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestInvoices(t *testing.T) {
	a := setupAPI(t).signIn()
	supplierID, forwarderID := a.parties()
	order := a.create("/orders", gin.H{"refNumber": "PO-1", "supplierId": supplierID, "forwarderId": forwarderID})
	orderID := order["id"].(string)

	inv := a.create("/invoices", gin.H{"orderId": orderID, "invoiceNumber": "INV-100", "invoiceDate": "2024-06-01"})
	id := inv["id"].(string)
	assert.Equal(t, "INV-100", inv["invoiceNumber"])
	assert.Equal(t, []any{}, inv["documents"])
	assert.Equal(t, "PO-1", inv["order"].(map[string]any)["refNumber"])

	w := a.call(http.MethodPost, "/invoices", gin.H{"orderId": orderID, "invoiceNumber": "INV-100", "invoiceDate": "2024-06-02"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.call(http.MethodPost, "/invoices", gin.H{"orderId": orderID, "invoiceNumber": "INV-101"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.call(http.MethodPost, "/invoices", gin.H{"orderId": "7f2c1a38-4a4e-4f0e-9d0a-3c5b1f1f2e11", "invoiceNumber": "INV-102", "invoiceDate": "2024-06-02"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.call(http.MethodPatch, "/invoices/"+id, gin.H{"invoiceNumber": "INV-200"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV-200", decodeMap(t, w)["invoiceNumber"])

	w = a.call(http.MethodGet, "/invoices?search=inv-2", nil)
	body := decodeMap(t, w)
	assert.Equal(t, 1.0, body["meta"].(map[string]any)["total"])

	w = a.call(http.MethodGet, "/orders/"+orderID, nil)
	assert.Len(t, decodeMap(t, w)["invoices"], 1)

	w = a.call(http.MethodDelete, "/invoices/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = a.call(http.MethodGet, "/invoices/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invoice not found", decodeMap(t, w)["message"])
}

func (a *api) upload(path, filename string, content []byte) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(a.t, err)
		_, err = fw.Write(content)
		require.NoError(a.t, err)
	}
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+a.token)
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func TestInvoiceDocuments(t *testing.T) {
	a := setupAPI(t).signIn()
	supplierID, forwarderID := a.parties()
	order := a.create("/orders", gin.H{
		"refNumber": "PO-1", "supplierId": supplierID, "forwarderId": forwarderID,
		"invoice": gin.H{"invoiceNumber": "INV-1", "invoiceDate": "2024-06-01"},
	})
	invoiceID := order["invoices"].([]any)[0].(map[string]any)["id"].(string)

	w := a.upload("/invoices/"+invoiceID+"/documents", "bill.PDF", []byte("%PDF-1.4 test"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	doc := decodeMap(t, w)
	assert.Equal(t, "bill.PDF", doc["originalName"])
	assert.Equal(t, 13.0, doc["size"])
	filename := doc["filename"].(string)
	assert.Equal(t, ".pdf", filepath.Ext(filename))
	_, err := os.Stat(filepath.Join(a.cfg.UploadDir, filename))
	require.NoError(t, err)

	w = a.call(http.MethodGet, "/uploads/"+filename, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4 test", w.Body.String())

	w = a.call(http.MethodGet, "/invoices/"+invoiceID, nil)
	assert.Len(t, decodeMap(t, w)["documents"], 1)

	w = a.upload("/invoices/"+invoiceID+"/documents", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.upload("/invoices/"+invoiceID+"/documents", "huge.bin", bytes.Repeat([]byte("x"), int(a.cfg.UploadMaxBytes)+1))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.upload("/invoices/7f2c1a38-4a4e-4f0e-9d0a-3c5b1f1f2e11/documents", "bill.pdf", []byte("x"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.call(http.MethodDelete, "/invoices/"+invoiceID+"/documents/"+doc["id"].(string), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	_, err = os.Stat(filepath.Join(a.cfg.UploadDir, filename))
	assert.True(t, os.IsNotExist(err))

	w = a.call(http.MethodDelete, "/invoices/"+invoiceID+"/documents/"+doc["id"].(string), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMutationsAreBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := ws.NewEventHub()
	go hub.Run(ctx)

	a := newAPI(t, hub).signIn()
	srv := httptest.NewServer(a.r)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events"

	t.Run("dial without token is rejected", func(t *testing.T) {
		_, res, err := websocket.DefaultDialer.Dial(url, nil)
		require.Error(t, err)
		require.NotNil(t, res)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+a.token, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	type event struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	}
	next := func() event {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var ev event
		require.NoError(t, conn.ReadJSON(&ev))
		return ev
	}

	supplierID, forwarderID := a.parties()
	assert.Equal(t, event{"supplier.created", supplierID}, next())
	assert.Equal(t, event{"forwarder.created", forwarderID}, next())

	order := a.create("/orders", gin.H{
		"refNumber":   "PO-500",
		"supplierId":  supplierID,
		"forwarderId": forwarderID,
		"invoice":     gin.H{"invoiceNumber": "INV-500", "invoiceDate": "2024-06-01"},
	})
	orderID := order["id"].(string)
	invoices := order["invoices"].([]any)
	require.Len(t, invoices, 1)
	assert.Equal(t, event{"order.created", orderID}, next())
	assert.Equal(t, event{"invoice.created", invoices[0].(map[string]any)["id"].(string)}, next())

	// failed mutations publish nothing
	w := a.call(http.MethodPost, "/suppliers", gin.H{"name": "Acme Supplies"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = a.call(http.MethodDelete, "/orders/"+orderID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, event{"order.deleted", orderID}, next())
}
