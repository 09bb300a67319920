package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/auth"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/config"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/imports"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

// backendFunc lets each test shape the fake REST API beyond the auth
// endpoints that every test needs.
func fakeBackend(t *testing.T, extra http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
		case "/auth/profile":
			json.NewEncoder(w).Encode(models.User{ID: "u1", Name: "Admin", Role: "admin"})
		default:
			if extra != nil {
				extra(w, r)
				return
			}
			w.Write([]byte("[]"))
		}
	}))
}

func newSessions(t *testing.T, backendURL string) *session.Manager {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	client := api.NewClient(api.Config{BaseURL: backendURL})
	m, err := session.NewManager(db, client, config.SessionConfig{Secret: "testsecret", TTLHours: 1})
	require.NoError(t, err)
	return m
}

// loggedIn wraps a handler with the session middleware and returns a
// request carrying a live session cookie.
func loggedIn(t *testing.T, m *session.Manager, method, target string, body io.Reader) (*http.Request, func(http.Handler) http.Handler) {
	t.Helper()
	w := httptest.NewRecorder()
	_, err := m.Login(context.Background(), w, "admin@school.test", "pw")
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, body)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req, m.Middleware
}

func TestProductSearchJSON(t *testing.T) {
	ts := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/products" {
			assert.Equal(t, "pen", r.URL.Query().Get("search"))
			json.NewEncoder(w).Encode([]models.Product{{ID: "p1", Title: "Pen", Price: 10}})
			return
		}
		http.NotFound(w, r)
	})
	defer ts.Close()
	m := newSessions(t, ts.URL)
	h := NewProductHandler(m)

	req, mw := loggedIn(t, m, http.MethodGet, "/products/search?q=pen", nil)
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(h.Search)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Seq      uint64           `json:"seq"`
		Stale    bool             `json:"stale"`
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.Seq)
	assert.False(t, resp.Stale, "the only in-flight query is the latest")
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Pen", resp.Products[0].Title)
}

// An overpaid invoice in the range must not offset what is still owed on
// the others: the report sums per-invoice pending, each clamped at zero.
func TestReportPendingClamped(t *testing.T) {
	ts := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/invoices/report/all" {
			json.NewEncoder(w).Encode([]models.Invoice{
				{ID: "i1", InvoiceNumber: "INV-1", TotalAmount: 100, AmountPaid: 40},
				{ID: "i2", InvoiceNumber: "INV-2", TotalAmount: 50, AmountPaid: 80},
			})
			return
		}
		http.NotFound(w, r)
	})
	defer ts.Close()
	m := newSessions(t, ts.URL)
	h := NewReportHandler(m)

	req, mw := loggedIn(t, m, http.MethodGet, "/reports", nil)
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(h.Report)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "₹60.00", "pending for 100/40 plus the settled overpaid invoice")
	assert.NotContains(t, body, "₹30.00", "billed minus collected is not the pending figure")
}

// uploadSheet builds a small products workbook wrapped as a multipart body.
func uploadSheet(t *testing.T) (io.Reader, string) {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Title", "Price", "Stock"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Pencil", 5, 100}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("sheet", "products.xlsx")
	require.NoError(t, err)
	_, err = part.Write(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestImportUploadConfirmAndRetry(t *testing.T) {
	var bulkCalls int
	failNext := true
	ts := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/products/bulk" && r.Method == http.MethodPost {
			bulkCalls++
			if failNext {
				failNext = false
				w.WriteHeader(http.StatusBadGateway)
				json.NewEncoder(w).Encode(map[string]string{"message": "backend busy"})
				return
			}
			w.Write([]byte("{}"))
			return
		}
		http.NotFound(w, r)
	})
	defer ts.Close()
	m := newSessions(t, ts.URL)
	store := imports.NewPreviewStore()
	h := NewImportHandler(m, store)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /imports/{kind}", h.Upload)
	mux.HandleFunc("POST /imports/{kind}/confirm", h.Confirm)

	// Upload parses the sheet into a preview without touching the backend.
	body, contentType := uploadSheet(t)
	req, mw := loggedIn(t, m, http.MethodPost, "/imports/products", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mw(mux).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, bulkCalls, "upload must not submit anything")

	cookies := req.Cookies()
	confirm := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/imports/products/confirm", nil)
		for _, c := range cookies {
			r.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		mw(mux).ServeHTTP(rec, r)
		return rec
	}

	// First confirm fails; the preview must survive for a retry.
	confirm()
	assert.Equal(t, 1, bulkCalls)
	sessionID := sessionIDOf(t, m, cookies)
	preview, _ := store.Get(sessionID, imports.KindProducts)
	require.NotNil(t, preview, "failed submit must keep the preview")

	// Retry succeeds and clears it.
	confirm()
	assert.Equal(t, 2, bulkCalls)
	preview, _ = store.Get(sessionID, imports.KindProducts)
	assert.Nil(t, preview, "successful submit discards the preview")
}

// sessionIDOf resolves the signed cookie back to the raw session id by
// running an empty request through the middleware.
func sessionIDOf(t *testing.T, m *session.Manager, cookies []*http.Cookie) string {
	t.Helper()
	var id string
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ = auth.SessionIDFromContext(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), req)
	require.NotEmpty(t, id)
	return id
}
