package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
)

func TestLogin(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@school.test", body["email"])
		assert.Equal(t, "secret", body["password"])

		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL})
	token, err := c.Login(context.Background(), "admin@school.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestProfile_SendsBearerToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"invalid token"}`)
			return
		}
		json.NewEncoder(w).Encode(models.User{ID: "u1", Name: "Admin", Role: "admin"})
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL})

	// Without token the backend rejects and the error maps to 401.
	_, err := c.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "invalid token", Message(err))

	user, err := c.WithToken("tok-123").Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestListProducts_QueryParams(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "pen", q.Get("search"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "25", q.Get("limit"))
		json.NewEncoder(w).Encode([]models.Product{{ID: "p1", Title: "Blue Pen", Price: 10, Stock: 40}})
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL}).WithToken("t")
	products, err := c.ListProducts(context.Background(), ListParams{Search: "pen", Page: 2, Limit: 25})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Blue Pen", products[0].Title)
}

func TestListParams_DateRange(t *testing.T) {
	p := ListParams{
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	q := p.Values()
	assert.Equal(t, "2026-01-01", q.Get("startDate"))
	assert.Equal(t, "2026-01-31", q.Get("endDate"))
	assert.Empty(t, q.Get("page"), "zero params stay out of the query")
}

func TestPayInvoice(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invoices/pay/inv1", r.URL.Path)
		var in PaymentInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, 150.0, in.Amount)
		assert.True(t, in.FromBalance)
		json.NewEncoder(w).Encode(models.Invoice{ID: "inv1", TotalAmount: 150, AmountPaid: 150, Status: "paid"})
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL}).WithToken("t")
	inv, err := c.PayInvoice(context.Background(), "inv1", PaymentInput{Amount: 150, FromBalance: true})
	require.NoError(t, err)
	assert.True(t, inv.IsPaid())
}

func TestCreatePurchase_Multipart(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "s1", r.FormValue("shop"))
		assert.Equal(t, "999.50", r.FormValue("amount"))

		file, header, err := r.FormFile("bill")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "bill.jpg", header.Filename)
		content, _ := io.ReadAll(file)
		assert.Equal(t, "fake-image", string(content))

		json.NewEncoder(w).Encode(models.Purchase{ID: "pur1", Amount: 999.5})
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL}).WithToken("t")
	in := PurchaseInput{ShopID: "s1", Amount: "999.50", Date: "2026-08-30"}
	created, err := c.CreatePurchase(context.Background(), in, "bill.jpg", strings.NewReader("fake-image"))
	require.NoError(t, err)
	assert.Equal(t, "pur1", created.ID)
}

func TestDecodeError_PlainBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "stock cannot be negative")
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL}).WithToken("t")
	_, err := c.CreateProduct(context.Background(), ProductInput{Title: "X", Stock: -1})
	require.Error(t, err)
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, "stock cannot be negative", Message(err))
}

func TestBulkCreateProducts(t *testing.T) {
	var gotLen int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/bulk", r.URL.Path)
		var rows []ProductInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rows))
		gotLen = len(rows)
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL}).WithToken("t")
	err := c.BulkCreateProducts(context.Background(), []ProductInput{{Title: "A"}, {Title: "B"}})
	require.NoError(t, err)
	assert.Equal(t, 2, gotLen)
}
