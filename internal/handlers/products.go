package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/auth"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/httpx"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/search"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

type ProductHandler struct {
	Sessions *session.Manager

	mu   sync.Mutex
	seqs map[string]*search.Sequencer
}

func NewProductHandler(s *session.Manager) *ProductHandler {
	return &ProductHandler{Sessions: s, seqs: make(map[string]*search.Sequencer)}
}

type productForm struct {
	Title          string  `validate:"required"`
	Price          float64 `validate:"gte=0"`
	WholesalePrice float64 `validate:"gte=0"`
	Stock          int     `validate:"gte=0"`
	ProductCode    string
}

func parseProductForm(r *http.Request) productForm {
	stock, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("stock")))
	return productForm{
		Title:          strings.TrimSpace(r.FormValue("title")),
		Price:          parseFloat(r.FormValue("price")),
		WholesalePrice: parseFloat(r.FormValue("wholesalePrice")),
		Stock:          stock,
		ProductCode:    strings.TrimSpace(r.FormValue("productCode")),
	}
}

func (f productForm) input() api.ProductInput {
	return api.ProductInput{
		Title:          f.Title,
		Price:          f.Price,
		WholesalePrice: f.WholesalePrice,
		Stock:          f.Stock,
		ProductCode:    f.ProductCode,
	}
}

// List: GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	searchQ := strings.TrimSpace(r.URL.Query().Get("search"))
	products, err := h.Sessions.Client(r).ListProducts(r.Context(), api.ListParams{Search: searchQ})
	if err != nil {
		renderTemplate(w, r, "products/index", map[string]any{"Error": errMessage(err), "Search": searchQ})
		return
	}
	renderTemplate(w, r, "products/index", withFlash(w, r, map[string]any{
		"Products": products,
		"Search":   searchQ,
	}))
}

// Search: GET /products/search – JSON autocomplete for the invoice builder.
// Each session gets its own sequencer; a response whose number has been
// superseded by a newer query from the same session is flagged stale so
// the page never applies out-of-order results.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	seq := h.sequencer(r).Next()

	products, err := h.Sessions.Client(r).SearchProducts(r.Context(), q, 10)
	if err != nil {
		httpx.JSONError(w, http.StatusBadGateway, errMessage(err), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"seq":      seq,
		"stale":    !h.sequencer(r).Latest(seq),
		"products": products,
	})
}

func (h *ProductHandler) sequencer(r *http.Request) *search.Sequencer {
	id, _ := auth.SessionIDFromContext(r.Context())
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.seqs[id]
	if !ok {
		s = &search.Sequencer{}
		h.seqs[id] = s
	}
	return s
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	form := parseProductForm(r)
	if err := validate.Struct(form); err != nil {
		setFlash(w, "title is required; price and stock must not be negative")
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	if _, err := h.Sessions.Client(r).CreateProduct(r.Context(), form.input()); err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	setFlash(w, "product created")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// Update: POST /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	form := parseProductForm(r)
	if err := validate.Struct(form); err != nil {
		setFlash(w, "title is required; price and stock must not be negative")
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	if err := h.Sessions.Client(r).UpdateProduct(r.Context(), id, form.input()); err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	setFlash(w, "product updated")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// Delete: POST /products/{id}/delete
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Sessions.Client(r).DeleteProduct(r.Context(), id); err != nil {
		setFlash(w, errMessage(err))
	} else {
		setFlash(w, "product deleted")
	}
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}
