package models

// Product is a stationery item queried by search/autocomplete during
// invoice creation.
type Product struct {
	ID             string  `json:"_id"`
	Title          string  `json:"title"`
	Price          float64 `json:"price"`
	WholesalePrice float64 `json:"wholesalePrice"`
	Stock          int     `json:"stock"`
	ProductCode    string  `json:"productCode"`
}

// InStock reports whether any units remain.
func (p *Product) InStock() bool { return p.Stock > 0 }
