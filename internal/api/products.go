package api

import (
	"context"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
)

// ProductInput is the create/update/bulk payload for products.
type ProductInput struct {
	Title          string  `json:"title"`
	Price          float64 `json:"price"`
	WholesalePrice float64 `json:"wholesalePrice"`
	Stock          int     `json:"stock"`
	ProductCode    string  `json:"productCode,omitempty"`
}

func (c *Client) ListProducts(ctx context.Context, p ListParams) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, "/products", p.Values(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SearchProducts is the autocomplete query used while building an invoice.
func (c *Client) SearchProducts(ctx context.Context, search string, limit int) ([]models.Product, error) {
	return c.ListProducts(ctx, ListParams{Search: search, Limit: limit})
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	var created models.Product
	if err := c.post(ctx, "/products", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) error {
	return c.patch(ctx, "/products/"+id, in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "/products/"+id)
}

// BulkCreateProducts submits a confirmed import preview in one request.
func (c *Client) BulkCreateProducts(ctx context.Context, in []ProductInput) error {
	return c.post(ctx, "/products/bulk", in, nil)
}
