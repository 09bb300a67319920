package api

import (
	"context"
	"io"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
)

// ClassInput creates or renames a class.
type ClassInput struct {
	Name    string `json:"name"`
	Section string `json:"section,omitempty"`
}

// ShopInput creates or updates a supplier shop.
type ShopInput struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// PurchaseInput records a stock purchase; the bill file goes up as a
// multipart part alongside these fields.
type PurchaseInput struct {
	ShopID      string
	Amount      string
	Description string
	Date        string
}

func (c *Client) ListClasses(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	if err := c.get(ctx, "/classes", nil, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (c *Client) CreateClass(ctx context.Context, in ClassInput) (*models.Class, error) {
	var created models.Class
	if err := c.post(ctx, "/classes", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteClass(ctx context.Context, id string) error {
	return c.delete(ctx, "/classes/"+id)
}

func (c *Client) ListShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	if err := c.get(ctx, "/shops", nil, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (c *Client) CreateShop(ctx context.Context, in ShopInput) (*models.Shop, error) {
	var created models.Shop
	if err := c.post(ctx, "/shops", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateShop(ctx context.Context, id string, in ShopInput) error {
	return c.patch(ctx, "/shops/"+id, in, nil)
}

func (c *Client) DeleteShop(ctx context.Context, id string) error {
	return c.delete(ctx, "/shops/"+id)
}

func (c *Client) ListPurchases(ctx context.Context, p ListParams) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := c.get(ctx, "/purchases", p.Values(), &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// CreatePurchase uploads the purchase record with its bill file. bill may
// be nil when no file was attached.
func (c *Client) CreatePurchase(ctx context.Context, in PurchaseInput, billName string, bill io.Reader) (*models.Purchase, error) {
	fields := map[string]string{
		"shop":        in.ShopID,
		"amount":      in.Amount,
		"description": in.Description,
		"date":        in.Date,
	}
	var created models.Purchase
	if err := c.postMultipart(ctx, "/purchases", fields, "bill", billName, bill, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeletePurchase(ctx context.Context, id string) error {
	return c.delete(ctx, "/purchases/"+id)
}
