package models

import "time"

// Class is a grouping/filtering reference for students.
type Class struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Section string `json:"section,omitempty"`
}

// Shop is a wholesale supplier the school buys stock from.
type Shop struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Purchase is a stock purchase from a shop, with the uploaded bill file.
type Purchase struct {
	ID          string    `json:"_id"`
	Shop        *Shop     `json:"shop,omitempty"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	BillURL     string    `json:"billUrl,omitempty"`
	Date        time.Time `json:"date"`
}
