package models

import (
	"encoding/json"
	"testing"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/gate"
)

func TestUser_Has(t *testing.T) {
	user := &User{
		Permissions: []Permission{
			{ID: "1", PermissionTitle: "create:invoice"},
			{ID: "2", PermissionTitle: "delete:invoice"},
		},
	}

	if !user.Has("delete:invoice") {
		t.Error("expected verbatim permission to be granted")
	}
	if user.Has("update:invoice") {
		t.Error("absent permission must be denied")
	}
	// Exact membership only: no wildcard or prefix semantics.
	if user.Has("delete:*") {
		t.Error("wildcard tags must not match anything")
	}
	if user.Has("delete") {
		t.Error("partial tags must not match")
	}

	var nobody *User
	if nobody.Has("delete:invoice") {
		t.Error("nil user must never have a permission")
	}
}

func TestUser_Profile(t *testing.T) {
	user := &User{Role: gate.RoleAdmin, Permissions: []Permission{{PermissionTitle: "pay:invoice"}}}
	p := user.Profile()
	if p.Name() != "admin" {
		t.Errorf("profile name = %q, want admin", p.Name())
	}
	if !p.Has("pay:invoice") || p.Has("create:invoice") {
		t.Error("profile membership mismatch")
	}
}

func TestInvoice_Computations(t *testing.T) {
	inv := &Invoice{
		Items: []InvoiceItem{
			{Quantity: 2, Price: 50, Product: &Product{Title: "Notebook"}},
			{Quantity: 3, Price: 10},
		},
		TotalAmount: 130,
		AmountPaid:  100,
	}

	if got := inv.Subtotal(); got != 130 {
		t.Errorf("Subtotal() = %v, want 130", got)
	}
	if got := inv.Pending(); got != 30 {
		t.Errorf("Pending() = %v, want 30", got)
	}

	inv.AmountPaid = 200
	if got := inv.Pending(); got != 0 {
		t.Errorf("overpaid Pending() = %v, want 0", got)
	}
}

func TestInvoiceItem_ProductTitle(t *testing.T) {
	it := InvoiceItem{Quantity: 1, Price: 5}
	if got := it.ProductTitle(); got != "(removed product)" {
		t.Errorf("ProductTitle() = %q", got)
	}
	if got := it.LineTotal(); got != 5 {
		t.Errorf("LineTotal() = %v, want 5", got)
	}
}

// The wire format uses Mongo-style ids and camelCase keys; make sure the
// JSON tags line up with what the backend actually sends.
func TestUser_WireFormat(t *testing.T) {
	payload := `{
		"_id": "u1",
		"name": "Amal",
		"role": "student",
		"balance": 120.5,
		"dueAmount": 30,
		"class": {"_id": "c1", "name": "10A"},
		"permissions": [{"_id": "p1", "permissionTitle": "view:invoice"}]
	}`
	var u User
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.ID != "u1" || u.Role != gate.RoleStudent || u.Balance != 120.5 {
		t.Errorf("unexpected user: %+v", u)
	}
	if u.ClassName() != "10A" {
		t.Errorf("ClassName() = %q, want 10A", u.ClassName())
	}
	if !u.Has("view:invoice") {
		t.Error("permission from wire payload not recognized")
	}
}
