package gate_test

import (
	"context"
	"testing"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/gate"
)

func TestGate_Authorize_NoSubject(t *testing.T) {
	g := gate.NewGate[string](gate.NewStaticResolver[string]())

	err := g.Authorize(context.Background(), "", "create:invoice")
	if err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized for zero subject, got %v", err)
	}
}

func TestGate_Authorize_UnknownSubject(t *testing.T) {
	g := gate.NewGate[string](gate.NewStaticResolver[string]())

	err := g.Authorize(context.Background(), "u1", "create:invoice")
	if err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized for unresolved subject, got %v", err)
	}
}

func TestGate_Can_ExactMembership(t *testing.T) {
	r := gate.NewStaticResolver[string]()
	r.Set("u1", gate.NewSetProfile("clerk", "create:invoice", "pay:invoice"))
	g := gate.NewGate[string](r)
	ctx := context.Background()

	if !g.Can(ctx, "u1", "create:invoice") {
		t.Error("verbatim permission should be granted")
	}
	if g.Can(ctx, "u1", "delete:invoice") {
		t.Error("absent permission should be denied")
	}
	// There is deliberately no wildcard semantics.
	if g.Can(ctx, "u1", "create:*") {
		t.Error("wildcard tag should not match")
	}
	if g.Can(ctx, "u1", "invoice") {
		t.Error("partial tag should not match")
	}
}

func TestSetProfile(t *testing.T) {
	p := gate.NewSetProfile("admin", "update:product")
	if p.Name() != "admin" {
		t.Errorf("Name() = %q", p.Name())
	}
	if !p.Has("update:product") || p.Has("update:invoice") {
		t.Error("membership mismatch")
	}
	if got := len(p.Permissions()); got != 1 {
		t.Errorf("Permissions() len = %d, want 1", got)
	}
}

func TestRoleAllowed(t *testing.T) {
	allow := []gate.Role{gate.RoleAdmin, gate.RoleSuperAdmin}

	if !gate.RoleAllowed(gate.RoleAdmin, allow) {
		t.Error("admin should pass the management allow-list")
	}
	if gate.RoleAllowed(gate.RoleStudent, allow) {
		t.Error("student should not pass the management allow-list")
	}
	if gate.RoleAllowed("", allow) {
		t.Error("empty role should never match")
	}
	if gate.RoleAllowed(gate.RoleAdmin, nil) {
		t.Error("empty allow-list should deny everyone")
	}
}
