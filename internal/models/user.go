// Package models mirrors the backend API's wire shapes. The backend owns
// every entity; nothing here is persisted locally and no field is
// authoritative beyond the response it arrived in.
package models

import (
	"time"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/gate"
)

// User is the authenticated identity as returned by /auth/profile and the
// user listing endpoints.
type User struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Username    string       `json:"username,omitempty"`
	Role        gate.Role    `json:"role"`
	Class       *Class       `json:"class,omitempty"`
	Balance     float64      `json:"balance"`
	DueAmount   float64      `json:"dueAmount"`
	Permissions []Permission `json:"permissions,omitempty"`
	Invoices    []Invoice    `json:"invoices,omitempty"`
	CreatedAt   time.Time    `json:"createdAt,omitempty"`
}

// Permission is a flat action tag granted to a user.
type Permission struct {
	ID              string `json:"_id"`
	PermissionTitle string `json:"permissionTitle"`
}

// Has reports exact membership of the permission tag in the user's grant
// list. A nil user (not logged in) never has any permission.
func (u *User) Has(p gate.Permission) bool {
	if u == nil {
		return false
	}
	for _, perm := range u.Permissions {
		if perm.PermissionTitle == string(p) {
			return true
		}
	}
	return false
}

// Profile adapts the user's grant list to the gate.Profile interface.
func (u *User) Profile() gate.Profile {
	if u == nil {
		return gate.NewSetProfile("")
	}
	perms := make([]gate.Permission, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		perms = append(perms, gate.Permission(p.PermissionTitle))
	}
	return gate.NewSetProfile(string(u.Role), perms...)
}

// ClassName returns the assigned class name or empty when unassigned.
func (u *User) ClassName() string {
	if u == nil || u.Class == nil {
		return ""
	}
	return u.Class.Name
}
