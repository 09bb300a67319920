// Package gate provides the authorization primitives used by the dashboard.
// Two independent axes are exposed and must stay independent:
//
//   - roles gate whole pages (see roles.go); a route declares a static
//     allow-list and the guard middleware redirects mismatches
//   - permissions gate individual actions within a page; a permission is an
//     opaque tag such as "create:invoice" checked by exact string membership
//     against the user's permission list
//
// There is no wildcard, hierarchy, or inheritance: "create:invoice" grants
// exactly "create:invoice" and nothing else. A missing user always denies.
//
// The package uses generics so any subject type can be gated:
//   - Gate[string] for session-id based checks
//   - Gate[*models.User] for full user struct checks
package gate

import "context"

// Permission is an opaque action tag, e.g. "create:invoice".
type Permission string

// Profile is a resolved set of permissions for one user.
type Profile interface {
	Name() string
	Has(p Permission) bool
	Permissions() []Permission
}

// ProfileResolver resolves a subject to its permission profile.
// U is the subject type (session id, user id, or full user).
type ProfileResolver[U any] interface {
	Resolve(ctx context.Context, subject U) (Profile, error)
}

// Gate is the central permission checkpoint. It resolves the subject's
// profile and answers exact-membership permission questions.
type Gate[U comparable] struct {
	resolver ProfileResolver[U]
}

// NewGate creates a gate backed by the given resolver.
func NewGate[U comparable](resolver ProfileResolver[U]) *Gate[U] {
	return &Gate[U]{resolver: resolver}
}

// Authorize returns nil iff the subject's profile contains p verbatim.
// A zero-value subject (no user) is always ErrUnauthorized.
func (g *Gate[U]) Authorize(ctx context.Context, subject U, p Permission) error {
	var zero U
	if subject == zero {
		return ErrUnauthorized
	}
	profile, err := g.resolver.Resolve(ctx, subject)
	if err != nil || profile == nil {
		return ErrUnauthorized
	}
	if !profile.Has(p) {
		return ErrUnauthorized
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[U]) Can(ctx context.Context, subject U, p Permission) bool {
	return g.Authorize(ctx, subject, p) == nil
}

// SetProfile is a map-backed Profile with exact membership semantics.
type SetProfile struct {
	name        string
	permissions map[Permission]bool
}

// NewSetProfile builds a profile from a list of permission tags.
func NewSetProfile(name string, permissions ...Permission) *SetProfile {
	p := &SetProfile{name: name, permissions: make(map[Permission]bool, len(permissions))}
	for _, perm := range permissions {
		p.permissions[perm] = true
	}
	return p
}

func (p *SetProfile) Name() string { return p.name }

// Has reports exact membership. No pattern matching of any kind.
func (p *SetProfile) Has(perm Permission) bool { return p.permissions[perm] }

// Permissions returns all tags in this profile.
func (p *SetProfile) Permissions() []Permission {
	perms := make([]Permission, 0, len(p.permissions))
	for perm := range p.permissions {
		perms = append(perms, perm)
	}
	return perms
}

// StaticResolver is an in-memory resolver, used in tests and for fixed
// subject-profile mappings.
type StaticResolver[U comparable] struct {
	profiles map[U]Profile
}

// NewStaticResolver creates an empty static resolver.
func NewStaticResolver[U comparable]() *StaticResolver[U] {
	return &StaticResolver[U]{profiles: make(map[U]Profile)}
}

// Set assigns a profile to a subject.
func (r *StaticResolver[U]) Set(subject U, profile Profile) {
	r.profiles[subject] = profile
}

// Resolve returns the profile for the subject, or nil if none is known.
func (r *StaticResolver[U]) Resolve(_ context.Context, subject U) (Profile, error) {
	if profile, ok := r.profiles[subject]; ok {
		return profile, nil
	}
	return nil, nil
}
