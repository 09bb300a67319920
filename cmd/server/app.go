package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/auth"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/gate"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/config"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/handlers"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/imports"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

// grantCacheTTL bounds how long a permission check may act on grants the
// super-admin has since revoked, matching the session profile refresh cadence.
const grantCacheTTL = 5 * time.Minute

// App is the main application handler that sets up all routes.
type App struct {
	mux      *http.ServeMux
	sessions *session.Manager
	gate     *gate.Gate[string]
	profiles *gate.CachedResolver[string]
}

// grantResolver resolves a session id to the owner's permission profile with
// a fresh backend fetch. The gate wraps it in a TTL cache so checks do not
// hit the profile endpoint on every gated action.
type grantResolver struct {
	sessions *session.Manager
}

func (g grantResolver) Resolve(ctx context.Context, sessionID string) (gate.Profile, error) {
	user, err := g.sessions.Lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// NewApp creates the application with all routes configured.
func NewApp(sessions *session.Manager, cfg *config.Config) *App {
	profiles := gate.NewCachedResolver[string](grantResolver{sessions: sessions}, grantCacheTTL)
	app := &App{
		mux:      http.NewServeMux(),
		sessions: sessions,
		gate:     gate.NewGate[string](profiles),
		profiles: profiles,
	}
	app.setupRoutes(cfg)
	return app
}

// ServeHTTP implements http.Handler. The session middleware runs globally
// so every handler sees the restored user (or nil).
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.sessions.Middleware(a.mux).ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes(cfg *config.Config) {
	ah := handlers.NewAuthHandler(a.sessions)
	dh := handlers.NewDashboardHandler(a.sessions)
	sh := handlers.NewStudentHandler(a.sessions)
	th := handlers.NewTeacherHandler(a.sessions)
	clh := handlers.NewClassHandler(a.sessions)
	ph := handlers.NewProductHandler(a.sessions)
	shh := handlers.NewShopHandler(a.sessions)
	puh := handlers.NewPurchaseHandler(a.sessions)
	ih := handlers.NewInvoiceHandler(a.sessions, cfg.App)
	rh := handlers.NewReportHandler(a.sessions)
	imh := handlers.NewImportHandler(a.sessions, imports.NewPreviewStore())
	// Saving grants invalidates every cached profile: the changed user's
	// session ids are unknown here, and a full flush is cheap.
	peh := handlers.NewPermissionHandler(a.sessions, a.profiles.InvalidateAll)

	management := gate.ManagementRoles
	everyone := gate.AllRoles

	// Public routes
	a.mux.HandleFunc("GET /{$}", dh.Home)
	a.mux.HandleFunc("GET /login", ah.Login)
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("GET /logout", ah.Logout)
	a.mux.HandleFunc("POST /logout", ah.Logout)
	a.mux.HandleFunc("GET /unauthorized", ah.Unauthorized)

	// Every authenticated role
	a.mux.Handle("GET /my", a.requireRole(everyone)(http.HandlerFunc(dh.My)))
	a.mux.Handle("GET /invoices/{id}", a.requireRole(everyone)(http.HandlerFunc(ih.View)))
	a.mux.Handle("GET /invoices/{id}/pdf", a.requireRole(everyone)(http.HandlerFunc(ih.PDF)))
	a.mux.Handle("GET /invoices/{id}/qr.png", a.requireRole(everyone)(http.HandlerFunc(ih.QR)))

	// Management screens (admin, super-admin)
	a.mux.Handle("GET /dashboard", a.requireRole(management)(http.HandlerFunc(dh.Dashboard)))

	a.mux.Handle("GET /students", a.requireRole(management)(http.HandlerFunc(sh.List)))
	a.mux.Handle("GET /students/{id}", a.requireRole(management)(http.HandlerFunc(sh.View)))
	a.mux.Handle("POST /students",
		a.requireRole(management)(a.requirePermission("create:student")(http.HandlerFunc(sh.Create))))
	a.mux.Handle("POST /students/{id}",
		a.requireRole(management)(a.requirePermission("edit:student")(http.HandlerFunc(sh.Update))))
	a.mux.Handle("POST /students/{id}/delete",
		a.requireRole(management)(a.requirePermission("delete:student")(http.HandlerFunc(sh.Delete))))

	a.mux.Handle("GET /teachers", a.requireRole(management)(http.HandlerFunc(th.List)))
	a.mux.Handle("POST /teachers",
		a.requireRole(management)(a.requirePermission("create:teacher")(http.HandlerFunc(th.Create))))
	a.mux.Handle("POST /teachers/{id}",
		a.requireRole(management)(a.requirePermission("edit:teacher")(http.HandlerFunc(th.Update))))
	a.mux.Handle("POST /teachers/{id}/delete",
		a.requireRole(management)(a.requirePermission("delete:teacher")(http.HandlerFunc(th.Delete))))

	a.mux.Handle("GET /classes", a.requireRole(management)(http.HandlerFunc(clh.List)))
	a.mux.Handle("POST /classes",
		a.requireRole(management)(a.requirePermission("create:class")(http.HandlerFunc(clh.Create))))
	a.mux.Handle("POST /classes/{id}/delete",
		a.requireRole(management)(a.requirePermission("delete:class")(http.HandlerFunc(clh.Delete))))

	a.mux.Handle("GET /products", a.requireRole(management)(http.HandlerFunc(ph.List)))
	a.mux.Handle("GET /products/search", a.requireRole(management)(http.HandlerFunc(ph.Search)))
	a.mux.Handle("POST /products",
		a.requireRole(management)(a.requirePermission("create:product")(http.HandlerFunc(ph.Create))))
	a.mux.Handle("POST /products/{id}",
		a.requireRole(management)(a.requirePermission("edit:product")(http.HandlerFunc(ph.Update))))
	a.mux.Handle("POST /products/{id}/delete",
		a.requireRole(management)(a.requirePermission("delete:product")(http.HandlerFunc(ph.Delete))))

	a.mux.Handle("GET /shops", a.requireRole(management)(http.HandlerFunc(shh.List)))
	a.mux.Handle("POST /shops",
		a.requireRole(management)(a.requirePermission("create:shop")(http.HandlerFunc(shh.Create))))
	a.mux.Handle("POST /shops/{id}",
		a.requireRole(management)(a.requirePermission("edit:shop")(http.HandlerFunc(shh.Update))))
	a.mux.Handle("POST /shops/{id}/delete",
		a.requireRole(management)(a.requirePermission("delete:shop")(http.HandlerFunc(shh.Delete))))

	a.mux.Handle("GET /purchases", a.requireRole(management)(http.HandlerFunc(puh.List)))
	a.mux.Handle("POST /purchases",
		a.requireRole(management)(a.requirePermission("create:purchase")(http.HandlerFunc(puh.Create))))
	a.mux.Handle("POST /purchases/{id}/delete",
		a.requireRole(management)(a.requirePermission("delete:purchase")(http.HandlerFunc(puh.Delete))))

	a.mux.Handle("GET /invoices", a.requireRole(management)(http.HandlerFunc(ih.List)))
	a.mux.Handle("GET /invoices/new",
		a.requireRole(management)(a.requirePermission("create:invoice")(http.HandlerFunc(ih.New))))
	a.mux.Handle("POST /invoices",
		a.requireRole(management)(a.requirePermission("create:invoice")(http.HandlerFunc(ih.Create))))
	a.mux.Handle("POST /invoices/{id}",
		a.requireRole(management)(a.requirePermission("edit:invoice")(http.HandlerFunc(ih.Update))))
	a.mux.Handle("POST /invoices/{id}/delete",
		a.requireRole(management)(a.requirePermission("delete:invoice")(http.HandlerFunc(ih.Delete))))
	a.mux.Handle("GET /invoices/{id}/pay",
		a.requireRole(management)(a.requirePermission("pay:invoice")(http.HandlerFunc(ih.PayPage))))
	a.mux.Handle("POST /invoices/{id}/pay",
		a.requireRole(management)(a.requirePermission("pay:invoice")(http.HandlerFunc(ih.Pay))))

	a.mux.Handle("GET /reports", a.requireRole(management)(http.HandlerFunc(rh.Report)))
	a.mux.Handle("GET /reports/pdf", a.requireRole(management)(http.HandlerFunc(rh.PDF)))
	a.mux.Handle("GET /reports/balances", a.requireRole(management)(http.HandlerFunc(rh.Balances)))

	a.mux.Handle("GET /imports/{kind}", a.requireRole(management)(http.HandlerFunc(imh.Page)))
	a.mux.Handle("POST /imports/{kind}", a.requireRole(management)(http.HandlerFunc(imh.Upload)))
	a.mux.Handle("POST /imports/{kind}/confirm", a.requireRole(management)(http.HandlerFunc(imh.Confirm)))
	a.mux.Handle("POST /imports/{kind}/cancel", a.requireRole(management)(http.HandlerFunc(imh.Cancel)))

	// Super-admin only
	superAdmin := []gate.Role{gate.RoleSuperAdmin}
	a.mux.Handle("GET /permissions", a.requireRole(superAdmin)(http.HandlerFunc(peh.List)))
	a.mux.Handle("POST /permissions/{id}", a.requireRole(superAdmin)(http.HandlerFunc(peh.Save)))

	// Static files
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}

// requireRole gates a whole page by the route's static allow-list. No user
// redirects to login; a user outside the list lands on /unauthorized. The
// allow-list is route configuration, never derived from permissions.
func (a *App) requireRole(allow []gate.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := auth.UserFromContext(r.Context())
			if user == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !gate.RoleAllowed(user.Role, allow) {
				http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requirePermission gates one action inside a page. It runs after the role
// check and asks the gate for exact membership of the tag in the user's
// grant list.
func (a *App) requirePermission(permission gate.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, _ := auth.SessionIDFromContext(r.Context())
			if !a.gate.Can(r.Context(), sessionID, permission) {
				http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
