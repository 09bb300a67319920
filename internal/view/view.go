// Package view renders the HTML pages. Templates live under templates/:
// layout.html wraps every page unless the page is a full document, and the
// partials directory holds shared fragments.
package view

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/auth"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/gate"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the shared func map. Permission checks read the restored
// session user from the request context, so templates can hide action
// buttons with {{ if can "create:invoice" }}.
func Funcs(r *http.Request) template.FuncMap {
	user := auth.UserFromContext(r.Context())
	return template.FuncMap{
		"can": func(permission string) bool {
			return user.Has(gate.Permission(permission))
		},
		"role": func() string {
			if user == nil {
				return ""
			}
			return string(user.Role)
		},
		"isManagement": func() bool {
			return user != nil && gate.RoleAllowed(user.Role, gate.ManagementRoles)
		},
		"money": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
		"mul":   func(a float64, b int) float64 { return a * float64(b) },
		"add":   func(a, b float64) float64 { return a + b },
		"year":  func() int { return time.Now().Year() },
		// dict builds a map for passing several values to a partial.
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// Render parses and executes a page template with the shared layout and
// funcs. name is the path below templates/ (e.g. "invoices/index.html").
// Common defaults are injected so pages never have to pass them.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(detectBase)
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	user := auth.UserFromContext(r.Context())
	if _, exists := data["CurrentUser"]; !exists {
		data["CurrentUser"] = user
	}
	if _, exists := data["IsLoggedIn"]; !exists {
		data["IsLoggedIn"] = user != nil
	}

	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && t != nil {
			return execute(w, r, t, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		return err
	}
	layoutPath := filepath.Join(baseDir, "layout.html")
	partials := []string{
		filepath.Join(baseDir, "partials", "flash.html"),
		filepath.Join(baseDir, "partials", "nav.html"),
	}

	// A page providing its own full document skips the layout.
	contentBytes, _ := os.ReadFile(mainPath)
	useLayout := !bytes.Contains(bytes.ToLower(contentBytes), []byte("<!doctype"))

	var t *template.Template
	var err error
	if useLayout {
		files := []string{layoutPath, mainPath}
		for _, p := range partials {
			if fi, serr := os.Stat(p); serr == nil && !fi.IsDir() {
				files = append(files, p)
			}
		}
		t, err = template.New("layout.html").Funcs(Funcs(r)).ParseFiles(files...)
	} else {
		t, err = template.New(filepath.Base(name)).Funcs(Funcs(r)).ParseFiles(mainPath)
	}
	if err != nil {
		return err
	}

	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	return execute(w, r, t, data)
}

func execute(w http.ResponseWriter, r *http.Request, t *template.Template, data map[string]any) error {
	// Clone before binding funcs so permission checks see this request's
	// user without racing on the cached template.
	if t == nil {
		return errors.New("template not cached")
	}
	c, err := t.Clone()
	if err != nil {
		return err
	}
	return c.Funcs(Funcs(r)).Execute(w, data)
}
