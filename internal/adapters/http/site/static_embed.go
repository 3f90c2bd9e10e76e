package site

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

//go:embed static/*.css static/pages/*.html
var staticFS embed.FS

// Page templates under static/pages.
const (
	dashboardPage = "employee_dashboard.html"
	projectsPage  = "projects.html"
	tasksPage     = "employee_tasks.html"
)

// FS returns an http.FileSystem for the embedded assets.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return http.FS(staticFS)
	}
	return http.FS(sub)
}

func pageTemplate(name string) ([]byte, error) {
	b, err := staticFS.ReadFile("static/pages/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplate, name, err)
	}
	return b, nil
}
