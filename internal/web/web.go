// Package web holds the HTML templates rendered by the api package.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Layout is the template every page is rendered inside.
const Layout = "layout.html"

// Templates returns the embedded template files.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		// ALLOW-PANIC: the embedded directory is fixed at compile time
		panic(err)
	}
	return sub
}
