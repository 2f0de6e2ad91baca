// Package web embeds the server-rendered templates and static client
// assets so the api binary ships self-contained.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates exposes the HTML template files.
func Templates() fs.FS {
	return templatesFS
}

// Static exposes the static asset tree rooted at its contents (without the
// leading "static/" path segment).
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
