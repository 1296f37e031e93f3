// Package web holds the embedded templates and static assets.
package web

import (
	"embed"
	"io/fs"

	"github.com/benbjohnson/hashfs"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates is the template tree rooted at layouts/, pages/ and partials/.
var Templates = mustSub(templatesFS, "templates")

// Static serves assets under content-hashed names such as app-3f2a9c.css.
var Static = hashfs.NewFS(mustSub(staticFS, "static"))

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic("web: " + err.Error())
	}
	return sub
}
