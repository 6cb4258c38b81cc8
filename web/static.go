package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

//go:embed all:static
var staticFiles embed.FS

// assetKind is what one static directory may hold and how long clients keep it
type assetKind struct {
	ext          string
	contentType  string
	cacheControl string
}

// Stylesheets change with releases; recipe images are replaced under new names
var assetKinds = map[string]assetKind{
	"css": {ext: ".css", contentType: "text/css; charset=utf-8", cacheControl: "public, max-age=3600"},
	"img": {ext: ".svg", contentType: "image/svg+xml", cacheControl: "public, max-age=31536000"},
}

const faviconAsset = "img/logo.svg"

// assetFor returns the kind of a path below /static/, false for anything not served
func assetFor(name string) (assetKind, bool) {
	if name != path.Clean(name) || strings.HasPrefix(name, "/") {
		return assetKind{}, false
	}
	dir, file, found := strings.Cut(name, "/")
	if !found || file == "" {
		return assetKind{}, false
	}
	kind, ok := assetKinds[dir]
	if !ok || path.Ext(file) != kind.ext {
		return assetKind{}, false
	}
	return kind, true
}

// SetupStaticFiles serves the embedded stylesheet and recipe images
func SetupStaticFiles(s *rweb.Server) {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logger.LogErr(err, "failed to get static subdirectory")
		return
	}

	serve := func(c rweb.Context, name string) error {
		kind, ok := assetFor(name)
		if !ok {
			c.SetStatus(http.StatusNotFound)
			return nil
		}
		content, err := fs.ReadFile(staticFS, name)
		if err != nil {
			c.SetStatus(http.StatusNotFound)
			return nil
		}
		c.Response().SetHeader("Content-Type", kind.contentType)
		c.Response().SetHeader("Cache-Control", kind.cacheControl)
		return c.Bytes(content)
	}

	s.Get("/favicon.ico", func(c rweb.Context) error {
		return serve(c, faviconAsset)
	})
	s.Get("/static/*", func(c rweb.Context) error {
		return serve(c, strings.TrimPrefix(c.Request().Path(), "/static/"))
	})
}
