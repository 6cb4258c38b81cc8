package api

import (
	"net/url"
	"strings"

	"github.com/rohanthewiz/rweb"
)

// HeaderValue returns the named request header regardless of letter case.
// rweb matches header keys exactly, while clients and proxies vary the case.
func HeaderValue(ctx rweb.Context, key string) string {
	for _, h := range ctx.Request().Headers() {
		if strings.EqualFold(h.Key, key) {
			return h.Value
		}
	}
	return ""
}

// PathID returns the url-decoded :id route parameter
func PathID(ctx rweb.Context) (string, error) {
	return url.PathUnescape(ctx.Request().Param("id"))
}
