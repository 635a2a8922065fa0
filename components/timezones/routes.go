package timezones

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes lists the patterns registered by RegisterRoutes.
type Routes struct {
	Search string
	Offset string
}

// MountPath returns the search route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return joinPath(basePath, opts.RoutePath)
}

// OffsetMountPath returns the offset lookup route under basePath.
func OffsetMountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return joinPath(joinPath(basePath, opts.RoutePath), opts.OffsetPath)
}

// RegisterRoutes mounts the search and offset handlers under basePath.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("timezones: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	routes := Routes{
		Search: joinPath(basePath, opts.RoutePath),
	}
	routes.Offset = joinPath(routes.Search, opts.OffsetPath)
	if routes.Offset == routes.Search {
		return Routes{}, fmt.Errorf("timezones: offset route %q collides with search route", routes.Offset)
	}

	mux.Handle(routes.Search, HandlerWithOptions(opts))
	mux.Handle(routes.Offset, OffsetHandlerWithOptions(opts))
	return routes, nil
}

// joinPath joins two URL path segments with exactly one slash between them
// and a leading slash on the result.
func joinPath(base, elem string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	elem = strings.Trim(strings.TrimSpace(elem), "/")

	switch {
	case base == "" && elem == "":
		return "/"
	case base == "":
		return "/" + elem
	case elem == "":
		return "/" + base
	}
	return "/" + base + "/" + elem
}
