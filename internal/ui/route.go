package ui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/justinpbarnett/stickerbox/internal/ui/panels"
)

// Route is the view being shown: the catalog at "/" or a pack at
// "/pack/{path}".
type Route struct {
	Pack string
}

// ParseRoute accepts "/", "" and "/pack/{path}" with path percent-escaped.
func ParseRoute(s string) (Route, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "/" {
		return Route{}, nil
	}
	rest, ok := strings.CutPrefix(s, "/pack/")
	if !ok {
		return Route{}, fmt.Errorf("unknown route %q", s)
	}
	rest = strings.TrimSuffix(rest, "/")
	pack, err := url.PathUnescape(rest)
	if err != nil {
		return Route{}, fmt.Errorf("route %q: %w", s, err)
	}
	if pack == "" || strings.Contains(pack, "/") {
		return Route{}, fmt.Errorf("route %q: invalid pack path", s)
	}
	return Route{Pack: pack}, nil
}

func (r Route) IsCatalog() bool { return r.Pack == "" }

func (r Route) Path() string {
	if r.IsCatalog() {
		return "/"
	}
	return panels.PackRoute(r.Pack)
}
