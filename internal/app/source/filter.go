package source

import (
	"fmt"

	"github.com/gobwas/glob"

	"lunatint/internal/app/errors"
	"lunatint/internal/app/palette"
)

// Filter selects requests by color name
type Filter interface {
	Match(name string) bool
}

type filter struct {
	patterns []glob.Glob
}

// NewFilter compiles glob patterns; no patterns matches every name
func NewFilter(patterns []string) (Filter, error) {
	f := &filter{
		patterns: make([]glob.Glob, 0, len(patterns)),
	}

	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", errors.ErrInvalidPattern, p, err)
		}

		f.patterns = append(f.patterns, g)
	}

	return f, nil
}

// Match returns true if name matches any pattern
func (f *filter) Match(name string) bool {
	if len(f.patterns) == 0 {
		return true
	}

	for _, g := range f.patterns {
		if g.Match(name) {
			return true
		}
	}

	return false
}

// Select keeps the requests accepted by f, preserving order
func Select(f Filter, requests []palette.Request) []palette.Request {
	out := make([]palette.Request, 0, len(requests))

	for _, req := range requests {
		if f.Match(req.Name) {
			out = append(out, req)
		}
	}

	return out
}
