package source

import (
	"lunatint/internal/app/palette"
)

// Options names where requests come from
type Options struct {
	Files  []string
	Colors []string
	Only   []string
}

// Gather collects requests from files first and --color values after, so flags come last in the
// batch, then applies the name filter
func Gather(opts Options) ([]palette.Request, error) {
	f, err := NewFilter(opts.Only)
	if err != nil {
		return nil, err
	}

	var requests []palette.Request

	for _, path := range opts.Files {
		reqs, err := LoadFile(path)
		if err != nil {
			return nil, err
		}

		requests = append(requests, reqs...)
	}

	for _, spec := range opts.Colors {
		reqs, err := ParseColorSpec(spec)
		if err != nil {
			return nil, err
		}

		requests = append(requests, reqs...)
	}

	return Select(f, requests), nil
}
