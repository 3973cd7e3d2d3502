package source

import (
	"fmt"
	"strconv"
	"strings"

	"lunatint/internal/app/errors"
	"lunatint/internal/app/palette"
)

const (
	entrySeparator = ";"
	nameSeparator  = ":"
	stepSeparator  = ","
)

// ParseColorSpec parses a --color value: entries separated by ';', each "name:value[,step]".
// Values may be functional notation such as rgb(1, 2, 3); only a trailing ",<digits>" after the
// closing parenthesis is read as the step.
func ParseColorSpec(spec string) ([]palette.Request, error) {
	var requests []palette.Request

	for _, raw := range strings.Split(spec, entrySeparator) {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}

		req, err := parseEntry(entry)
		if err != nil {
			return nil, err
		}

		requests = append(requests, req)
	}

	if len(requests) == 0 {
		return nil, fmt.Errorf("%w: %q has no entries", errors.ErrInvalidColorSpec, spec)
	}

	return requests, nil
}

func parseEntry(entry string) (palette.Request, error) {
	name, rest, ok := strings.Cut(entry, nameSeparator)
	if !ok {
		return palette.Request{}, fmt.Errorf("%w: %q (expected name:value[,step])", errors.ErrInvalidColorSpec, entry)
	}

	req := palette.NewRequest(strings.TrimSpace(name), strings.TrimSpace(rest))

	i := strings.LastIndex(req.Value, stepSeparator)
	if i < 0 || i < strings.LastIndex(req.Value, ")") {
		return req, nil
	}

	digits := strings.TrimSpace(req.Value[i+1:])

	step, err := strconv.Atoi(digits)
	if err != nil || strings.ContainsAny(digits, "+-") {
		return req, nil
	}

	req.Value = strings.TrimSpace(req.Value[:i])

	return req.WithStep(step), nil
}
