package lunacy

import (
	"fmt"
	"regexp"
	"strings"

	"lunatint/internal/app/errors"
	"lunatint/internal/app/ramp"
	"lunatint/internal/config"
)

var placeholderPattern = regexp.MustCompile(regexp.QuoteMeta(config.NamePlaceholder) + "|" + regexp.QuoteMeta(config.StepPlaceholder))

// NameFormat maps palette names and steps to swatch names and back
type NameFormat struct {
	format  string
	pattern *regexp.Regexp
}

// NewNameFormat compiles a format such as "Palette / {name} / {name}.{step}"
func NewNameFormat(format string) (*NameFormat, error) {
	if !strings.Contains(format, config.NamePlaceholder) || !strings.Contains(format, config.StepPlaceholder) {
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidNameFormat, format)
	}

	var expr strings.Builder

	expr.WriteString("^")

	last := 0

	for _, loc := range placeholderPattern.FindAllStringIndex(format, -1) {
		expr.WriteString(regexp.QuoteMeta(format[last:loc[0]]))

		if format[loc[0]:loc[1]] == config.NamePlaceholder {
			expr.WriteString(".+?")
		} else {
			expr.WriteString("[1-9]00")
		}

		last = loc[1]
	}

	expr.WriteString(regexp.QuoteMeta(format[last:]))
	expr.WriteString("$")

	pattern, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", errors.ErrInvalidNameFormat, format, err)
	}

	return &NameFormat{format: format, pattern: pattern}, nil
}

// String returns the format text
func (f *NameFormat) String() string {
	return f.format
}

// Name renders the swatch name of one step
func (f *NameFormat) Name(name string, step ramp.Step) string {
	r := strings.NewReplacer(config.NamePlaceholder, name, config.StepPlaceholder, step.String())
	return r.Replace(f.format)
}

// Parse extracts palette name and step from a swatch name. Every occurrence of a placeholder
// must agree; the shortest name that renders back to swatch wins.
func (f *NameFormat) Parse(swatch string) (string, ramp.Step, bool) {
	if !f.pattern.MatchString(swatch) {
		return "", 0, false
	}

	for _, step := range ramp.Steps() {
		partial := strings.ReplaceAll(f.format, config.StepPlaceholder, step.String())
		start := strings.Index(partial, config.NamePlaceholder)

		if !strings.HasPrefix(swatch, partial[:start]) {
			continue
		}

		for end := start + 1; end <= len(swatch); end++ {
			name := swatch[start:end]
			if f.Name(name, step) == swatch {
				return name, step, true
			}
		}
	}

	return "", 0, false
}
