package palette

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lunatint/internal/app/color"
	"lunatint/internal/app/errors"
	"lunatint/internal/app/ramp"
	"lunatint/internal/app/worker"
	"lunatint/internal/config"
	"lunatint/internal/config/logger"
)

func newTestLogger(ctrl *gomock.Controller) *logger.MockLogger {
	mockLog := logger.NewMockLogger(ctrl)
	mockLog.EXPECT().Debug().Return(nil).AnyTimes()

	return mockLog
}

func newTestStore(t *testing.T, modify func(cfg *config.Config)) Store {
	ctrl := gomock.NewController(t)

	cfg := config.DefaultConfig()
	if modify != nil {
		modify(cfg)
	}

	return NewStore(cfg, ramp.NewGenerator(cfg), worker.NewWorkerPool(cfg), newTestLogger(ctrl))
}

func generate(t *testing.T, hex string, step ramp.Step) ramp.Ramp {
	r, err := ramp.NewGenerator(config.DefaultConfig()).Generate(color.MustParse(hex), step)
	require.NoError(t, err)

	return r
}

func seeded(t *testing.T) *Palette {
	p := New()

	_, err := p.Add("pink", color.MustParse("#C92ABB"), ramp.Step500, generate(t, "#C92ABB", ramp.Step500))
	require.NoError(t, err)

	_, err = p.Add("dark", color.MustParse("#121212"), ramp.Step500, generate(t, "#121212", ramp.Step500))
	require.NoError(t, err)

	_, err = p.Add("brand", color.MustParse("#3B82F6"), ramp.Step600, generate(t, "#3B82F6", ramp.Step600))
	require.NoError(t, err)

	return p
}

func snapshot(p *Palette) map[string]Entry {
	out := make(map[string]Entry, p.Len())
	for _, e := range p.Entries() {
		out[e.Name] = *e
	}

	return out
}

func Test_ApplyUpdates_CreatesWithDefaultStep(t *testing.T) {
	s := newTestStore(t, nil)
	p := New()

	result, err := s.ApplyUpdates(context.Background(), p, []Request{NewRequest("dark", "#121212")})
	require.NoError(t, err)

	assert.Equal(t, []string{"dark"}, result.Created)
	assert.True(t, result.Changed())

	e, ok := p.Get("dark")
	require.True(t, ok)
	assert.Equal(t, ramp.Step500, e.BaseStep)
	assert.Equal(t, generate(t, "#121212", ramp.Step500), e.Ramp)
	assert.Equal(t, "#121212", e.Ramp.At(ramp.Step500).Hex())
	assert.Greater(t, e.Ramp.At(ramp.Step100).Lightness(), e.Ramp.At(ramp.Step500).Lightness())
	assert.Less(t, e.Ramp.At(ramp.Step900).Lightness(), e.Ramp.At(ramp.Step500).Lightness())
}

func Test_ApplyUpdates_ConfiguredDefaultStep(t *testing.T) {
	s := newTestStore(t, func(cfg *config.Config) { cfg.Palette.DefaultStep = 400 })
	p := New()

	_, err := s.ApplyUpdates(context.Background(), p, []Request{NewRequest("dark", "#121212")})
	require.NoError(t, err)

	e, _ := p.Get("dark")
	assert.Equal(t, ramp.Step400, e.BaseStep)
	assert.Equal(t, "#121212", e.Ramp.At(ramp.Step400).Hex())
}

func Test_ApplyUpdates_UpdatesInPlace(t *testing.T) {
	s := newTestStore(t, nil)
	p := seeded(t)
	before := snapshot(p)

	pink, _ := p.Get("pink")
	pinkID := pink.ID

	result, err := s.ApplyUpdates(context.Background(), p, []Request{NewRequest("pink", "#FF00FF").WithStep(300)})
	require.NoError(t, err)
	assert.Equal(t, []string{"pink"}, result.Updated)
	assert.Empty(t, result.Created)

	after, ok := p.Get("pink")
	require.True(t, ok)
	assert.Same(t, pink, after)
	assert.Equal(t, pinkID, after.ID)
	assert.Equal(t, 2, after.Revision)
	assert.Equal(t, ramp.Step300, after.BaseStep)
	assert.Equal(t, "#FF00FF", after.Ramp.At(ramp.Step300).Hex())
	assert.NotEqual(t, "#FF00FF", after.Ramp.At(ramp.Step500).Hex())

	assert.Equal(t, []string{"pink", "dark", "brand"}, p.Names())
	assert.Equal(t, before["dark"], *mustGet(t, p, "dark"))
	assert.Equal(t, before["brand"], *mustGet(t, p, "brand"))
}

func Test_ApplyUpdates_KeepsExistingStep(t *testing.T) {
	s := newTestStore(t, nil)
	p := seeded(t)

	_, err := s.ApplyUpdates(context.Background(), p, []Request{NewRequest("brand", "#2563EB")})
	require.NoError(t, err)

	brand := mustGet(t, p, "brand")
	assert.Equal(t, ramp.Step600, brand.BaseStep)
	assert.Equal(t, "#2563EB", brand.Ramp.At(ramp.Step600).Hex())
}

func Test_ApplyUpdates_Unchanged(t *testing.T) {
	s := newTestStore(t, nil)
	p := seeded(t)
	before := snapshot(p)

	result, err := s.ApplyUpdates(context.Background(), p, []Request{NewRequest("pink", "#c92abb")})
	require.NoError(t, err)

	assert.Equal(t, []string{"pink"}, result.Unchanged)
	assert.False(t, result.Changed())
	assert.Equal(t, before, snapshot(p))
}

func Test_ApplyUpdates_NewIDs(t *testing.T) {
	s := newTestStore(t, nil)
	p := seeded(t)

	_, err := s.ApplyUpdates(context.Background(), p, []Request{
		NewRequest("green", "#10B981"),
		NewRequest("amber", "#F59E0B"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"pink", "dark", "brand", "green", "amber"}, p.Names())
	assert.Equal(t, uint64(4), mustGet(t, p, "green").ID)
	assert.Equal(t, uint64(5), mustGet(t, p, "amber").ID)
}

func Test_ApplyUpdates_DuplicatesLastWins(t *testing.T) {
	s := newTestStore(t, nil)
	p := New()

	result, err := s.ApplyUpdates(context.Background(), p, []Request{
		NewRequest("pink", "#C92ABB"),
		NewRequest("dark", "#121212"),
		NewRequest("pink", "#FF00FF").WithStep(300),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"pink", "dark"}, result.Created)
	assert.Equal(t, []string{"pink", "dark"}, p.Names())

	pink := mustGet(t, p, "pink")
	assert.Equal(t, ramp.Step300, pink.BaseStep)
	assert.Equal(t, "#FF00FF", pink.Base.Hex())
	assert.Equal(t, 1, pink.Revision)
}

func Test_ApplyUpdates_DuplicatesStrict(t *testing.T) {
	s := newTestStore(t, func(cfg *config.Config) { cfg.Palette.Duplicates = config.DuplicatesStrict })

	t.Run("conflicting values fail", func(t *testing.T) {
		p := New()

		_, err := s.ApplyUpdates(context.Background(), p, []Request{
			NewRequest("pink", "#C92ABB"),
			NewRequest("pink", "#FF00FF"),
		})
		assert.ErrorIs(t, err, errors.ErrDuplicateName)
		assert.Contains(t, err.Error(), "pink")
		assert.Equal(t, 0, p.Len())
	})

	t.Run("identical repeats are accepted", func(t *testing.T) {
		p := New()

		_, err := s.ApplyUpdates(context.Background(), p, []Request{
			NewRequest("pink", "#C92ABB"),
			NewRequest("pink", "#c92abb").WithStep(500),
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, p.Len())
	})
}

func Test_ApplyUpdates_Errors(t *testing.T) {
	tests := []struct {
		name     string
		requests []Request
		error    error
		contains string
	}{
		{
			name:     "invalid step",
			requests: []Request{NewRequest("pink", "#FF00FF").WithStep(450)},
			error:    errors.ErrInvalidStep,
			contains: "pink",
		},
		{
			name:     "invalid color",
			requests: []Request{NewRequest("pink", "not-a-color")},
			error:    errors.ErrInvalidColor,
			contains: "not-a-color",
		},
		{
			name:     "empty name",
			requests: []Request{NewRequest("", "#FF00FF")},
			error:    errors.ErrEmptyName,
		},
		{
			name:     "whitespace name",
			requests: []Request{NewRequest("   ", "#FF00FF")},
			error:    errors.ErrEmptyName,
		},
		{
			name: "error after valid requests aborts the batch",
			requests: []Request{
				NewRequest("pink", "#FF00FF").WithStep(300),
				NewRequest("green", "#10B981"),
				NewRequest("dark", "#12121"),
			},
			error:    errors.ErrInvalidColor,
			contains: "dark",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, nil)
			p := seeded(t)
			before := snapshot(p)

			result, err := s.ApplyUpdates(context.Background(), p, tt.requests)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.error)

			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}

			assert.Equal(t, before, snapshot(p))
			assert.Equal(t, []string{"pink", "dark", "brand"}, p.Names())
		})
	}
}

func Test_ApplyUpdates_Idempotent(t *testing.T) {
	s := newTestStore(t, nil)
	requests := []Request{
		NewRequest("pink", "#FF00FF").WithStep(300),
		NewRequest("dark", "#121212"),
	}

	first := New()
	_, err := s.ApplyUpdates(context.Background(), first, requests)
	require.NoError(t, err)

	second := New()
	_, err = s.ApplyUpdates(context.Background(), second, requests)
	require.NoError(t, err)

	assert.Equal(t, snapshot(first), snapshot(second))

	result, err := s.ApplyUpdates(context.Background(), first, requests)
	require.NoError(t, err)
	assert.False(t, result.Changed())
}

func mustGet(t *testing.T, p *Palette, name string) *Entry {
	t.Helper()

	e, ok := p.Get(name)
	require.True(t, ok, "entry %s", name)

	return e
}
