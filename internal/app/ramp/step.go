package ramp

import (
	"fmt"
	"strconv"

	"lunatint/internal/app/errors"
)

// Count is the number of steps in every ramp
const Count = 9

// Step is a canonical lightness position; lower is lighter
type Step int

// Canonical steps
const (
	Step100 Step = 100
	Step200 Step = 200
	Step300 Step = 300
	Step400 Step = 400
	Step500 Step = 500
	Step600 Step = 600
	Step700 Step = 700
	Step800 Step = 800
	Step900 Step = 900

	DefaultStep = Step500
)

var steps = [Count]Step{Step100, Step200, Step300, Step400, Step500, Step600, Step700, Step800, Step900}

// Steps returns the canonical steps in ascending order
func Steps() []Step {
	out := make([]Step, Count)
	copy(out, steps[:])

	return out
}

// ParseStep validates an integer step value
func ParseStep(v int) (Step, error) {
	s := Step(v)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d (must be one of 100, 200, ..., 900)", errors.ErrInvalidStep, v)
	}

	return s, nil
}

// Valid reports whether s is one of the nine canonical steps
func (s Step) Valid() bool {
	return s >= Step100 && s <= Step900 && s%100 == 0
}

// Index returns the position of s within a ramp
func (s Step) Index() int {
	return int(s)/100 - 1
}

// String implements fmt.Stringer
func (s Step) String() string {
	return strconv.Itoa(int(s))
}
