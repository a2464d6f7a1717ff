package coded

import (
	"github.com/ticalc-travis/hue-lighting-toys/internal/lights"
)

// PadMode controls whether a trailing all-blank step is appended after the
// last batch.
type PadMode int

const (
	// PadAuto pads only when the sequence needed more than one batch, i.e.
	// when the lights ended up showing a partial leftover state.
	PadAuto PadMode = iota
	PadAlways
	PadNever
)

// PlanOptions are the timing and policy knobs for building a plan.
type PlanOptions struct {
	// CycleTime is the hold duration of each digit flash. Must be positive.
	CycleTime lights.Deciseconds
	// SwitchTime is the hold duration of the all-blank steps separating
	// batches. Zero means as short as representable; lights.SwitchDisabled
	// suppresses switch steps entirely.
	SwitchTime lights.Deciseconds
	// ForceSwitch inserts switch steps before the first and after the last
	// batch as well, even for a single batch.
	ForceSwitch bool
	Pad         PadMode
}

// Step is one atomic unit of a transmission plan: a set of light assignments
// applied together, then held for Hold. Light indexes absent from
// Assignments keep whatever they were showing.
type Step struct {
	Assignments map[int]lights.ColorValue
	Hold        lights.Deciseconds
}

// Plan is an ordered sequence of steps. Building one is a pure function of
// its inputs.
type Plan []Step

// BuildPlan partitions the digit sequence into consecutive batches of at
// most fixtureCount digits and produces the step sequence that flashes them
// in order: an optional switch step between (and, when forced, around) the
// batches, one step per batch assigning each digit's color to the light at
// its position, and an optional trailing pad step per the pad policy. A
// short final batch leaves the remaining lights unassigned.
func BuildPlan(seq []Digit, fixtureCount int, scheme *Scheme, opts PlanOptions) (Plan, error) {
	if fixtureCount < 1 {
		return nil, ConfigErrorf("no lights to transmit with")
	}
	if opts.CycleTime <= 0 {
		return nil, ConfigErrorf("cycle time must be positive, got %d", opts.CycleTime)
	}
	if opts.SwitchTime < lights.SwitchDisabled {
		return nil, ConfigErrorf("switch time must be >= -1, got %d", opts.SwitchTime)
	}

	switchEnabled := opts.SwitchTime > lights.SwitchDisabled

	blankAll := func(hold lights.Deciseconds) Step {
		assignments := make(map[int]lights.ColorValue, fixtureCount)
		for i := 0; i < fixtureCount; i++ {
			assignments[i] = scheme.Blank()
		}
		return Step{Assignments: assignments, Hold: hold}
	}

	numBatches := (len(seq) + fixtureCount - 1) / fixtureCount

	if numBatches == 0 {
		var plan Plan
		if opts.Pad == PadAlways {
			plan = append(plan, blankAll(0))
		} else if opts.ForceSwitch && switchEnabled {
			plan = append(plan, blankAll(opts.SwitchTime))
		}
		return plan, nil
	}

	plan := make(Plan, 0, 2*numBatches+1)
	for b := 0; b < numBatches; b++ {
		if switchEnabled && (b > 0 || opts.ForceSwitch) {
			plan = append(plan, blankAll(opts.SwitchTime))
		}

		batch := seq[b*fixtureCount : min((b+1)*fixtureCount, len(seq))]
		assignments := make(map[int]lights.ColorValue, len(batch))
		for i, d := range batch {
			assignments[i] = scheme.Digit(d)
		}
		plan = append(plan, Step{Assignments: assignments, Hold: opts.CycleTime})
	}
	if switchEnabled && opts.ForceSwitch {
		plan = append(plan, blankAll(opts.SwitchTime))
	}

	if opts.Pad == PadAlways || (opts.Pad == PadAuto && len(seq) > fixtureCount) {
		plan = append(plan, blankAll(0))
	}

	return plan, nil
}
