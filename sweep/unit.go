package sweep

import (
	"context"
	"strings"
	"time"

	"github.com/faresweep/faresweep/browse"
)

// SingleTag marks offers collected outside a date sweep.
const SingleTag = "single"

const _datePlaceholder = "{date}"

// Positioner readies the browsing session for one extraction. The three
// strategies (fixed instruction, per-date URL, autonomous goal) are the
// only difference between the sweep modes; the aggregation loop is shared.
type Positioner interface {
	Position(ctx context.Context, agent browse.Agent) error
}

// QueryUnit is one discrete search/extraction cycle: how to position the
// session, and the tag attached to every offer it yields.
type QueryUnit struct {
	Tag        string
	Positioner Positioner
}

// FixedInstruction navigates to a fixed URL and optionally performs one
// natural-language instruction to reach the listing.
type FixedInstruction struct {
	URL         string
	Instruction string
}

var _ Positioner = FixedInstruction{}

func (p FixedInstruction) Position(ctx context.Context, agent browse.Agent) error {
	if err := agent.Navigate(ctx, p.URL); err != nil {
		return err
	}
	if p.Instruction == "" {
		return nil
	}
	return agent.Instruct(ctx, p.Instruction)
}

// DateURL navigates to a URL template with the unit's date spliced in.
type DateURL struct {
	Template string
	Date     time.Time
}

var _ Positioner = DateURL{}

func (p DateURL) Position(ctx context.Context, agent browse.Agent) error {
	return agent.Navigate(ctx, p.Render())
}

// Render substitutes the date into the template's {date} slot.
func (p DateURL) Render() string {
	return strings.ReplaceAll(p.Template, _datePlaceholder, p.Date.Format("2006-01-02"))
}

// AutonomousGoal lets the agent pursue a multi-step goal on its own.
type AutonomousGoal struct {
	Goal string
}

var _ Positioner = AutonomousGoal{}

func (p AutonomousGoal) Position(ctx context.Context, agent browse.Agent) error {
	return agent.RunTask(ctx, p.Goal)
}

// SingleUnit is the one-shot query mode.
func SingleUnit(url, instruction string) []QueryUnit {
	return []QueryUnit{{
		Tag:        SingleTag,
		Positioner: FixedInstruction{URL: url, Instruction: instruction},
	}}
}

// RangeUnits expands an inclusive departure-date range into one unit per
// day, each tagged with its date.
func RangeUnits(template string, start, end time.Time) []QueryUnit {
	units := make([]QueryUnit, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		units = append(units, QueryUnit{
			Tag:        d.Format("2006-01-02"),
			Positioner: DateURL{Template: template, Date: d},
		})
	}
	return units
}

// AutonomousUnit is the agent-driven mode.
func AutonomousUnit(goal string) []QueryUnit {
	return []QueryUnit{{
		Tag:        SingleTag,
		Positioner: AutonomousGoal{Goal: goal},
	}}
}
