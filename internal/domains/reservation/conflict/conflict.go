// Package conflict decides whether a candidate interval collides with the
// active entries of a property.
//
// A booking yields to every active booking and block. A block yields to
// active bookings, and to other blocks unless the policy allows stacking them.
// The rules are evaluated by the stores while they hold the per property
// write lock, so a positive answer is never stale.
package conflict

import (
	"context"
	"fmt"
	"rental/internal/domains/reservation/model"
	"slices"
)

// Rule selects which active entries a candidate must not overlap.
// A rule with no kinds admits everything.
type Rule struct {
	Kinds     []model.Kind
	ExcludeID string
}

// None is the rule that never reports a conflict.
func None() Rule {
	return Rule{}
}

func (r Rule) Enabled() bool {
	return len(r.Kinds) > 0
}

// Excluding returns a copy of the rule that ignores the entry with the given id,
// used when an entry is re-checked against its own calendar.
func (r Rule) Excluding(id string) Rule {
	r.Kinds = slices.Clone(r.Kinds)
	r.ExcludeID = id

	return r
}

func (r Rule) matches(entry model.Entry) bool {
	return entry.IsActive() && entry.ID != r.ExcludeID && slices.Contains(r.Kinds, entry.Kind)
}

// Policy holds the calendar toggles that are decided per deployment.
type Policy struct {
	// AllowOverlappingBlocks lets an owner stack blocks on the same days.
	AllowOverlappingBlocks bool
	// RecheckBlockMove makes block updates go through the block admission rule.
	RecheckBlockMove bool
}

// BookingRule applies to creating, moving and reactivating bookings.
func (p Policy) BookingRule() Rule {
	return Rule{Kinds: []model.Kind{model.KindBooking, model.KindBlock}}
}

// BlockRule applies to creating blocks.
func (p Policy) BlockRule() Rule {
	if p.AllowOverlappingBlocks {
		return Rule{Kinds: []model.Kind{model.KindBooking}}
	}

	return Rule{Kinds: []model.Kind{model.KindBooking, model.KindBlock}}
}

// BlockMoveRule applies to moving an existing block.
func (p Policy) BlockMoveRule() Rule {
	if !p.RecheckBlockMove {
		return None()
	}

	return p.BlockRule()
}

// Conflict describes one entry blocking a candidate and the days they share.
type Conflict struct {
	EntryID string
	Kind    model.Kind
	Overlap model.Interval
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s %s on %s", c.Kind, c.EntryID, c.Overlap)
}

// Finder returns candidate active entries of a property overlapping an interval.
// Implementations may over-approximate, Check filters the result again.
type Finder interface {
	FindActiveOverlapping(ctx context.Context, propertyID string, interval model.Interval, rule Rule) ([]model.Entry, error)
}

// Evaluate filters entries down to the ones that conflict with interval under rule.
func Evaluate(entries []model.Entry, interval model.Interval, rule Rule) []Conflict {
	if !rule.Enabled() {
		return nil
	}

	conflicts := []Conflict{}

	for _, entry := range entries {
		if !rule.matches(entry) {
			continue
		}

		overlap, ok := model.Intersection(interval, entry.Interval())
		if !ok {
			continue
		}

		conflicts = append(conflicts, Conflict{
			EntryID: entry.ID,
			Kind:    entry.Kind,
			Overlap: overlap,
		})
	}

	return conflicts
}

// Check asks the finder for candidates and returns the real conflicts.
func Check(ctx context.Context, finder Finder, propertyID string, interval model.Interval, rule Rule) ([]Conflict, error) {
	if !rule.Enabled() {
		return nil, nil
	}

	entries, err := finder.FindActiveOverlapping(ctx, propertyID, interval, rule)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping entries: %w", err)
	}

	return Evaluate(entries, interval, rule), nil
}

// HasConflict reports whether interval collides with any entry selected by rule.
func HasConflict(ctx context.Context, finder Finder, propertyID string, interval model.Interval, rule Rule) (bool, error) {
	conflicts, err := Check(ctx, finder, propertyID, interval, rule)
	if err != nil {
		return false, err
	}

	return len(conflicts) > 0, nil
}
