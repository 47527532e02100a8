package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"rental/internal/domains/reservation/conflict"
	"rental/internal/domains/reservation/model"
)

var (
	ErrConflict     = errors.New("reservation conflicts with an existing entry")
	ErrStaleVersion = errors.New("reservation was modified concurrently")
	ErrNotFound     = errors.New("reservation not found")
)

// Mutator edits a loaded entry in place and returns the rule the result must
// satisfy. Returning an error aborts the update without writing.
// ID, PropertyID and Kind changes are discarded.
type Mutator func(entry *model.Entry) (conflict.Rule, error)

// Reservation is the atomic store of calendar entries. Writes to the same
// property are serialized, the conflict check and the write happen as one step.
type Reservation interface {
	// CreateIfNoConflict stores entry unless it overlaps an active entry selected by rule.
	CreateIfNoConflict(ctx context.Context, entry model.Entry, rule conflict.Rule) (model.Entry, error)
	// UpdateWithVersion applies mutate when the stored version equals expectedVersion
	// and bumps the version by one.
	UpdateWithVersion(ctx context.Context, id string, expectedVersion int64, mutate Mutator) (model.Entry, error)
	FindByID(ctx context.Context, id string) (model.Entry, error)
	FindActiveBlocksByProperty(ctx context.Context, propertyID string) ([]model.Entry, error)
	FindByPropertyAndGuestAndInterval(ctx context.Context, propertyID, guestID string, interval model.Interval) (model.Entry, error)
	Delete(ctx context.Context, id string) error
}

// Conflicts carries the entries that made a write fail. It matches ErrConflict.
type Conflicts struct {
	Entries []conflict.Conflict
}

func (c *Conflicts) Error() string {
	return ErrConflict.Error()
}

func (c *Conflicts) Is(target error) bool {
	return target == ErrConflict
}

// ConflictsOf extracts the blocking entries from err, if any.
func ConflictsOf(err error) []conflict.Conflict {
	var conflicts *Conflicts
	if errors.As(err, &conflicts) {
		return conflicts.Entries
	}

	return nil
}

// applyMutation runs mutate on a copy of current and restores the identity fields.
func applyMutation(current model.Entry, mutate Mutator) (model.Entry, conflict.Rule, error) {
	next := current.Clone()

	rule, err := mutate(&next)
	if err != nil {
		return model.Entry{}, conflict.Rule{}, err
	}

	next.ID = current.ID
	next.PropertyID = current.PropertyID
	next.Kind = current.Kind
	next.Version = current.Version + 1

	if _, err := model.NewInterval(next.StartDate, next.EndDate); err != nil {
		return model.Entry{}, conflict.Rule{}, err //nolint:wrapcheck
	}

	return next, rule.Excluding(current.ID), nil
}
