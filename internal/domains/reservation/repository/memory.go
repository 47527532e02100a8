package repository

import (
	"cmp"
	"context"
	"rental/internal/domains/reservation/conflict"
	"rental/internal/domains/reservation/model"
	"slices"
	"sync"
)

// memoryStore keeps entries in process. Every write takes the mutex of its
// property for the whole check and write, which is what makes
// CreateIfNoConflict atomic. It backs tests and single node deployments.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]model.Entry

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewMemory() Reservation {
	return &memoryStore{
		entries: map[string]model.Entry{},
		locks:   map[string]*sync.Mutex{},
	}
}

func (m *memoryStore) lock(propertyID string) func() {
	m.locksMu.Lock()

	l, ok := m.locks[propertyID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[propertyID] = l
	}

	m.locksMu.Unlock()

	l.Lock()

	return l.Unlock
}

// FindActiveOverlapping implements conflict.Finder. Callers hold the property lock.
func (m *memoryStore) FindActiveOverlapping(_ context.Context, propertyID string, interval model.Interval, rule conflict.Rule) ([]model.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := []model.Entry{}

	for _, entry := range m.entries {
		if entry.PropertyID != propertyID || !entry.IsActive() || entry.ID == rule.ExcludeID {
			continue
		}

		if model.Overlaps(entry.Interval(), interval) {
			found = append(found, entry.Clone())
		}
	}

	return found, nil
}

func (m *memoryStore) CreateIfNoConflict(ctx context.Context, entry model.Entry, rule conflict.Rule) (model.Entry, error) {
	if err := ctx.Err(); err != nil {
		return model.Entry{}, err //nolint:wrapcheck
	}

	unlock := m.lock(entry.PropertyID)
	defer unlock()

	conflicts, err := conflict.Check(ctx, m, entry.PropertyID, entry.Interval(), rule)
	if err != nil {
		return model.Entry{}, err
	}

	if len(conflicts) > 0 {
		return model.Entry{}, &Conflicts{Entries: conflicts}
	}

	stored := entry.Clone()
	stored.Version = 0

	m.mu.Lock()
	m.entries[stored.ID] = stored
	m.mu.Unlock()

	return stored.Clone(), nil
}

func (m *memoryStore) UpdateWithVersion(ctx context.Context, id string, expectedVersion int64, mutate Mutator) (model.Entry, error) {
	if err := ctx.Err(); err != nil {
		return model.Entry{}, err //nolint:wrapcheck
	}

	current, err := m.FindByID(ctx, id)
	if err != nil {
		return model.Entry{}, err
	}

	unlock := m.lock(current.PropertyID)
	defer unlock()

	// reload under the lock, a concurrent writer may have won the race
	current, err = m.FindByID(ctx, id)
	if err != nil {
		return model.Entry{}, err
	}

	if current.Version != expectedVersion {
		return model.Entry{}, ErrStaleVersion
	}

	next, rule, err := applyMutation(current, mutate)
	if err != nil {
		return model.Entry{}, err
	}

	if next.IsActive() {
		conflicts, err := conflict.Check(ctx, m, next.PropertyID, next.Interval(), rule)
		if err != nil {
			return model.Entry{}, err
		}

		if len(conflicts) > 0 {
			return model.Entry{}, &Conflicts{Entries: conflicts}
		}
	}

	m.mu.Lock()
	m.entries[id] = next
	m.mu.Unlock()

	return next.Clone(), nil
}

func (m *memoryStore) FindByID(_ context.Context, id string) (model.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[id]
	if !ok {
		return model.Entry{}, ErrNotFound
	}

	return entry.Clone(), nil
}

func (m *memoryStore) FindActiveBlocksByProperty(_ context.Context, propertyID string) ([]model.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blocks := []model.Entry{}

	for _, entry := range m.entries {
		if entry.PropertyID == propertyID && entry.Kind == model.KindBlock && entry.IsActive() {
			blocks = append(blocks, entry.Clone())
		}
	}

	slices.SortFunc(blocks, func(a, b model.Entry) int {
		return cmp.Or(a.StartDate.Compare(b.StartDate), cmp.Compare(a.ID, b.ID))
	})

	return blocks, nil
}

func (m *memoryStore) FindByPropertyAndGuestAndInterval(_ context.Context, propertyID, guestID string, interval model.Interval) (model.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, entry := range m.entries {
		if entry.PropertyID == propertyID &&
			entry.IsBooking() &&
			entry.IsActive() &&
			entry.IsGuest(guestID) &&
			entry.Interval().Equal(interval) {
			return entry.Clone(), nil
		}
	}

	return model.Entry{}, ErrNotFound
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	current, err := m.FindByID(ctx, id)
	if err != nil {
		return err
	}

	unlock := m.lock(current.PropertyID)
	defer unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}

	delete(m.entries, id)

	return nil
}
