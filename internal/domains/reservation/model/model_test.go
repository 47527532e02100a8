package model_test

import (
	"rental/internal/domains/reservation/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	now := time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)
	stay := interval(t, 1, 5)

	entry := model.NewBooking("p1", "g1", stay, model.GuestInfo{Name: "Ana", Email: "ana@example.com"}, "g1", now)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, model.KindBooking, entry.Kind)
	assert.Equal(t, model.StatusActive, entry.Status)
	assert.Equal(t, int64(0), entry.Version)
	assert.Equal(t, stay, entry.Interval())
	assert.True(t, entry.IsActive())
	assert.True(t, entry.IsBooking())
	assert.True(t, entry.IsGuest("g1"))
	assert.False(t, entry.IsGuest("g2"))
	assert.Equal(t, "Ana", model.Value(entry.GuestName))
	assert.Nil(t, entry.GuestPhone)
	assert.Equal(t, "g1", entry.CreatedBy)
	assert.Equal(t, now, entry.CreatedAt)

	entry.SetGuest(model.GuestInfo{Phone: "+351"})
	assert.Nil(t, entry.GuestName)
	assert.Equal(t, "+351", model.Value(entry.GuestPhone))
	assert.True(t, entry.IsGuest("g1"), "guest identity is kept")
}

func TestNewBlock(t *testing.T) {
	entry := model.NewBlock("p1", interval(t, 10, 12), "owner", time.Now())

	assert.Equal(t, model.KindBlock, entry.Kind)
	assert.Equal(t, model.StatusActive, entry.Status)
	assert.Nil(t, entry.GuestID)
	assert.Nil(t, entry.GuestName)
	assert.False(t, entry.IsGuest(""))

	entry.SetInterval(interval(t, 11, 14))
	assert.Equal(t, interval(t, 11, 14), entry.Interval())
}

func TestNewEntries_UniqueIDs(t *testing.T) {
	a := model.NewBlock("p1", interval(t, 1, 1), "owner", time.Now())
	b := model.NewBlock("p1", interval(t, 1, 1), "owner", time.Now())

	require.NotEqual(t, a.ID, b.ID)
}

func TestEntry_Clone(t *testing.T) {
	original := model.NewBooking("p1", "g1", interval(t, 1, 2), model.GuestInfo{Name: "Ana"}, "g1", time.Now())

	clone := original.Clone()
	*clone.GuestName = "Bea"

	assert.Equal(t, "Ana", model.Value(original.GuestName))
	assert.Equal(t, original.ID, clone.ID)
}
