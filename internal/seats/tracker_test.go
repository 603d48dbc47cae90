package seats_test

import (
	"testing"

	"github.com/mkrogh/pokernight/internal/seats"
	"github.com/stretchr/testify/assert"
)

func TestInitializeFromAssignedSeats(t *testing.T) {
	tracker := seats.NewTracker()
	tracker.Initialize([]int{2, 5, 1, 0, -3})

	assert.Equal(t, []int{3, 4}, tracker.SkippedSeats())
	assert.Equal(t, 6, tracker.NextSeat())
	assert.Equal(t, 6, tracker.SelectedSeat())
}

func TestInitializeEmpty(t *testing.T) {
	tracker := seats.NewTracker()
	tracker.Initialize(nil)

	assert.Empty(t, tracker.SkippedSeats())
	assert.Equal(t, 1, tracker.NextSeat())
}

func TestSkipAndConsume(t *testing.T) {
	tracker := seats.NewTracker()

	assert.Equal(t, 1, tracker.ConsumeSelected())
	assert.Equal(t, 2, tracker.ConsumeSelected())

	tracker.Skip() // seat 3 left empty
	assert.Equal(t, []int{3}, tracker.SkippedSeats())
	assert.Equal(t, 4, tracker.ConsumeSelected())

	// Reclaim the skipped seat.
	tracker.Select(3)
	assert.Equal(t, 3, tracker.ConsumeSelected())
	assert.Empty(t, tracker.SkippedSeats())

	// Cursor did not move while reclaiming.
	assert.Equal(t, 5, tracker.NextSeat())
	assert.Equal(t, 5, tracker.ConsumeSelected())
}

func TestReset(t *testing.T) {
	tracker := seats.NewTracker()
	tracker.Initialize([]int{1, 2, 4})
	tracker.Reset()

	assert.Empty(t, tracker.SkippedSeats())
	assert.Equal(t, 1, tracker.NextSeat())
	assert.Equal(t, 1, tracker.SelectedSeat())
}
