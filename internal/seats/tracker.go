package seats

import (
	"sort"
	"sync"
)

// Tracker hands out table seat numbers while players are added to a session.
// Seats can be skipped (left empty for now) and reclaimed later; consuming a
// seat advances the cursor past it. Seat numbers start at 1.
type Tracker struct {
	mu       sync.Mutex
	skipped  []int
	next     int
	selected int
}

// NewTracker creates a tracker with no seats assigned yet.
func NewTracker() *Tracker {
	return &Tracker{next: 1, selected: 1}
}

// Reset returns the tracker to its initial state.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.skipped = nil
	t.next = 1
	t.selected = 1
}

// Initialize derives the skipped seats and the next free seat from the set of
// already assigned seat numbers. Non-positive entries are ignored.
func (t *Tracker) Initialize(assignedSeats []int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seats := make([]int, 0, len(assignedSeats))
	for _, seat := range assignedSeats {
		if seat > 0 {
			seats = append(seats, seat)
		}
	}
	sort.Ints(seats)

	t.skipped = nil
	if len(seats) == 0 {
		t.next = 1
		t.selected = 1
		return
	}

	maxSeat := seats[len(seats)-1]
	taken := make(map[int]bool, len(seats))
	for _, seat := range seats {
		taken[seat] = true
	}
	for seat := 1; seat <= maxSeat; seat++ {
		if !taken[seat] {
			t.skipped = append(t.skipped, seat)
		}
	}
	t.next = maxSeat + 1
	t.selected = t.next
}

// Skip marks the current next seat as skipped and moves on.
func (t *Tracker) Skip() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !contains(t.skipped, t.next) {
		t.skipped = append(t.skipped, t.next)
		sort.Ints(t.skipped)
	}
	t.next++
	t.selected = t.next
}

// Select chooses the seat the next consume will hand out.
func (t *Tracker) Select(seat int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = seat
}

// ConsumeSelected assigns the selected seat and returns it. A previously
// skipped seat is reclaimed; the cursor only advances when the fresh next
// seat was consumed.
func (t *Tracker) ConsumeSelected() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	consumed := t.selected
	if idx := indexOf(t.skipped, consumed); idx >= 0 {
		t.skipped = append(t.skipped[:idx], t.skipped[idx+1:]...)
	} else if consumed == t.next {
		t.next++
	}
	t.selected = t.next
	return consumed
}

// SkippedSeats returns the currently skipped seats in ascending order.
func (t *Tracker) SkippedSeats() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]int, len(t.skipped))
	copy(out, t.skipped)
	return out
}

// NextSeat returns the next fresh seat number.
func (t *Tracker) NextSeat() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next
}

// SelectedSeat returns the seat the next consume will hand out.
func (t *Tracker) SelectedSeat() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

func contains(seats []int, seat int) bool {
	return indexOf(seats, seat) >= 0
}

func indexOf(seats []int, seat int) int {
	for i, s := range seats {
		if s == seat {
			return i
		}
	}
	return -1
}
