package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		s1, e1   int
		s2, e2   int
		expected bool
	}{
		{"touching boundary", 1, 4, 4, 6, false},
		{"touching boundary reversed", 4, 6, 1, 4, false},
		{"partial overlap", 1, 5, 4, 6, true},
		{"contained", 1, 10, 3, 4, true},
		{"containing", 3, 4, 1, 10, true},
		{"disjoint", 1, 2, 5, 6, false},
		{"same interval", 1, 4, 1, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(date(2024, 6, tt.s1), date(2024, 6, tt.e1), date(2024, 6, tt.s2), date(2024, 6, tt.e2))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFindConflicts(t *testing.T) {
	bookings := []*domain.Booking{
		{ID: "confirmed", Status: domain.StatusConfirmed, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 4)},
		{ID: "active", Status: domain.StatusActive, StartDate: date(2024, 6, 5), EndDate: date(2024, 6, 8)},
		{ID: "cancelled", Status: domain.StatusCancelled, StartDate: date(2024, 6, 2), EndDate: date(2024, 6, 6)},
		{ID: "pending", Status: domain.StatusPending, StartDate: date(2024, 6, 2), EndDate: date(2024, 6, 6)},
	}

	conflicts := FindConflicts(bookings, date(2024, 6, 3), date(2024, 6, 6), "")
	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"confirmed", "active"}, ids)

	assert.Empty(t, FindConflicts(bookings, date(2024, 6, 4), date(2024, 6, 5), ""))
	assert.Len(t, FindConflicts(bookings, date(2024, 6, 3), date(2024, 6, 4), "confirmed"), 0)
}
