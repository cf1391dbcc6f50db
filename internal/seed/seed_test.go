package seed_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/seed"
	"github.com/pkordes/guestdesk/internal/store"
)

var now = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func TestData_LoadsIntoStore(t *testing.T) {
	s, err := store.New(seed.Data(now))
	require.NoError(t, err)
	require.NoError(t, s.Verify())

	assert.Len(t, s.Users(), 5)
	assert.Len(t, s.Guests(), 15)
	assert.Len(t, s.Dorms(), 6)
	assert.NotEmpty(t, s.Updates())
}

func TestData_OccupancyMatchesAssignments(t *testing.T) {
	data := seed.Data(now)
	counts := map[string]int{}
	for _, g := range data.Guests {
		if g.DormID != "" {
			counts[g.DormID]++
		}
	}
	for _, d := range data.Dorms {
		assert.Equal(t, counts[d.ID], d.OccupiedBeds, d.ID)
	}
}

func TestData_Deterministic(t *testing.T) {
	a, b := seed.Data(now), seed.Data(now)
	assert.Equal(t, a, b)
}

func TestData_ReturnsFreshSlices(t *testing.T) {
	a := seed.Data(now)
	a.Guests[0].AssignedVolunteers[0] = "changed"
	a.Dorms[0].Guests[0] = "changed"
	b := seed.Data(now)
	assert.Equal(t, "usr1", b.Guests[0].AssignedVolunteers[0])
	assert.Equal(t, "guest1", b.Dorms[0].Guests[0])
}

func TestData_CheckedInGuestsHaveCheckInHistory(t *testing.T) {
	s, err := store.New(seed.Data(now))
	require.NoError(t, err)

	for _, g := range s.Guests() {
		if g.Status != domain.StatusCheckedIn {
			continue
		}
		require.NotNil(t, g.CheckInTime, g.ID)
		var found bool
		for _, u := range s.UpdatesForEntity(g.ID) {
			if u.UpdateType == domain.UpdateCheckIn {
				found = true
			}
		}
		assert.True(t, found, "guest %s has no Check In record", g.ID)
	}
}

func TestData_UsersHaveUniqueEmails(t *testing.T) {
	seen := map[string]bool{}
	for _, u := range seed.Data(now).Users {
		assert.NotEmpty(t, u.Email)
		assert.False(t, seen[u.Email], u.Email)
		seen[u.Email] = true
	}
}
