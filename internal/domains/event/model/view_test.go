package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureEvents(now time.Time) []Event {
	return []Event{
		{
			ID:        uuid.New(),
			Name:      "Jazz Night",
			Tags:      []string{"music", "evening"},
			StartDate: now.Add(48 * time.Hour),
		},
		{
			ID:        uuid.New(),
			Name:      "Sculpture Workshop",
			Tags:      []string{"workshop"},
			StartDate: now.Add(-72 * time.Hour),
			EndDate:   ptr(now.Add(-48 * time.Hour)),
		},
		{
			ID:        uuid.New(),
			Name:      "Open Studio",
			Tags:      []string{"live music"},
			StartDate: now.Add(-time.Hour),
			EndDate:   ptr(now.Add(time.Hour)),
		},
		{
			ID:        uuid.New(),
			Name:      "Print Fair",
			Tags:      []string{},
			StartDate: now.Add(24 * time.Hour),
		},
	}
}

func names(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Name
	}
	return out
}

func TestApplyView_StatusFilter(t *testing.T) {
	events := fixtureEvents(now)

	t.Run("all includes live", func(t *testing.T) {
		got := ApplyView(events, View{Status: FilterAll}, now)
		assert.Len(t, got, 4)
	})

	t.Run("upcoming excludes live and past", func(t *testing.T) {
		got := ApplyView(events, View{Status: FilterUpcoming}, now)
		assert.Equal(t, []string{"Print Fair", "Jazz Night"}, names(got))
	})

	t.Run("past excludes live and upcoming", func(t *testing.T) {
		got := ApplyView(events, View{Status: FilterPast}, now)
		assert.Equal(t, []string{"Sculpture Workshop"}, names(got))
	})
}

func TestApplyView_Search(t *testing.T) {
	events := fixtureEvents(now)

	t.Run("matches name case-insensitively", func(t *testing.T) {
		got := ApplyView(events, View{Status: FilterAll, Search: "JAZZ"}, now)
		assert.Equal(t, []string{"Jazz Night"}, names(got))
	})

	t.Run("matches tags", func(t *testing.T) {
		got := ApplyView(events, View{Status: FilterAll, Search: "music"}, now)
		assert.Equal(t, []string{"Open Studio", "Jazz Night"}, names(got))
	})

	t.Run("combines with status filter", func(t *testing.T) {
		got := ApplyView(events, View{Status: FilterUpcoming, Search: "music"}, now)
		assert.Equal(t, []string{"Jazz Night"}, names(got))
	})

	t.Run("no match yields empty, not nil error", func(t *testing.T) {
		got := ApplyView(events, View{Status: FilterAll, Search: "pottery"}, now)
		assert.Empty(t, got)
	})
}

func TestApplyView_SortsByStartAscending(t *testing.T) {
	events := fixtureEvents(now)
	got := ApplyView(events, View{Status: FilterAll}, now)

	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].StartDate.Before(got[i-1].StartDate))
	}
}

func TestApplyView_StableForEqualStarts(t *testing.T) {
	start := now.Add(time.Hour)
	events := []Event{
		{ID: uuid.New(), Name: "First", StartDate: start},
		{ID: uuid.New(), Name: "Second", StartDate: start},
		{ID: uuid.New(), Name: "Third", StartDate: start},
	}

	got := ApplyView(events, View{Status: FilterAll}, now)
	assert.Equal(t, []string{"First", "Second", "Third"}, names(got))
}

func TestApplyView_DoesNotMutateInput(t *testing.T) {
	events := []Event{
		{Name: "B", StartDate: now.Add(2 * time.Hour)},
		{Name: "A", StartDate: now.Add(time.Hour)},
	}

	ApplyView(events, View{Status: FilterAll}, now)
	assert.Equal(t, "B", events[0].Name)
}

func TestParseStatusFilter(t *testing.T) {
	assert.Equal(t, FilterUpcoming, ParseStatusFilter("upcoming"))
	assert.Equal(t, FilterPast, ParseStatusFilter(" Past "))
	assert.Equal(t, FilterAll, ParseStatusFilter("all"))
	assert.Equal(t, FilterAll, ParseStatusFilter(""))
	assert.Equal(t, FilterAll, ParseStatusFilter("nonsense"))
}
