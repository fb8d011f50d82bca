package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFixture() (Snapshot, Event, Event) {
	a := Event{ID: uuid.New(), Name: "A", StartDate: now, Attendees: 3}
	b := Event{ID: uuid.New(), Name: "B", StartDate: now.Add(time.Hour), Attendees: 0}
	return NewSnapshot([]Event{a, b}), a, b
}

func TestNewSnapshot_SeedsAttendance(t *testing.T) {
	snap, a, b := snapshotFixture()
	assert.Equal(t, 3, snap.Attendance[a.ID])
	assert.Equal(t, 0, snap.Attendance[b.ID])
}

func TestApplyCreate(t *testing.T) {
	snap, _, _ := snapshotFixture()
	c := Event{ID: uuid.New(), Name: "C", Attendees: 1}

	next := snap.ApplyCreate(c)

	assert.Len(t, next.Events, 3)
	assert.Equal(t, 1, next.Attendance[c.ID])
	assert.Len(t, snap.Events, 2, "original snapshot untouched")
}

func TestApplyUpdate(t *testing.T) {
	snap, a, _ := snapshotFixture()

	changed := a
	changed.Name = "A renamed"
	next := snap.ApplyUpdate(changed)

	assert.Equal(t, "A renamed", next.Events[0].Name)
	assert.Equal(t, "A", snap.Events[0].Name, "original snapshot untouched")
}

func TestApplyUpdate_UnknownIDIsNoop(t *testing.T) {
	snap, _, _ := snapshotFixture()
	next := snap.ApplyUpdate(Event{ID: uuid.New(), Name: "ghost"})
	assert.Len(t, next.Events, 2)
}

func TestApplyDelete_DropsRecordAndCounter(t *testing.T) {
	snap, a, b := snapshotFixture()

	next := snap.ApplyDelete(a.ID)

	require.Len(t, next.Events, 1)
	assert.Equal(t, b.ID, next.Events[0].ID)
	_, exists := next.Attendance[a.ID]
	assert.False(t, exists, "attendance counter removed with the record")

	assert.Len(t, snap.Events, 2, "original snapshot untouched")
	assert.Contains(t, snap.Attendance, a.ID)
}

func TestApplyAttend(t *testing.T) {
	snap, a, _ := snapshotFixture()

	next := snap.ApplyAttend(a.ID)
	assert.Equal(t, 4, next.Attendance[a.ID])
	assert.Equal(t, 3, snap.Attendance[a.ID], "original snapshot untouched")

	again := next.ApplyAttend(a.ID)
	assert.Equal(t, 5, again.Attendance[a.ID])
}

func TestAttendeesFor_FallsBackToStoredCount(t *testing.T) {
	snap, a, _ := snapshotFixture()
	assert.Equal(t, 3, snap.AttendeesFor(&a))

	outsider := Event{ID: uuid.New(), Attendees: 7}
	assert.Equal(t, 7, snap.AttendeesFor(&outsider))
}
