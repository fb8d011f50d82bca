package model

import "github.com/google/uuid"

// Snapshot is the in-process view of the event list that mutations are
// applied to without a full reload. Attendance counts live beside the
// records so optimistic increments survive until the next reload.
//
// All reducers are pure: they return a new snapshot and never touch the
// receiver, so concurrent readers holding the old value stay consistent.
type Snapshot struct {
	Events     []Event
	Attendance map[uuid.UUID]int
}

// NewSnapshot builds a snapshot from freshly loaded records, seeding the
// attendance counters from the stored counts.
func NewSnapshot(events []Event) Snapshot {
	s := Snapshot{
		Events:     make([]Event, len(events)),
		Attendance: make(map[uuid.UUID]int, len(events)),
	}
	copy(s.Events, events)
	for i := range events {
		s.Attendance[events[i].ID] = events[i].Attendees
	}
	return s
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Events:     make([]Event, len(s.Events)),
		Attendance: make(map[uuid.UUID]int, len(s.Attendance)),
	}
	copy(out.Events, s.Events)
	for id, n := range s.Attendance {
		out.Attendance[id] = n
	}
	return out
}

// ApplyCreate appends a newly persisted event.
func (s Snapshot) ApplyCreate(e Event) Snapshot {
	out := s.clone()
	out.Events = append(out.Events, e)
	out.Attendance[e.ID] = e.Attendees
	return out
}

// ApplyUpdate replaces the matching record in place. Unknown ids are a
// no-op rather than an insert: the authoritative list will pick the record
// up on the next reload.
func (s Snapshot) ApplyUpdate(e Event) Snapshot {
	out := s.clone()
	for i := range out.Events {
		if out.Events[i].ID == e.ID {
			out.Events[i] = e
			break
		}
	}
	return out
}

// ApplyDelete removes the record and its attendance counter.
func (s Snapshot) ApplyDelete(id uuid.UUID) Snapshot {
	out := Snapshot{
		Events:     make([]Event, 0, len(s.Events)),
		Attendance: make(map[uuid.UUID]int, len(s.Attendance)),
	}
	for i := range s.Events {
		if s.Events[i].ID != id {
			out.Events = append(out.Events, s.Events[i])
		}
	}
	for eid, n := range s.Attendance {
		if eid != id {
			out.Attendance[eid] = n
		}
	}
	return out
}

// ApplyAttend bumps the local counter optimistically. Unknown ids start
// from the stored count of zero.
func (s Snapshot) ApplyAttend(id uuid.UUID) Snapshot {
	out := s.clone()
	out.Attendance[id]++
	return out
}

// AttendeesFor reads the local counter, falling back to the record's own
// stored count when no counter exists.
func (s Snapshot) AttendeesFor(e *Event) int {
	if n, ok := s.Attendance[e.ID]; ok {
		return n
	}
	return e.Attendees
}
