package model

import (
	"encoding/json"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const MaxDescriptionLength = 1000

// Event is the canonical in-memory record. Tags are always the normalized
// slice form here; the ambiguous stored shapes never leak past the
// repository scan boundary.
type Event struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Location    string     `json:"location" db:"location"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" db:"end_date"`
	Tags        []string   `json:"tags" db:"tags"`
	ImgSrc      string     `json:"img_src" db:"img_src"`
	Link        string     `json:"link" db:"link"`
	Attendees   int        `json:"attendees" db:"attendees"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// EffectiveEnd is the end instant if present, else the start instant.
func (e *Event) EffectiveEnd() time.Time {
	if e.EndDate != nil {
		return *e.EndDate
	}
	return e.StartDate
}

// NormalizeTags converts the heterogeneous stored representations of tags
// into the canonical slice form:
//   - []string passes through (cleaned)
//   - a string is tried as a JSON-encoded list first; if that fails or
//     yields a non-list, it is split on commas
//
// Entries are trimmed and empties dropped. Idempotent.
func NormalizeTags(raw interface{}) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return cleanTags(v)
	case []byte:
		return NormalizeTags(string(v))
	case string:
		var decoded []string
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			return cleanTags(decoded)
		}
		return cleanTags(strings.Split(v, ","))
	default:
		return []string{}
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// EncodeTags is the single stored representation for new writes (JSON list).
func EncodeTags(tags []string) string {
	data, err := json.Marshal(cleanTags(tags))
	if err != nil {
		return "[]"
	}
	return string(data)
}

// ImageUpload is a pending binary image payload attached to a create/update.
type ImageUpload struct {
	Data     []byte
	Filename string
}

// CreateEventRequest - POST /v1/admin/events
// Tags arrive as the comma-separated form field; normalized before write.
type CreateEventRequest struct {
	Name        string     `json:"name" form:"name"`
	Description string     `json:"description" form:"description"`
	Location    string     `json:"location" form:"location"`
	StartDate   time.Time  `json:"start_date" form:"-"`
	EndDate     *time.Time `json:"end_date,omitempty" form:"-"`
	Tags        string     `json:"tags" form:"tags"`
	Link        string     `json:"link" form:"link"`
	ImgSrc      string     `json:"img_src" form:"img_src"` // pre-existing external URL, optional
}

func (r CreateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("event name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Location,
			validation.Required.Error("event location is required"),
		),
		validation.Field(&r.Description,
			validation.Length(0, MaxDescriptionLength).Error("description exceeds 1000 characters"),
		),
		validation.Field(&r.StartDate,
			validation.Required.Error("event start date is required"),
		),
	)
}

// UpdateEventRequest - PUT /v1/admin/events/:id
// Full replace of mutable fields. RemoveImage marks the existing image for
// removal; it is ignored when a new upload is attached.
type UpdateEventRequest struct {
	Name        string     `json:"name" form:"name"`
	Description string     `json:"description" form:"description"`
	Location    string     `json:"location" form:"location"`
	StartDate   time.Time  `json:"start_date" form:"-"`
	EndDate     *time.Time `json:"end_date,omitempty" form:"-"`
	Tags        string     `json:"tags" form:"tags"`
	Link        string     `json:"link" form:"link"`
	RemoveImage bool       `json:"remove_image" form:"remove_image"`
}

func (r UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("event name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Location,
			validation.Required.Error("event location is required"),
		),
		validation.Field(&r.Description,
			validation.Length(0, MaxDescriptionLength).Error("description exceeds 1000 characters"),
		),
		validation.Field(&r.StartDate,
			validation.Required.Error("event start date is required"),
		),
	)
}

// EventResponse carries the record plus the derived schedule fields the
// cards render. Status/TimeLeft are computed per request against "now".
type EventResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Tags        []string   `json:"tags"`
	ImgSrc      string     `json:"img_src,omitempty"`
	Link        string     `json:"link,omitempty"`
	Attendees   int        `json:"attendees"`
	Status      Status     `json:"status"`
	TimeLeft    string     `json:"time_left"`
}

// ToResponse derives the presentation fields for one event at "now".
// The attendee count comes from the snapshot, which may be ahead of the
// stored record after an optimistic increment.
func (e *Event) ToResponse(now time.Time, attendees int) EventResponse {
	status := Classify(e, now)
	return EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Tags:        e.Tags,
		ImgSrc:      e.ImgSrc,
		Link:        e.Link,
		Attendees:   attendees,
		Status:      status,
		TimeLeft:    TimeString(e, status, now),
	}
}
