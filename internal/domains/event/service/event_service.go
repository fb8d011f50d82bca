package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"artplatform-backend/internal/domains/event"
	"artplatform-backend/internal/domains/event/model"
	"artplatform-backend/internal/domains/event/repository"
	"artplatform-backend/internal/infrastructure/storage"
	"artplatform-backend/internal/shared"
	"artplatform-backend/internal/shared/utils"
)

const (
	eventImageFolder = "events"

	// How long an in-process snapshot serves listings before the next
	// request reloads from the repository. Matches the public page's
	// refresh cadence.
	snapshotTTL = 60 * time.Second
)

type eventService struct {
	repo      repository.RepositoryInterface
	storage   storage.ObjectStorage
	processor *storage.ImageProcessor
	tasks     *asynq.Client

	mu         sync.RWMutex
	snapshot   *model.Snapshot
	snapshotAt time.Time
}

// NewEventService creates a new event service. tasks may be nil when no
// background queue is configured; storage cleanup is then skipped.
func NewEventService(
	repo repository.RepositoryInterface,
	objectStorage storage.ObjectStorage,
	processor *storage.ImageProcessor,
	tasks *asynq.Client,
) ServiceInterface {
	return &eventService{
		repo:      repo,
		storage:   objectStorage,
		processor: processor,
		tasks:     tasks,
	}
}

// ===== Listing =====

func (s *eventService) ListEvents(ctx context.Context, view model.View) ([]model.EventResponse, error) {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	visible := model.ApplyView(snap.Events, view, now)

	responses := make([]model.EventResponse, 0, len(visible))
	for i := range visible {
		e := visible[i]
		responses = append(responses, *toResponse(&e, now, snap.AttendeesFor(&e)))
	}
	return responses, nil
}

func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*model.EventResponse, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return toResponse(e, time.Now(), snap.AttendeesFor(e)), nil
}

// ===== Mutations =====

// CreateEvent runs the full mutation sequence: validate locally, upload
// the image if one is attached, then write the record. An upload failure
// aborts before any database write happens.
func (s *eventService) CreateEvent(ctx context.Context, req model.CreateEventRequest, image *model.ImageUpload) (*model.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := validateSchedule(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	imgSrc := strings.TrimSpace(req.ImgSrc)
	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		imgSrc = url
	}

	e := &model.Event{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Tags:        model.NormalizeTags(req.Tags),
		ImgSrc:      imgSrc,
		Link:        utils.EnsureScheme(req.Link),
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}

	s.mutateSnapshot(func(snap model.Snapshot) model.Snapshot {
		return snap.ApplyCreate(*created)
	})

	log.Info().Str("event_id", created.ID.String()).Str("name", created.Name).Msg("Event created")
	return toResponse(created, time.Now(), created.Attendees), nil
}

// UpdateEvent replaces the mutable fields of an event. A new upload wins
// over RemoveImage; a replaced or removed image that lives in our bucket
// is cleaned up in the background.
func (s *eventService) UpdateEvent(ctx context.Context, id uuid.UUID, req model.UpdateEventRequest, image *model.ImageUpload) (*model.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := validateSchedule(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imgSrc := existing.ImgSrc
	switch {
	case image != nil:
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		imgSrc = url
	case req.RemoveImage:
		imgSrc = ""
	}

	e := &model.Event{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Tags:        model.NormalizeTags(req.Tags),
		ImgSrc:      imgSrc,
		Link:        utils.EnsureScheme(req.Link),
	}

	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, err
	}

	s.mutateSnapshot(func(snap model.Snapshot) model.Snapshot {
		return snap.ApplyUpdate(*updated)
	})

	if existing.ImgSrc != "" && existing.ImgSrc != updated.ImgSrc {
		s.enqueueImageCleanup(ctx, existing.ImgSrc)
	}

	log.Info().Str("event_id", id.String()).Msg("Event updated")
	return toResponse(updated, time.Now(), updated.Attendees), nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.mutateSnapshot(func(snap model.Snapshot) model.Snapshot {
		return snap.ApplyDelete(id)
	})

	if existing.ImgSrc != "" {
		s.enqueueImageCleanup(ctx, existing.ImgSrc)
	}

	log.Info().Str("event_id", id.String()).Msg("Event deleted")
	return nil
}

// Attend bumps the attendance counter. The local snapshot is incremented
// first so the new count shows immediately; a failed persist is logged but
// never rolled back, the next reload reconciles.
func (s *eventService) Attend(ctx context.Context, id uuid.UUID) (int, error) {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	found := false
	for i := range snap.Events {
		if snap.Events[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return 0, err
		}
	}

	var local int
	s.mutateSnapshot(func(snap model.Snapshot) model.Snapshot {
		next := snap.ApplyAttend(id)
		local = next.Attendance[id]
		return next
	})

	if _, err := s.repo.IncrementAttendees(ctx, id); err != nil {
		log.Warn().Err(err).Str("event_id", id.String()).Msg("Failed to persist attendance")
	}
	return local, nil
}

// ===== Export =====

// ExportEvents builds an Excel workbook with one row per event, ordered by
// start date, including the derived status at export time.
func (s *eventService) ExportEvents(ctx context.Context) (*excelize.File, error) {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	events := model.ApplyView(snap.Events, model.View{Status: model.FilterAll}, now)

	f := excelize.NewFile()
	sheet := "Events"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Name", "Location", "Start", "End", "Status", "Attendees", "Tags", "Link"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, e := range events {
		end := ""
		if e.EndDate != nil {
			end = e.EndDate.Format(time.RFC3339)
		}
		values := []interface{}{
			e.Name,
			e.Location,
			e.StartDate.Format(time.RFC3339),
			end,
			string(model.Classify(&e, now)),
			snap.AttendeesFor(&e),
			strings.Join(e.Tags, ", "),
			e.Link,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f, nil
}

// ===== Internals =====

func validateSchedule(start time.Time, end *time.Time) error {
	if start.IsZero() {
		return event.ErrStartRequired
	}
	if end != nil && end.Before(start) {
		return event.ErrEndBeforeStart
	}
	return nil
}

func (s *eventService) uploadImage(ctx context.Context, image *model.ImageUpload) (string, error) {
	if err := s.processor.ValidateImage(image.Data); err != nil {
		return "", err
	}
	key := storage.ObjectKey(eventImageFolder, image.Filename)
	url, err := s.storage.Upload(ctx, key, image.Data, s.processor.ContentType(image.Data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", event.ErrUploadFailed, err)
	}
	return url, nil
}

// currentSnapshot returns the live snapshot, reloading from the repository
// when none exists yet or the current one has aged out.
func (s *eventService) currentSnapshot(ctx context.Context) (model.Snapshot, error) {
	s.mu.RLock()
	if s.snapshot != nil && time.Since(s.snapshotAt) < snapshotTTL {
		snap := *s.snapshot
		s.mu.RUnlock()
		return snap, nil
	}
	s.mu.RUnlock()

	events, err := s.repo.List(ctx)
	if err != nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		// Serve the stale snapshot rather than nothing when a reload fails
		if s.snapshot != nil {
			return *s.snapshot, nil
		}
		return model.Snapshot{}, err
	}

	snap := model.NewSnapshot(events)
	s.mu.Lock()
	s.snapshot = &snap
	s.snapshotAt = time.Now()
	s.mu.Unlock()
	return snap, nil
}

func (s *eventService) mutateSnapshot(apply func(model.Snapshot) model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return
	}
	next := apply(*s.snapshot)
	s.snapshot = &next
}

// enqueueImageCleanup schedules deletion of an object we own. External
// URLs (no key in our bucket) are left alone.
func (s *eventService) enqueueImageCleanup(ctx context.Context, url string) {
	if s.tasks == nil {
		return
	}
	key := s.storage.KeyFromURL(url)
	if key == "" {
		return
	}

	payload, err := json.Marshal(shared.DeleteStorageObjectPayload{Key: key})
	if err != nil {
		return
	}
	task := asynq.NewTask(shared.TypeDeleteStorageObject, payload)
	if _, err := s.tasks.EnqueueContext(ctx, task, asynq.Queue(shared.QueueStorage), asynq.MaxRetry(5)); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to enqueue storage cleanup")
	}
}

func toResponse(e *model.Event, now time.Time, attendees int) *model.EventResponse {
	resp := e.ToResponse(now, attendees)
	return &resp
}
