package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"artplatform-backend/internal/domains/event"
	"artplatform-backend/internal/domains/event/model"
	"artplatform-backend/pkg/cache"
)

const (
	cacheKeyList   = "events:list"
	cacheKeyDetail = "events:detail:%s"
	cacheTTL       = 5 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a new PostgreSQL event repository
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const eventColumns = `id, name, description, location, start_date, end_date, tags, img_src, link, attendees, created_at, updated_at`

// scanEvent maps one row into the canonical record. Tags normalization
// happens here: stored values may be JSON lists or legacy comma strings,
// and nothing past this point sees the raw form.
func scanEvent(row pgx.Row) (*model.Event, error) {
	var (
		e       model.Event
		rawTags *string
		imgSrc  *string
		link    *string
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Location,
		&e.StartDate, &e.EndDate, &rawTags, &imgSrc, &link,
		&e.Attendees, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rawTags != nil {
		e.Tags = model.NormalizeTags(*rawTags)
	} else {
		e.Tags = []string{}
	}
	if imgSrc != nil {
		e.ImgSrc = *imgSrc
	}
	if link != nil {
		e.Link = *link
	}
	return &e, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Event, error) {
	var cached []model.Event
	if found, err := r.cache.Get(ctx, cacheKeyList, &cached); err == nil && found {
		return cached, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY start_date ASC`, eventColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKeyList, events, cacheTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache event list")
	}
	return events, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	key := fmt.Sprintf(cacheKeyDetail, id)
	var cached model.Event
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	e, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if err := r.cache.Set(ctx, key, e, cacheTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache event")
	}
	return e, nil
}

func (r *postgresRepository) Create(ctx context.Context, e *model.Event) (*model.Event, error) {
	query := fmt.Sprintf(`
		INSERT INTO events (name, description, location, start_date, end_date, tags, img_src, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, eventColumns)

	created, err := scanEvent(r.pool.QueryRow(ctx, query,
		e.Name, e.Description, e.Location, e.StartDate, e.EndDate,
		model.EncodeTags(e.Tags), nullable(e.ImgSrc), nullable(e.Link),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	r.invalidate(ctx, created.ID)
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, e *model.Event) (*model.Event, error) {
	query := fmt.Sprintf(`
		UPDATE events
		SET name = $2, description = $3, location = $4, start_date = $5,
		    end_date = $6, tags = $7, img_src = $8, link = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, eventColumns)

	updated, err := scanEvent(r.pool.QueryRow(ctx, query,
		e.ID, e.Name, e.Description, e.Location, e.StartDate, e.EndDate,
		model.EncodeTags(e.Tags), nullable(e.ImgSrc), nullable(e.Link),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	r.invalidate(ctx, e.ID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return event.ErrEventNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) IncrementAttendees(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`UPDATE events SET attendees = attendees + 1 WHERE id = $1 RETURNING attendees`, id,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, event.ErrEventNotFound
		}
		return 0, fmt.Errorf("failed to increment attendees: %w", err)
	}

	r.invalidate(ctx, id)
	return count, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKeyList, fmt.Sprintf(cacheKeyDetail, id)); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate event cache")
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
