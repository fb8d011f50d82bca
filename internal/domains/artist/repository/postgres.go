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

	"artplatform-backend/internal/domains/artist"
	"artplatform-backend/internal/domains/artist/model"
	"artplatform-backend/pkg/cache"
)

const (
	cacheKeyList   = "artists:list"
	cacheKeyDetail = "artists:detail:%s"
	cacheTTL       = 10 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a new PostgreSQL artist repository
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const artistColumns = `id, name, bio, portrait_src, website, email, twitter, linkedin, instagram, facebook, youtube, created_at, updated_at`

func scanArtist(row pgx.Row) (*model.Artist, error) {
	var a model.Artist
	err := row.Scan(
		&a.ID, &a.Name, &a.Bio, &a.PortraitSrc, &a.Website, &a.Email,
		&a.Twitter, &a.LinkedIn, &a.Instagram, &a.Facebook, &a.YouTube,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) List(ctx context.Context, search string) ([]model.Artist, error) {
	// Only the unfiltered listing is cached; searches go straight through
	if search == "" {
		var cached []model.Artist
		if found, err := r.cache.Get(ctx, cacheKeyList, &cached); err == nil && found {
			return cached, nil
		}
	}

	query := fmt.Sprintf(`SELECT %s FROM artists`, artistColumns)
	args := []interface{}{}
	if search != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	defer rows.Close()

	artists := make([]model.Artist, 0)
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read artists: %w", err)
	}

	if search == "" {
		if err := r.cache.Set(ctx, cacheKeyList, artists, cacheTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to cache artist list")
		}
	}
	return artists, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Artist, error) {
	key := fmt.Sprintf(cacheKeyDetail, id)
	var cached model.Artist
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM artists WHERE id = $1`, artistColumns)
	a, err := scanArtist(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, artist.ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}

	if err := r.cache.Set(ctx, key, a, cacheTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache artist")
	}
	return a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Artist) (*model.Artist, error) {
	query := fmt.Sprintf(`
		INSERT INTO artists (name, bio, portrait_src, website, email, twitter, linkedin, instagram, facebook, youtube)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, artistColumns)

	created, err := scanArtist(r.pool.QueryRow(ctx, query,
		a.Name, a.Bio, a.PortraitSrc, a.Website, a.Email,
		a.Twitter, a.LinkedIn, a.Instagram, a.Facebook, a.YouTube,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}

	r.invalidate(ctx, created.ID)
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Artist) (*model.Artist, error) {
	query := fmt.Sprintf(`
		UPDATE artists
		SET name = $2, bio = $3, portrait_src = $4, website = $5, email = $6,
		    twitter = $7, linkedin = $8, instagram = $9, facebook = $10,
		    youtube = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, artistColumns)

	updated, err := scanArtist(r.pool.QueryRow(ctx, query,
		a.ID, a.Name, a.Bio, a.PortraitSrc, a.Website, a.Email,
		a.Twitter, a.LinkedIn, a.Instagram, a.Facebook, a.YouTube,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, artist.ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to update artist: %w", err)
	}

	r.invalidate(ctx, a.ID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return artist.ErrArtistNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKeyList, fmt.Sprintf(cacheKeyDetail, id)); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate artist cache")
	}
}
