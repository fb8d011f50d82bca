package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"artplatform-backend/internal/domains/artwork"
	"artplatform-backend/internal/domains/artwork/model"
	"artplatform-backend/pkg/cache"
)

const (
	cacheKeyList   = "artworks:list"
	cacheKeyDetail = "artworks:detail:%s"
	cacheTTL       = 10 * time.Minute

	pgForeignKeyViolation = "23503"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a new PostgreSQL artwork repository
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// Listings join the artist name in so gallery cards render without a
// second query.
const artworkSelect = `
	SELECT w.id, w.title, w.on_sale, w.price, w.img_src, w.artist_id, a.name,
	       w.created_at, w.updated_at
	FROM artworks w
	LEFT JOIN artists a ON a.id = w.artist_id`

func scanArtwork(row pgx.Row) (*model.Artwork, error) {
	var (
		w      model.Artwork
		imgSrc *string
	)
	err := row.Scan(
		&w.ID, &w.Title, &w.OnSale, &w.Price, &imgSrc, &w.ArtistID,
		&w.ArtistName, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if imgSrc != nil {
		w.ImgSrc = *imgSrc
	}
	return &w, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Artwork, error) {
	var cached []model.Artwork
	if found, err := r.cache.Get(ctx, cacheKeyList, &cached); err == nil && found {
		return cached, nil
	}

	rows, err := r.pool.Query(ctx, artworkSelect+` ORDER BY w.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list artworks: %w", err)
	}
	defer rows.Close()

	artworks, err := collect(rows)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKeyList, artworks, cacheTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache artwork list")
	}
	return artworks, nil
}

func (r *postgresRepository) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]model.Artwork, error) {
	rows, err := r.pool.Query(ctx, artworkSelect+` WHERE w.artist_id = $1 ORDER BY w.created_at DESC`, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list artworks by artist: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]model.Artwork, error) {
	artworks := make([]model.Artwork, 0)
	for rows.Next() {
		w, err := scanArtwork(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artwork: %w", err)
		}
		artworks = append(artworks, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read artworks: %w", err)
	}
	return artworks, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Artwork, error) {
	key := fmt.Sprintf(cacheKeyDetail, id)
	var cached model.Artwork
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	w, err := scanArtwork(r.pool.QueryRow(ctx, artworkSelect+` WHERE w.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, artwork.ErrArtworkNotFound
		}
		return nil, fmt.Errorf("failed to get artwork: %w", err)
	}

	if err := r.cache.Set(ctx, key, w, cacheTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache artwork")
	}
	return w, nil
}

func (r *postgresRepository) Create(ctx context.Context, w *model.Artwork) (*model.Artwork, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO artworks (title, on_sale, price, img_src, artist_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		w.Title, w.OnSale, w.Price, nullable(w.ImgSrc), w.ArtistID,
	).Scan(&id)
	if err != nil {
		return nil, translateFK(err, "failed to create artwork")
	}

	r.invalidate(ctx, id)
	return r.GetByID(ctx, id)
}

func (r *postgresRepository) Update(ctx context.Context, w *model.Artwork) (*model.Artwork, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE artworks
		SET title = $2, on_sale = $3, price = $4, img_src = $5, artist_id = $6,
		    updated_at = NOW()
		WHERE id = $1`,
		w.ID, w.Title, w.OnSale, w.Price, nullable(w.ImgSrc), w.ArtistID,
	)
	if err != nil {
		return nil, translateFK(err, "failed to update artwork")
	}
	if tag.RowsAffected() == 0 {
		return nil, artwork.ErrArtworkNotFound
	}

	r.invalidate(ctx, w.ID)
	return r.GetByID(ctx, w.ID)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM artworks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete artwork: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return artwork.ErrArtworkNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKeyList, fmt.Sprintf(cacheKeyDetail, id)); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate artwork cache")
	}
}

func translateFK(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return artwork.ErrUnknownArtist
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
