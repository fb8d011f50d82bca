package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"artplatform-backend/internal/domains/artwork"
	"artplatform-backend/internal/domains/artwork/model"
	"artplatform-backend/internal/domains/artwork/repository"
	"artplatform-backend/internal/infrastructure/storage"
	"artplatform-backend/internal/shared"
	"artplatform-backend/internal/shared/utils"
)

const galleryFolder = "gallery"

type artworkService struct {
	repo      repository.RepositoryInterface
	storage   storage.ObjectStorage
	processor *storage.ImageProcessor
	tasks     *asynq.Client
}

// NewArtworkService creates a new artwork service
func NewArtworkService(
	repo repository.RepositoryInterface,
	objectStorage storage.ObjectStorage,
	processor *storage.ImageProcessor,
	tasks *asynq.Client,
) ServiceInterface {
	return &artworkService{
		repo:      repo,
		storage:   objectStorage,
		processor: processor,
		tasks:     tasks,
	}
}

func (s *artworkService) ListArtworks(ctx context.Context) ([]model.Artwork, error) {
	return s.repo.List(ctx)
}

func (s *artworkService) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]model.Artwork, error) {
	return s.repo.ListByArtist(ctx, artistID)
}

func (s *artworkService) GetArtwork(ctx context.Context, id uuid.UUID) (*model.Artwork, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *artworkService) CreateArtwork(ctx context.Context, req model.ArtworkRequest, image *model.ImageUpload) (*model.Artwork, error) {
	w, err := composeArtwork(req)
	if err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		w.ImgSrc = url
	}
	return s.repo.Create(ctx, w)
}

func (s *artworkService) UpdateArtwork(ctx context.Context, id uuid.UUID, req model.ArtworkRequest, image *model.ImageUpload) (*model.Artwork, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	w, err := composeArtwork(req)
	if err != nil {
		return nil, err
	}
	w.ID = id

	w.ImgSrc = existing.ImgSrc
	switch {
	case image != nil:
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		w.ImgSrc = url
	case req.RemoveImage:
		w.ImgSrc = ""
	}

	updated, err := s.repo.Update(ctx, w)
	if err != nil {
		return nil, err
	}

	if existing.ImgSrc != "" && existing.ImgSrc != updated.ImgSrc {
		s.enqueueImageCleanup(ctx, existing.ImgSrc)
	}
	return updated, nil
}

func (s *artworkService) DeleteArtwork(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if existing.ImgSrc != "" {
		s.enqueueImageCleanup(ctx, existing.ImgSrc)
	}

	log.Info().Str("artwork_id", id.String()).Msg("Artwork deleted")
	return nil
}

// composeArtwork applies the sale invariant: a piece on sale must carry a
// price, and a piece not on sale never does, whatever the form submitted.
func composeArtwork(req model.ArtworkRequest) (*model.Artwork, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	w := &model.Artwork{
		Title:  strings.TrimSpace(req.Title),
		OnSale: req.OnSale,
	}

	if req.OnSale {
		if req.Price == nil {
			return nil, artwork.ErrPriceRequired
		}
		w.Price = utils.ParseFloatToDecimal(req.Price)
	}

	if req.ArtistID != "" {
		aid := utils.ParseStringToUUID(req.ArtistID)
		if aid == uuid.Nil {
			return nil, artwork.ErrUnknownArtist
		}
		w.ArtistID = &aid
	}
	return w, nil
}

func (s *artworkService) uploadImage(ctx context.Context, image *model.ImageUpload) (string, error) {
	if err := s.processor.ValidateImage(image.Data); err != nil {
		return "", err
	}
	key := storage.ObjectKey(galleryFolder, image.Filename)
	url, err := s.storage.Upload(ctx, key, image.Data, s.processor.ContentType(image.Data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", artwork.ErrUploadFailed, err)
	}
	return url, nil
}

func (s *artworkService) enqueueImageCleanup(ctx context.Context, url string) {
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
