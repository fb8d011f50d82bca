package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"artplatform-backend/internal/domains/artist"
	"artplatform-backend/internal/domains/artist/model"
	"artplatform-backend/internal/domains/artist/repository"
	"artplatform-backend/internal/infrastructure/storage"
	"artplatform-backend/internal/shared"
	"artplatform-backend/internal/shared/utils"
)

const (
	portraitFolder = "artists"

	// Portraits render as small cards; stored pre-shrunk
	portraitMaxDimension = 512
)

type artistService struct {
	repo      repository.RepositoryInterface
	storage   storage.ObjectStorage
	processor *storage.ImageProcessor
	tasks     *asynq.Client
}

// NewArtistService creates a new artist service
func NewArtistService(
	repo repository.RepositoryInterface,
	objectStorage storage.ObjectStorage,
	processor *storage.ImageProcessor,
	tasks *asynq.Client,
) ServiceInterface {
	return &artistService{
		repo:      repo,
		storage:   objectStorage,
		processor: processor,
		tasks:     tasks,
	}
}

func (s *artistService) ListArtists(ctx context.Context, search string) ([]model.Artist, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

func (s *artistService) GetArtist(ctx context.Context, id uuid.UUID) (*model.Artist, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *artistService) CreateArtist(ctx context.Context, req model.ArtistRequest, portrait *model.ImageUpload) (*model.Artist, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var portraitSrc *string
	if portrait != nil {
		url, err := s.uploadPortrait(ctx, portrait)
		if err != nil {
			return nil, err
		}
		portraitSrc = &url
	}

	a := composeArtist(req)
	a.PortraitSrc = portraitSrc
	return s.repo.Create(ctx, a)
}

func (s *artistService) UpdateArtist(ctx context.Context, id uuid.UUID, req model.ArtistRequest, portrait *model.ImageUpload) (*model.Artist, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	portraitSrc := existing.PortraitSrc
	switch {
	case portrait != nil:
		url, err := s.uploadPortrait(ctx, portrait)
		if err != nil {
			return nil, err
		}
		portraitSrc = &url
	case req.RemovePortrait:
		portraitSrc = nil
	}

	a := composeArtist(req)
	a.ID = id
	a.PortraitSrc = portraitSrc

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, err
	}

	if old := utils.Deref(existing.PortraitSrc); old != "" && old != utils.Deref(updated.PortraitSrc) {
		s.enqueueImageCleanup(ctx, old)
	}
	return updated, nil
}

func (s *artistService) DeleteArtist(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if old := utils.Deref(existing.PortraitSrc); old != "" {
		s.enqueueImageCleanup(ctx, old)
	}

	log.Info().Str("artist_id", id.String()).Msg("Artist deleted")
	return nil
}

// composeArtist normalizes the submitted profile: blanks become NULL and
// link fields get a scheme so they are always openable.
func composeArtist(req model.ArtistRequest) *model.Artist {
	return &model.Artist{
		Name:      strings.TrimSpace(req.Name),
		Bio:       utils.OptionalString(req.Bio),
		Website:   utils.OptionalString(utils.EnsureScheme(req.Website)),
		Email:     utils.OptionalString(req.Email),
		Twitter:   utils.OptionalString(utils.EnsureScheme(req.Twitter)),
		LinkedIn:  utils.OptionalString(utils.EnsureScheme(req.LinkedIn)),
		Instagram: utils.OptionalString(utils.EnsureScheme(req.Instagram)),
		Facebook:  utils.OptionalString(utils.EnsureScheme(req.Facebook)),
		YouTube:   utils.OptionalString(utils.EnsureScheme(req.YouTube)),
	}
}

// uploadPortrait validates, shrinks to card size and stores the portrait.
func (s *artistService) uploadPortrait(ctx context.Context, portrait *model.ImageUpload) (string, error) {
	if err := s.processor.ValidateImage(portrait.Data); err != nil {
		return "", err
	}
	thumb, err := s.processor.Thumbnail(portrait.Data, portraitMaxDimension)
	if err != nil {
		return "", err
	}

	key := storage.ObjectKey(portraitFolder, portrait.Filename)
	url, err := s.storage.Upload(ctx, key, thumb, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("%w: %v", artist.ErrUploadFailed, err)
	}
	return url, nil
}

func (s *artistService) enqueueImageCleanup(ctx context.Context, url string) {
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
