package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"artplatform-backend/internal/domains/artist"
	"artplatform-backend/internal/domains/artist/model"
	"artplatform-backend/internal/infrastructure/storage"
	"artplatform-backend/internal/shared/utils"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context, search string) ([]model.Artist, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Artist), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artist), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, a *model.Artist) (*model.Artist, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artist), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, a *model.Artist) (*model.Artist, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artist), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockStorage) KeyFromURL(url string) string {
	args := m.Called(url)
	return args.String(0)
}

func newTestService(repo *mockRepository, store *mockStorage) ServiceInterface {
	return NewArtistService(repo, store, storage.NewImageProcessor(), nil)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func TestCreateArtist_NormalizesProfile(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Artist) bool {
		return a.Name == "Ana Rivera" &&
			a.Bio == nil &&
			utils.Deref(a.Website) == "https://anarivera.art" &&
			utils.Deref(a.Instagram) == "https://instagram.com/anarivera" &&
			a.Twitter == nil
	})).Return(&model.Artist{ID: uuid.New()}, nil)

	req := model.ArtistRequest{
		Name:      "  Ana Rivera  ",
		Bio:       "   ",
		Website:   "anarivera.art",
		Instagram: "instagram.com/anarivera",
	}

	_, err := svc.CreateArtist(context.Background(), req, nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateArtist_InvalidEmail(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	req := model.ArtistRequest{Name: "Ana Rivera", Email: "not-an-email"}

	_, err := svc.CreateArtist(context.Background(), req, nil)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateArtist_UploadsShrunkPortrait(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStorage)
	svc := newTestService(repo, store)

	store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "artists/")
	}), mock.Anything, "image/jpeg").Return("http://store/rise/artists/1-ana.png", nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Artist) bool {
		return utils.Deref(a.PortraitSrc) == "http://store/rise/artists/1-ana.png"
	})).Return(&model.Artist{ID: uuid.New()}, nil)

	req := model.ArtistRequest{Name: "Ana Rivera"}
	_, err := svc.CreateArtist(context.Background(), req,
		&model.ImageUpload{Data: pngBytes(t), Filename: "ana.png"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestCreateArtist_UploadFailure_AbortsWrite(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStorage)
	svc := newTestService(repo, store)

	store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket unavailable"))

	_, err := svc.CreateArtist(context.Background(), model.ArtistRequest{Name: "Ana Rivera"},
		&model.ImageUpload{Data: pngBytes(t), Filename: "ana.png"})

	assert.ErrorIs(t, err, artist.ErrUploadFailed)
	assert.Contains(t, err.Error(), "bucket unavailable")
	repo.AssertNotCalled(t, "Create")
}

func TestCreateArtist_RejectsNonImagePortrait(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStorage)
	svc := newTestService(repo, store)

	_, err := svc.CreateArtist(context.Background(), model.ArtistRequest{Name: "Ana Rivera"},
		&model.ImageUpload{Data: []byte("not an image"), Filename: "ana.png"})

	assert.ErrorIs(t, err, storage.ErrInvalidImage)
	store.AssertNotCalled(t, "Upload")
	repo.AssertNotCalled(t, "Create")
}

func TestUpdateArtist_RemovesPortrait(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	id := uuid.New()
	portrait := "http://store/rise/artists/1-ana.png"
	repo.On("GetByID", mock.Anything, id).Return(&model.Artist{
		ID: id, Name: "Ana Rivera", PortraitSrc: &portrait,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(a *model.Artist) bool {
		return a.PortraitSrc == nil
	})).Return(&model.Artist{ID: id}, nil)

	req := model.ArtistRequest{Name: "Ana Rivera", RemovePortrait: true}

	_, err := svc.UpdateArtist(context.Background(), id, req, nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteArtist_NotFound(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, artist.ErrArtistNotFound)

	err := svc.DeleteArtist(context.Background(), id)
	assert.ErrorIs(t, err, artist.ErrArtistNotFound)
	repo.AssertNotCalled(t, "Delete")
}

func TestListArtists_TrimsSearch(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	repo.On("List", mock.Anything, "rivera").Return([]model.Artist{}, nil)

	_, err := svc.ListArtists(context.Background(), "  rivera  ")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
