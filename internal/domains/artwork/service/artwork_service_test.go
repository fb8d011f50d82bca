package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"artplatform-backend/internal/domains/artwork"
	"artplatform-backend/internal/domains/artwork/model"
	"artplatform-backend/internal/infrastructure/storage"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context) ([]model.Artwork, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Artwork), args.Error(1)
}

func (m *mockRepository) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]model.Artwork, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Artwork), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Artwork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artwork), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, w *model.Artwork) (*model.Artwork, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artwork), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, w *model.Artwork) (*model.Artwork, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artwork), args.Error(1)
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
	return NewArtworkService(repo, store, storage.NewImageProcessor(), nil)
}

func floatPtr(f float64) *float64 { return &f }

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func TestCreateArtwork_OnSaleRequiresPrice(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	req := model.ArtworkRequest{Title: "Untitled No. 5", OnSale: true}

	_, err := svc.CreateArtwork(context.Background(), req, nil)
	assert.ErrorIs(t, err, artwork.ErrPriceRequired)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateArtwork_OffSaleDiscardsPrice(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(w *model.Artwork) bool {
		return !w.OnSale && w.Price == nil
	})).Return(&model.Artwork{ID: uuid.New()}, nil)

	req := model.ArtworkRequest{Title: "Untitled No. 5", OnSale: false, Price: floatPtr(250)}

	_, err := svc.CreateArtwork(context.Background(), req, nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateArtwork_OnSaleKeepsPrice(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	expected := decimal.NewFromFloat(250)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(w *model.Artwork) bool {
		return w.OnSale && w.Price != nil && w.Price.Equal(expected)
	})).Return(&model.Artwork{ID: uuid.New()}, nil)

	req := model.ArtworkRequest{Title: "Untitled No. 5", OnSale: true, Price: floatPtr(250)}

	_, err := svc.CreateArtwork(context.Background(), req, nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateArtwork_NegativePrice(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	req := model.ArtworkRequest{Title: "Untitled No. 5", OnSale: true, Price: floatPtr(-10)}

	_, err := svc.CreateArtwork(context.Background(), req, nil)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateArtwork_BadArtistID(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	req := model.ArtworkRequest{Title: "Untitled No. 5", ArtistID: "not-a-uuid"}

	_, err := svc.CreateArtwork(context.Background(), req, nil)
	assert.ErrorIs(t, err, artwork.ErrUnknownArtist)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateArtwork_AttributesArtist(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	artistID := uuid.New()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(w *model.Artwork) bool {
		return w.ArtistID != nil && *w.ArtistID == artistID
	})).Return(&model.Artwork{ID: uuid.New()}, nil)

	req := model.ArtworkRequest{Title: "Untitled No. 5", ArtistID: artistID.String()}

	_, err := svc.CreateArtwork(context.Background(), req, nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateArtwork_UploadFailure_AbortsWrite(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStorage)
	svc := newTestService(repo, store)

	store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket unavailable"))

	_, err := svc.CreateArtwork(context.Background(), model.ArtworkRequest{Title: "Untitled No. 5"},
		&model.ImageUpload{Data: pngBytes(t), Filename: "untitled.png"})

	assert.ErrorIs(t, err, artwork.ErrUploadFailed)
	assert.Contains(t, err.Error(), "bucket unavailable")
	repo.AssertNotCalled(t, "Create")
}

func TestCreateArtwork_RejectsNonImagePayload(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStorage)
	svc := newTestService(repo, store)

	_, err := svc.CreateArtwork(context.Background(), model.ArtworkRequest{Title: "Untitled No. 5"},
		&model.ImageUpload{Data: []byte("not an image"), Filename: "untitled.png"})

	assert.ErrorIs(t, err, storage.ErrInvalidImage)
	store.AssertNotCalled(t, "Upload")
	repo.AssertNotCalled(t, "Create")
}

func TestUpdateArtwork_TurnsSaleOff(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	id := uuid.New()
	price := decimal.NewFromFloat(500)
	repo.On("GetByID", mock.Anything, id).Return(&model.Artwork{
		ID: id, Title: "Untitled No. 5", OnSale: true, Price: &price,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(w *model.Artwork) bool {
		return !w.OnSale && w.Price == nil
	})).Return(&model.Artwork{ID: id}, nil)

	req := model.ArtworkRequest{Title: "Untitled No. 5", OnSale: false}

	_, err := svc.UpdateArtwork(context.Background(), id, req, nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteArtwork_NotFound(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, new(mockStorage))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, artwork.ErrArtworkNotFound)

	err := svc.DeleteArtwork(context.Background(), id)
	assert.ErrorIs(t, err, artwork.ErrArtworkNotFound)
	repo.AssertNotCalled(t, "Delete")
}
