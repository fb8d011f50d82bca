package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"artplatform-backend/internal/domains/artwork"
	"artplatform-backend/internal/domains/artwork/model"
	"artplatform-backend/internal/domains/artwork/service"
	"artplatform-backend/internal/shared/response"
)

type ArtworkHandler struct {
	service service.ServiceInterface
}

func NewArtworkHandler(service service.ServiceInterface) *ArtworkHandler {
	return &ArtworkHandler{service: service}
}

// List handles GET /v1/artworks?artist_id=...
func (h *ArtworkHandler) List(c *gin.Context) {
	if raw := c.Query("artist_id"); raw != "" {
		artistID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid artist id")
			return
		}
		artworks, err := h.service.ListByArtist(c.Request.Context(), artistID)
		if err != nil {
			respondError(c, err)
			return
		}
		response.SuccessWithMeta(c, http.StatusOK, artworks, &response.Meta{Total: len(artworks)})
		return
	}

	artworks, err := h.service.ListArtworks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, artworks, &response.Meta{Total: len(artworks)})
}

// Get handles GET /v1/artworks/:id
func (h *ArtworkHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid artwork id")
		return
	}

	w, err := h.service.GetArtwork(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, w)
}

// Create handles POST /v1/admin/artworks (multipart form, optional image)
func (h *ArtworkHandler) Create(c *gin.Context) {
	var req model.ArtworkRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	image, err := readImage(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.CreateArtwork(c.Request.Context(), req, image)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Update handles PUT /v1/admin/artworks/:id
func (h *ArtworkHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid artwork id")
		return
	}

	var req model.ArtworkRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	image, err := readImage(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.UpdateArtwork(c.Request.Context(), id, req, image)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /v1/admin/artworks/:id
func (h *ArtworkHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid artwork id")
		return
	}

	if err := h.service.DeleteArtwork(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func readImage(c *gin.Context) (*model.ImageUpload, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errors.New("invalid image upload")
	}
	return loadUpload(fileHeader)
}

func loadUpload(fh *multipart.FileHeader) (*model.ImageUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.New("cannot read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.New("cannot read uploaded file")
	}
	return &model.ImageUpload{Data: data, Filename: fh.Filename}, nil
}

func respondError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.BadRequest(c, vErrs.Error())
		return
	}

	status := artwork.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Artwork handler error")
		response.InternalServerError(c, "something went wrong")
		return
	}
	response.ErrorResponse(c, status, response.CodeForStatus(status), err.Error())
}
