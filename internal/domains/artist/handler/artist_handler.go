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

	"artplatform-backend/internal/domains/artist"
	"artplatform-backend/internal/domains/artist/model"
	"artplatform-backend/internal/domains/artist/service"
	"artplatform-backend/internal/shared/response"
)

type ArtistHandler struct {
	service service.ServiceInterface
}

func NewArtistHandler(service service.ServiceInterface) *ArtistHandler {
	return &ArtistHandler{service: service}
}

// List handles GET /v1/artists?search=rivera
func (h *ArtistHandler) List(c *gin.Context) {
	artists, err := h.service.ListArtists(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, artists, &response.Meta{Total: len(artists)})
}

// Get handles GET /v1/artists/:id
func (h *ArtistHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid artist id")
		return
	}

	a, err := h.service.GetArtist(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// Create handles POST /v1/admin/artists (multipart form, optional portrait)
func (h *ArtistHandler) Create(c *gin.Context) {
	var req model.ArtistRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	portrait, err := readPortrait(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.CreateArtist(c.Request.Context(), req, portrait)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Update handles PUT /v1/admin/artists/:id
func (h *ArtistHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid artist id")
		return
	}

	var req model.ArtistRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	portrait, err := readPortrait(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.UpdateArtist(c.Request.Context(), id, req, portrait)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /v1/admin/artists/:id
func (h *ArtistHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid artist id")
		return
	}

	if err := h.service.DeleteArtist(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func readPortrait(c *gin.Context) (*model.ImageUpload, error) {
	fileHeader, err := c.FormFile("portrait")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errors.New("invalid portrait upload")
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

	status := artist.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Artist handler error")
		response.InternalServerError(c, "something went wrong")
		return
	}
	response.ErrorResponse(c, status, response.CodeForStatus(status), err.Error())
}
