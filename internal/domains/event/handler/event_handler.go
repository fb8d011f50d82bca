package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"artplatform-backend/internal/domains/event"
	"artplatform-backend/internal/domains/event/model"
	"artplatform-backend/internal/domains/event/service"
	"artplatform-backend/internal/shared/response"
)

type EventHandler struct {
	service service.ServiceInterface
}

func NewEventHandler(service service.ServiceInterface) *EventHandler {
	return &EventHandler{service: service}
}

// List handles GET /v1/events?status=upcoming&search=jazz
func (h *EventHandler) List(c *gin.Context) {
	view := model.View{
		Status: model.ParseStatusFilter(c.Query("status")),
		Search: c.Query("search"),
	}

	events, err := h.service.ListEvents(c.Request.Context(), view)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, events, &response.Meta{Total: len(events)})
}

// Get handles GET /v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	e, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

// Create handles POST /v1/admin/events (multipart form, optional image)
func (h *EventHandler) Create(c *gin.Context) {
	var req model.CreateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	start, end, err := parseSchedule(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.StartDate = start
	req.EndDate = end

	image, err := readImage(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.CreateEvent(c.Request.Context(), req, image)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Update handles PUT /v1/admin/events/:id (multipart form, optional image)
func (h *EventHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	var req model.UpdateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	start, end, err := parseSchedule(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.StartDate = start
	req.EndDate = end

	image, err := readImage(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.UpdateEvent(c.Request.Context(), id, req, image)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /v1/admin/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Attend handles POST /v1/events/:id/attend
func (h *EventHandler) Attend(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	count, err := h.service.Attend(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attendees": count})
}

// Export handles GET /v1/admin/events/export
func (h *EventHandler) Export(c *gin.Context) {
	f, err := h.service.ExportEvents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("events-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("Failed to stream event export")
	}
}

// parseSchedule reads start_date/end_date form fields. Both RFC3339 and the
// datetime-local format the admin form posts are accepted.
func parseSchedule(c *gin.Context) (time.Time, *time.Time, error) {
	start, err := parseEventTime(c.PostForm("start_date"))
	if err != nil {
		return time.Time{}, nil, errors.New("invalid start date")
	}

	raw := c.PostForm("end_date")
	if raw == "" {
		return start, nil, nil
	}
	end, err := parseEventTime(raw)
	if err != nil {
		return time.Time{}, nil, errors.New("invalid end date")
	}
	return start, &end, nil
}

func parseEventTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", s)
}

// readImage pulls the optional "image" file out of the multipart form.
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

	status := event.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Event handler error")
		response.InternalServerError(c, "something went wrong")
		return
	}
	response.ErrorResponse(c, status, response.CodeForStatus(status), err.Error())
}
