package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"artplatform-backend/internal/domains/user"
	"artplatform-backend/internal/domains/user/model"
	"artplatform-backend/internal/domains/user/service"
	"artplatform-backend/internal/shared/middleware"
	"artplatform-backend/internal/shared/response"
)

type UserHandler struct {
	service service.ServiceInterface
}

func NewUserHandler(service service.ServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// Login handles POST /v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

// Refresh handles POST /v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

// Me handles GET /v1/auth/me (requires auth)
func (h *UserHandler) Me(c *gin.Context) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.Unauthorized(c, "not authenticated")
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func respondError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.BadRequest(c, vErrs.Error())
		return
	}

	status := user.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("User handler error")
		response.InternalServerError(c, "something went wrong")
		return
	}
	response.ErrorResponse(c, status, response.CodeForStatus(status), err.Error())
}
