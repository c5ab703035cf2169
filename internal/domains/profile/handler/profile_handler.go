package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blognest-backend/internal/domains/profile"
	"blognest-backend/internal/session"
	"blognest-backend/internal/shared/backenderr"
	"blognest-backend/internal/shared/response"
)

type ProfileHandler struct {
	service profile.Service
}

func NewProfileHandler(svc profile.Service) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// Get - GET /v1/profiles/:uid (public read)
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.service.GetProfile(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// GetMe - GET /v1/me/profile (lazy create on first access)
func (h *ProfileHandler) GetMe(c *gin.Context) {
	identity, _ := session.FromContext(c.Request.Context())
	p, err := h.service.GetOrCreateProfile(c.Request.Context(), identity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"profile":  p,
		"complete": p.IsComplete(),
	})
}

// UpdateMe - PUT /v1/me/profile (partial merge)
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req profile.UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.UpdateMyProfile(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *ProfileHandler) respondError(c *gin.Context, err error) {
	status := profile.ToHTTPStatus(err)
	msg := err.Error()
	if status == 500 {
		msg = backenderr.UserMessage(err)
	}
	response.ErrorResponse(c, status, profile.ToErrorCode(err), msg)
}
