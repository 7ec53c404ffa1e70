package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seshego-consulting/portal_backend/internal/apperrors"
	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	portssvc "github.com/seshego-consulting/portal_backend/internal/core/ports/services"
	"github.com/seshego-consulting/portal_backend/internal/dto"
	"github.com/seshego-consulting/portal_backend/internal/middleware"
)

// OnboardingHandler serves both halves of the onboarding workflow: the
// submitter's form endpoints and the admin review endpoints.
type OnboardingHandler struct {
	onboardingService portssvc.OnboardingSvcFacade
	authService       portssvc.AuthSvcFacade
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(onboardingService portssvc.OnboardingSvcFacade, authService portssvc.AuthSvcFacade) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService, authService: authService}
}

func registerOnboardingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewOnboardingHandler(services.Onboarding, services.Auth)
	rg.GET("/onboarding", h.GetOwnSubmission)
	rg.PUT("/onboarding", h.SaveDraft)
	rg.POST("/onboarding/submit", h.Submit)
}

func registerAdminOnboardingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewOnboardingHandler(services.Onboarding, services.Auth)
	rg.GET("/onboarding", h.ListForReview)
	rg.GET("/onboarding/feed", h.Feed)
	rg.POST("/onboarding/:id/approve", h.Approve)
	rg.POST("/onboarding/:id/reject", h.Reject)
}

// GetOwnSubmission godoc
// @Summary Get own onboarding submission
// @Description Returns the caller's submission for form pre-fill.
// @Tags onboarding
// @Produce json
// @Success 200 {object} dto.SubmissionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No submission yet"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /onboarding [get]
func (h *OnboardingHandler) GetOwnSubmission(c *gin.Context) {
	uid, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sub, err := h.onboardingService.GetOwnSubmission(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No submission found"})
			return
		}
		logger.Error("Failed to load submission", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load submission"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionResponse(sub))
}

// SaveDraft godoc
// @Summary Autosave the onboarding form
// @Description Saves partial form state without validation. A decided submission is returned unchanged.
// @Tags onboarding
// @Accept json
// @Produce json
// @Param form body dto.SaveSubmissionRequest true "Form fields"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /onboarding [put]
func (h *OnboardingHandler) SaveDraft(c *gin.Context) {
	h.upsertSubmission(c, h.onboardingService.SaveDraft)
}

// Submit godoc
// @Summary Submit the onboarding form for review
// @Description Validates required fields and moves the submission into review.
// @Tags onboarding
// @Accept json
// @Produce json
// @Param form body dto.SaveSubmissionRequest true "Form fields"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse "Missing or malformed field"
// @Failure 401 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse "Already approved"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /onboarding/submit [post]
func (h *OnboardingHandler) Submit(c *gin.Context) {
	h.upsertSubmission(c, h.onboardingService.Submit)
}

func (h *OnboardingHandler) upsertSubmission(c *gin.Context, write func(ctx context.Context, uid, email string, req dto.SaveSubmissionRequest) (*domain.OnboardingSubmission, error)) {
	uid, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.SaveSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cred, err := h.authService.GetCredentialByUID(c.Request.Context(), uid)
	if err != nil {
		logger.Error("Failed to load caller credential", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save submission"})
		return
	}

	sub, err := write(c.Request.Context(), uid, cred.Email, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrPreconditionFailed) {
			c.JSON(http.StatusPreconditionFailed, ErrorResponse{Error: "Submission has already been approved"})
			return
		}
		logger.Error("Failed to save submission", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save submission"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionResponse(sub))
}

// ListForReview godoc
// @Summary List submissions for review
// @Description Admin review list: status=pending|approved|rejected, with optional substring search.
// @Tags onboarding
// @Produce json
// @Param status query string false "Review bucket" default(pending)
// @Param search query string false "Substring search across company, contact and email fields"
// @Param limit query int false "Maximum submissions to return" default(100)
// @Success 200 {object} dto.ListSubmissionsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/onboarding [get]
func (h *OnboardingHandler) ListForReview(c *gin.Context) {
	var params dto.ListSubmissionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	subs, err := h.onboardingService.ListForReview(c.Request.Context(), params.Status, params.Search, params.Limit)
	if err != nil {
		logger.Error("Failed to list submissions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list submissions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSubmissionsResponse(subs))
}

// Feed godoc
// @Summary Live review feed
// @Description Server-sent events stream of submission changes for open review sessions.
// @Tags onboarding
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/onboarding/feed [get]
func (h *OnboardingHandler) Feed(c *gin.Context) {
	events, cancel := h.onboardingService.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case event, open := <-events:
			if !open {
				return false
			}
			c.SSEvent("submission", event)
			return true
		case <-clientGone:
			return false
		}
	})
}

// Approve godoc
// @Summary Approve a submission
// @Description Approves the submission, promotes it into a client profile and queues the approval email atomically.
// @Tags onboarding
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse "Already approved"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/onboarding/{id}/approve [post]
func (h *OnboardingHandler) Approve(c *gin.Context) {
	h.decide(c, func(ctx context.Context, submissionID, reviewerUID string) error {
		return h.onboardingService.Approve(ctx, submissionID, reviewerUID)
	})
}

// Reject godoc
// @Summary Reject a submission
// @Description Rejects the submission with an optional reason and queues the rejection email atomically.
// @Tags onboarding
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param body body dto.RejectSubmissionRequest false "Optional reason"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse "Already decided"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/onboarding/{id}/reject [post]
func (h *OnboardingHandler) Reject(c *gin.Context) {
	var req dto.RejectSubmissionRequest
	// the body is optional; a missing or empty body means no reason
	_ = c.ShouldBindJSON(&req)

	h.decide(c, func(ctx context.Context, submissionID, reviewerUID string) error {
		return h.onboardingService.Reject(ctx, submissionID, req.Reason, reviewerUID)
	})
}

func (h *OnboardingHandler) decide(c *gin.Context, decision func(ctx context.Context, submissionID, reviewerUID string) error) {
	reviewerUID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}
	submissionID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := decision(c.Request.Context(), submissionID, reviewerUID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Submission not found"})
			return
		}
		if errors.Is(err, apperrors.ErrPreconditionFailed) {
			c.JSON(http.StatusPreconditionFailed, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to decide submission", slog.String("error", err.Error()), slog.String("submission_id", submissionID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
