package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seshego-consulting/portal_backend/internal/apperrors"
	portssvc "github.com/seshego-consulting/portal_backend/internal/core/ports/services"
	"github.com/seshego-consulting/portal_backend/internal/dto"
	"github.com/seshego-consulting/portal_backend/internal/middleware"
)

// uploads above this size are rejected before buffering
const maxDocumentUploadBytes = 25 << 20

// DocumentHandler serves document assignment and retrieval.
type DocumentHandler struct {
	documentService portssvc.DocumentSvcFacade
	userService     portssvc.UserSvcFacade
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService portssvc.DocumentSvcFacade, userService portssvc.UserSvcFacade) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, userService: userService}
}

func registerDocumentRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewDocumentHandler(services.Document, services.User)
	rg.GET("/documents", h.ListOwnDocuments)
}

func registerAdminDocumentRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewDocumentHandler(services.Document, services.User)
	rg.POST("/documents", h.Assign)
	rg.PATCH("/documents/:id/status", h.UpdateStatus)
}

// Assign godoc
// @Summary Upload and assign a document
// @Description Stores the uploaded file and records it against exactly one client or employee.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Document title"
// @Param targetUserId formData string true "Recipient UID"
// @Param status formData string false "Initial status; defaults by role"
// @Param file formData file true "The document file"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Recipient not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/documents [post]
func (h *DocumentHandler) Assign(c *gin.Context) {
	uid, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A file is required"})
		return
	}
	if fileHeader.Size > maxDocumentUploadBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxDocumentUploadBytes))
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}

	// admin email goes on the record as the uploader
	uploadedBy := ""
	if admin, err := h.userService.GetUserByID(c.Request.Context(), uid); err == nil {
		uploadedBy = admin.Email
	}

	req := dto.AssignDocumentRequest{
		Title:        c.PostForm("title"),
		TargetUserID: c.PostForm("targetUserId"),
		Status:       c.PostForm("status"),
		FileName:     fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Payload:      payload,
		UploadedBy:   uploadedBy,
	}

	doc, err := h.documentService.Assign(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Recipient not found"})
			return
		}
		logger.Error("Failed to assign document", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to assign document"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// ListOwnDocuments godoc
// @Summary List own documents
// @Description Returns the documents assigned to the caller, by UID with an email fallback.
// @Tags documents
// @Produce json
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) ListOwnDocuments(c *gin.Context) {
	uid, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email := ""
	if user, err := h.userService.GetUserByID(c.Request.Context(), uid); err == nil {
		email = user.Email
	}

	docs, err := h.documentService.ListForUser(c.Request.Context(), uid, email)
	if err != nil {
		logger.Error("Failed to list documents", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list documents"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListDocumentsResponse(docs))
}

// UpdateStatus godoc
// @Summary Update a document's status
// @Description Changes the status within the vocabulary of the role the document is assigned to.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param body body dto.UpdateDocumentStatusRequest true "New status"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse "Status outside the role's vocabulary"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/documents/{id}/status [patch]
func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateDocumentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	documentID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.documentService.UpdateStatus(c.Request.Context(), documentID, req.Status); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to update document status", slog.String("error", err.Error()), slog.String("document_id", documentID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update document status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
