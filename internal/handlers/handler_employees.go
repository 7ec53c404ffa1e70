package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seshego-consulting/portal_backend/internal/apperrors"
	portssvc "github.com/seshego-consulting/portal_backend/internal/core/ports/services"
	"github.com/seshego-consulting/portal_backend/internal/dto"
	"github.com/seshego-consulting/portal_backend/internal/middleware"
)

// EmployeeHandler serves the client-scoped employee endpoints.
type EmployeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService portssvc.EmployeeSvcFacade) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := NewEmployeeHandler(employeeService)
	rg.POST("/employees", h.Provision)
	rg.GET("/employees", h.List)
}

// Provision godoc
// @Summary Provision an employee account
// @Description Creates an employee credential with a temporary password, a profile and the invite email, atomically.
// @Tags employees
// @Accept json
// @Produce json
// @Param body body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.CreateEmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller is not a client"
// @Failure 409 {object} ErrorResponse "Email already has an account"
// @Failure 412 {object} ErrorResponse "Caller profile has no companyId"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees [post]
func (h *EmployeeHandler) Provision(c *gin.Context) {
	callerUID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employeeUID, err := h.employeeService.ProvisionEmployee(c.Request.Context(), callerUID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only client accounts may add employees"})
		case errors.Is(err, apperrors.ErrPreconditionFailed):
			c.JSON(http.StatusPreconditionFailed, ErrorResponse{Error: "Your profile has no company assigned yet"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "An account with this email already exists"})
		default:
			logger.Error("Failed to provision employee", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create employee"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CreateEmployeeResponse{OK: true, EmployeeUID: employeeUID})
}

// List godoc
// @Summary List own company's employees
// @Description Returns the employees provisioned for the caller's company.
// @Tags employees
// @Produce json
// @Success 200 {object} dto.ListEmployeesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	callerUID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), callerUID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only client accounts may list employees"})
			return
		}
		logger.Error("Failed to list employees", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list employees"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListEmployeesResponse(employees))
}
