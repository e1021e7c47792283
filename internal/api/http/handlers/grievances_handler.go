package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/api/dto"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/auth"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/repository"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/service"
	apperrors "github.com/ohhpeejoshi/grievance-management-system-sub000/pkg/util/errorutil"
)

// GrievancesHandler manages grievance lifecycle endpoints.
type GrievancesHandler struct {
	service *service.GrievanceService
}

// NewGrievancesHandler constructs handler.
func NewGrievancesHandler(grievanceService *service.GrievanceService) *GrievancesHandler {
	return &GrievancesHandler{service: grievanceService}
}

// Create POST /grievances. Open to complainants, so no principal is
// required.
func (h *GrievancesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.GrievanceCreateInput{
		Title:             req.Title,
		Description:       req.Description,
		Location:          req.Location,
		DepartmentID:      req.DepartmentID,
		CategoryID:        req.CategoryID,
		Urgency:           domain.Urgency(strings.ToUpper(req.Urgency)),
		ComplainantName:   req.ComplainantName,
		ComplainantEmail:  req.ComplainantEmail,
		ComplainantMobile: req.ComplainantMobile,
		AttachmentKey:     req.AttachmentKey,
	}
	grievance, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": grievanceResponse(grievance)})
}

// Get GET /grievances/track/*.
func (h *GrievancesHandler) Get(c *fiber.Ctx) error {
	grievance, err := h.service.Get(c.Context(), ticketIDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": grievanceResponse(grievance)})
}

// List GET /grievances.
func (h *GrievancesHandler) List(c *fiber.Ctx) error {
	filter := parseGrievanceQuery(c)
	grievances, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.GrievanceResponse, 0, len(grievances))
	for i := range grievances {
		items = append(items, grievanceResponse(&grievances[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Assign POST /grievances/assign/* (office bearer).
func (h *GrievancesHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("office bearer required")
	}
	var req dto.AssignGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.WorkerID == "" {
		return apperrors.NewValidationError("worker_id required", nil)
	}
	grievance, err := h.service.Assign(c.Context(), ticketIDParam(c), req.WorkerID, principal.Account.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": grievanceResponse(grievance)})
}

// Resolve POST /grievances/resolve/* (office bearer).
func (h *GrievancesHandler) Resolve(c *fiber.Ctx) error {
	grievance, err := h.service.Resolve(c.Context(), ticketIDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": grievanceResponse(grievance)})
}

// RevertToOfficeBearer POST /grievances/revert-to-bearer/*
// (approving authority).
func (h *GrievancesHandler) RevertToOfficeBearer(c *fiber.Ctx) error {
	return h.revert(c, h.service.RevertToOfficeBearer)
}

// RevertToAuthority POST /grievances/revert-to-authority/* (admin).
func (h *GrievancesHandler) RevertToAuthority(c *fiber.Ctx) error {
	return h.revert(c, h.service.RevertToAuthority)
}

// Transfer POST /grievances/transfer/* (office bearer or admin).
func (h *GrievancesHandler) Transfer(c *fiber.Ctx) error {
	var req dto.TransferGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NewDepartmentID == "" {
		return apperrors.NewValidationError("new_department_id required", nil)
	}
	grievance, err := h.service.Transfer(c.Context(), ticketIDParam(c), req.NewDepartmentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": grievanceResponse(grievance)})
}

func (h *GrievancesHandler) revert(c *fiber.Ctx, apply func(ctx context.Context, ticketID string, days int, comment, actorEmail string) (*domain.Grievance, error)) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RevertGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	grievance, err := apply(c.Context(), ticketIDParam(c), req.NewDeadlineDays, req.Comment, principal.Account.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": grievanceResponse(grievance)})
}

func ticketIDParam(c *fiber.Ctx) string {
	// Ticket IDs contain slashes (lnm/2025/07/0001), so the route uses
	// a wildcard segment.
	return c.Params("*")
}

func parseGrievanceQuery(c *fiber.Ctx) repository.GrievanceFilter {
	filter := repository.GrievanceFilter{}
	if dept := c.Query("department_id"); dept != "" {
		filter.DepartmentID = &dept
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.GrievanceStatus(strings.ToUpper(strings.TrimSpace(part))))
		}
	}
	if urgencyStr := c.Query("urgency"); urgencyStr != "" {
		for _, part := range strings.Split(urgencyStr, ",") {
			filter.Urgencies = append(filter.Urgencies, domain.Urgency(strings.ToUpper(strings.TrimSpace(part))))
		}
	}
	if escalatedStr := c.Query("escalated"); escalatedStr != "" {
		escalated := escalatedStr == "true" || escalatedStr == "1"
		filter.Escalated = &escalated
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func grievanceResponse(grievance *domain.Grievance) dto.GrievanceResponse {
	return dto.GrievanceResponse{
		TicketID:           grievance.TicketID,
		Title:              grievance.Title,
		Description:        grievance.Description,
		Location:           grievance.Location,
		ComplainantName:    grievance.ComplainantName,
		ComplainantEmail:   grievance.ComplainantEmail,
		DepartmentID:       grievance.DepartmentID,
		CategoryID:         grievance.CategoryID,
		Urgency:            grievance.Urgency,
		Status:             grievance.Status,
		EscalationLevel:    grievance.EscalationLevel,
		ResolutionDeadline: grievance.ResolutionDeadline,
		AssignedWorkerID:   grievance.AssignedWorkerID,
		CreatedAt:          grievance.CreatedAt,
		UpdatedAt:          grievance.UpdatedAt,
	}
}
