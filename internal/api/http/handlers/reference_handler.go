package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/api/dto"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/repository"
	apperrors "github.com/ohhpeejoshi/grievance-management-system-sub000/pkg/util/errorutil"
)

// ReferenceHandler manages the lookup entities grievances classify
// against: departments, categories and workers.
type ReferenceHandler struct {
	departments repository.DepartmentRepository
	categories  repository.CategoryRepository
	workers     repository.WorkerRepository
}

// NewReferenceHandler constructs handler.
func NewReferenceHandler(departments repository.DepartmentRepository, categories repository.CategoryRepository, workers repository.WorkerRepository) *ReferenceHandler {
	return &ReferenceHandler{departments: departments, categories: categories, workers: workers}
}

// ListDepartments GET /departments.
func (h *ReferenceHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.departments.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": departments})
}

// CreateDepartment POST /departments (admin).
func (h *ReferenceHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return apperrors.NewValidationError("name and email required", nil)
	}
	dept := &domain.Department{Name: req.Name, Email: req.Email}
	if err := h.departments.Create(c.Context(), dept); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dept})
}

// ListCategories GET /departments/:id/categories.
func (h *ReferenceHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.ListByDepartment(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": categories})
}

// CreateCategory POST /categories (admin).
func (h *ReferenceHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DepartmentID == "" || strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("department_id and name required", nil)
	}
	urgency := domain.Urgency(strings.ToUpper(req.DefaultUrgency))
	if !urgency.Valid() {
		urgency = domain.UrgencyNormal
	}
	category := &domain.Category{
		DepartmentID:   req.DepartmentID,
		Name:           req.Name,
		DefaultUrgency: urgency,
	}
	if err := h.categories.Create(c.Context(), category); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": category})
}

// ListWorkers GET /departments/:id/workers (office bearer).
func (h *ReferenceHandler) ListWorkers(c *fiber.Ctx) error {
	workers, err := h.workers.ListByDepartment(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": workers})
}

// CreateWorker POST /workers (office bearer or admin).
func (h *ReferenceHandler) CreateWorker(c *fiber.Ctx) error {
	var req dto.CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DepartmentID == "" || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return apperrors.NewValidationError("department_id, name, email required", nil)
	}
	worker := &domain.Worker{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
	}
	if err := h.workers.Create(c.Context(), worker); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": worker})
}
