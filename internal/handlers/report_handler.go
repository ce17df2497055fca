package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"orgblog/internal/dto"
	"orgblog/internal/middleware"
	"orgblog/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthenticated(c)
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	report, err := h.reportService.Create(c.UserContext(), callerID, &req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"report": report})
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, total, err := h.reportService.List(
		c.UserContext(),
		c.Query("status"),
		c.QueryInt("limit", 50),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"reports": reports, "total": total})
}

func (h *ReportHandler) Action(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequestBody(c)
	}

	var req dto.ActionReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	if err := h.reportService.Action(c.UserContext(), reportID, &req); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report updated"})
}
