package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"orgblog/internal/dto"
	"orgblog/internal/middleware"
	"orgblog/internal/models"
	"orgblog/internal/services"
)

type OrgHandler struct {
	memberService *services.MemberService
}

func NewOrgHandler(memberService *services.MemberService) *OrgHandler {
	return &OrgHandler{memberService: memberService}
}

// ListMine returns the organizations the caller belongs to.
func (h *OrgHandler) ListMine(c *fiber.Ctx) error {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthenticated(c)
	}

	orgs, err := h.memberService.OrganizationsForUser(c.UserContext(), callerID)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := make([]dto.OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		resp = append(resp, dto.NewOrganizationResponse(&orgs[i]))
	}
	return c.JSON(fiber.Map{"organizations": resp})
}

// Active returns the organization a fresh session would pin for the caller.
func (h *OrgHandler) Active(c *fiber.Ctx) error {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthenticated(c)
	}

	org, err := h.memberService.ActiveOrganization(c.UserContext(), callerID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if org == nil {
		return c.JSON(fiber.Map{"organization": nil})
	}
	return c.JSON(fiber.Map{"organization": dto.NewOrganizationResponse(org)})
}

func (h *OrgHandler) GetBySlug(c *fiber.Ctx) error {
	org, err := h.memberService.OrganizationBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"organization": dto.NewOrganizationResponse(org)})
}

func (h *OrgHandler) AddMember(c *fiber.Ctx) error {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthenticated(c)
	}

	orgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequestBody(c)
	}

	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	member, err := h.memberService.AddMember(c.UserContext(), callerID, orgID, req.UserID, models.OrgRole(req.Role))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"member": dto.NewMemberResponse(member)})
}

func (h *OrgHandler) RemoveMember(c *fiber.Ctx) error {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthenticated(c)
	}

	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return badRequestBody(c)
	}

	if err := h.memberService.RemoveMember(c.UserContext(), callerID, memberID); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Member removed successfully"})
}

func (h *OrgHandler) Invite(c *fiber.Ctx) error {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthenticated(c)
	}

	orgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequestBody(c)
	}

	var req dto.InviteMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	inv, err := h.memberService.Invite(c.UserContext(), callerID, orgID, req.Email, models.OrgRole(req.Role))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"invitation": inv})
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Code: "not_authenticated", Message: "Unauthorized",
	})
}
