package dto

import (
	"time"

	"github.com/google/uuid"

	"orgblog/internal/models"
)

type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"required,oneof=owner admin member"`
}

type InviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=owner admin member"`
}

type MemberResponse struct {
	ID             uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"user_id"`
	OrganizationID uuid.UUID      `json:"organization_id"`
	Role           models.OrgRole `json:"role"`
	CreatedAt      time.Time      `json:"created_at"`
	User           *UserResponse  `json:"user,omitempty"`
}

func NewMemberResponse(m *models.Member) MemberResponse {
	resp := MemberResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           m.Role,
		CreatedAt:      m.CreatedAt,
	}
	if m.User.ID != uuid.Nil {
		u := NewUserResponse(&m.User)
		resp.User = &u
	}
	return resp
}

type OrganizationResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Slug      string           `json:"slug"`
	Logo      string           `json:"logo,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Members   []MemberResponse `json:"members,omitempty"`
}

func NewOrganizationResponse(org *models.Organization) OrganizationResponse {
	resp := OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		Slug:      org.Slug,
		Logo:      org.Logo,
		CreatedAt: org.CreatedAt,
	}
	for i := range org.Members {
		resp.Members = append(resp.Members, NewMemberResponse(&org.Members[i]))
	}
	return resp
}
