package dto

type CreateUserRequest struct {
	Name          string `json:"name" validate:"required,min=2"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Role          string `json:"role" validate:"required,oneof=member author admin superAdmin"`
	EmailVerified bool   `json:"email_verified"`
}

// UpdateUserRequest carries merge semantics: nil fields are left untouched.
type UpdateUserRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=2"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Password      *string `json:"password" validate:"omitempty,min=8"`
	Role          *string `json:"role" validate:"omitempty,oneof=member author admin superAdmin"`
	EmailVerified *bool   `json:"email_verified"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}
