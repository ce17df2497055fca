package dto

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type CreateReportRequest struct {
	CommentID string `json:"comment_id" validate:"required,uuid"`
	Reason    string `json:"reason" validate:"required,min=3,max=500"`
}

type ActionReportRequest struct {
	Status        string `json:"status" validate:"required,oneof=reviewed actioned dismissed"`
	ModeratorNote string `json:"moderator_note" validate:"omitempty,max=500"`
}
