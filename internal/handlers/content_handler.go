package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"orgblog/internal/dto"
	"orgblog/internal/middleware"
	"orgblog/internal/services"
)

type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (h *ContentHandler) ListPosts(c *fiber.Ctx) error {
	posts, total, err := h.contentService.ListPosts(
		c.UserContext(),
		c.Query("category"),
		c.Query("tag"),
		c.QueryInt("limit", 20),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts, "total": total})
}

func (h *ContentHandler) GetPost(c *fiber.Ctx) error {
	// The viewer id is recorded when a valid token happens to be present;
	// anonymous reads are fine on this public route.
	var viewerID *uuid.UUID
	if _, ok := c.Locals("user").(*jwt.Token); ok {
		if id, err := middleware.CurrentUserID(c); err == nil {
			viewerID = &id
		}
	}

	post, err := h.contentService.PostBySlug(c.UserContext(), c.Params("slug"), viewerID, c.IP())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"post": post})
}

func (h *ContentHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.contentService.ListCategories(c.UserContext())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (h *ContentHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.contentService.ListTags(c.UserContext())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

func (h *ContentHandler) ListComments(c *fiber.Ctx) error {
	comments, err := h.contentService.CommentsForPost(
		c.UserContext(),
		c.Params("slug"),
		c.QueryInt("limit", 50),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

func (h *ContentHandler) CreateComment(c *fiber.Ctx) error {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthenticated(c)
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	comment, err := h.contentService.CreateComment(c.UserContext(), callerID, c.Params("slug"), &req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}
