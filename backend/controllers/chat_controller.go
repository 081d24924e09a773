package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"langbridge/backend/config"
	"langbridge/backend/middleware"
	"langbridge/backend/models"
	"langbridge/backend/stores"
	"langbridge/backend/utils"
)

// chatHistoryLimit caps a single read at the newest 50 messages.
const chatHistoryLimit = 50

type ChatController struct {
	Courses       stores.CourseStore
	Conversations stores.ConversationStore
	Cfg           *config.Config
}

func NewChatController(courses stores.CourseStore, conversations stores.ConversationStore, cfg *config.Config) *ChatController {
	return &ChatController{Courses: courses, Conversations: conversations, Cfg: cfg}
}

// GetMessages returns the newest messages in chronological order. The store
// hands them back newest first; the reversal here is part of the contract.
// Any valid account may read: course chat is open, enrollment is not
// checked.
func (chc *ChatController) GetMessages(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil {
		return utils.Fail(c, chc.Cfg, utils.ValidationError("Invalid course id", err))
	}

	if _, err := chc.Courses.ByID(c.Context(), uint(courseID)); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.Fail(c, chc.Cfg, utils.NotFoundError("Course not found"))
		}
		return utils.Fail(c, chc.Cfg, utils.StoreError("Error fetching chat messages", err))
	}

	messages, err := chc.Conversations.Messages(c.Context(), uint(courseID), chatHistoryLimit)
	if err != nil {
		return utils.Fail(c, chc.Cfg, utils.StoreError("Error fetching chat messages", err))
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return utils.Success(c, fiber.StatusOK, messages)
}

type MessageInput struct {
	Message string `json:"message"`
}

// PostMessage appends a message with the caller's identity denormalized into
// it. Messages are immutable once written.
func (chc *ChatController) PostMessage(c *fiber.Ctx) error {
	account, ok := middleware.Account(c)
	if !ok {
		return utils.Fail(c, chc.Cfg, utils.AuthenticationError("Authentication required", nil))
	}
	courseID, err := c.ParamsInt("courseId")
	if err != nil {
		return utils.Fail(c, chc.Cfg, utils.ValidationError("Invalid course id", err))
	}

	var input MessageInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Fail(c, chc.Cfg, utils.ValidationError("Cannot parse JSON", err))
	}
	input.Message = strings.TrimSpace(input.Message)
	if input.Message == "" {
		return utils.Fail(c, chc.Cfg, utils.ValidationError("Message must not be empty", nil))
	}

	if _, err := chc.Courses.ByID(c.Context(), uint(courseID)); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.Fail(c, chc.Cfg, utils.NotFoundError("Course not found"))
		}
		return utils.Fail(c, chc.Cfg, utils.StoreError("Error sending message", err))
	}

	message := models.ChatMessage{
		CourseID:    uint(courseID),
		Message:     input.Message,
		SenderID:    account.ID,
		SenderEmail: account.Email,
		SenderRole:  account.Role,
	}
	if err := chc.Conversations.Append(c.Context(), &message); err != nil {
		return utils.Fail(c, chc.Cfg, utils.StoreError("Error sending message", err))
	}

	return utils.Created(c, message)
}

// DeleteMessage removes a message for its sender or an administrator. The
// existence check runs before the ownership check, so a missing message is
// 404 for everyone.
func (chc *ChatController) DeleteMessage(c *fiber.Ctx) error {
	account, ok := middleware.Account(c)
	if !ok {
		return utils.Fail(c, chc.Cfg, utils.AuthenticationError("Authentication required", nil))
	}
	courseID, err := c.ParamsInt("courseId")
	if err != nil {
		return utils.Fail(c, chc.Cfg, utils.ValidationError("Invalid course id", err))
	}
	messageID := c.Params("messageId")

	message, err := chc.Conversations.Message(c.Context(), uint(courseID), messageID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.Fail(c, chc.Cfg, utils.NotFoundError("Message not found"))
		}
		return utils.Fail(c, chc.Cfg, utils.StoreError("Error deleting message", err))
	}
	if !ownerOrAdmin(account, message.SenderID) {
		return utils.Fail(c, chc.Cfg, utils.PermissionError("Not authorized to delete this message"))
	}

	if err := chc.Conversations.Delete(c.Context(), uint(courseID), messageID); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.Fail(c, chc.Cfg, utils.NotFoundError("Message not found"))
		}
		return utils.Fail(c, chc.Cfg, utils.StoreError("Error deleting message", err))
	}
	return utils.Message(c, fiber.StatusOK, "Message deleted successfully")
}
