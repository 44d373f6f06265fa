package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/database"
	"github.com/yamamaalobaid/damascus-tour-guide/helper"
	"github.com/yamamaalobaid/damascus-tour-guide/model"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func chatChannel(chatID uint) string {
	return fmt.Sprintf("chat:%d", chatID)
}

// publishMessage fans a stored message out to websocket subscribers.
func publishMessage(chatID uint, message *model.Message) {
	if redisCli == nil {
		return
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}
	if err := redisCli.Publish(context.Background(), chatChannel(chatID), payload).Err(); err != nil {
		log.Printf("chat publish failed for chat %d: %v", chatID, err)
	}
}

func StartChat(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	input, ok := c.Locals("StartChatInput").(model.StartChatInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	chat := model.Chat{
		PublicCode: uuid.NewString(),
		UserId:     claim.UserId,
		Subject:    input.Subject,
		Status:     constants.CHAT_OPEN,
		Messages: []model.Message{{
			SenderId: claim.UserId,
			Content:  input.Message,
		}},
	}
	if err := db.Create(&chat).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, "", chat)
}

func GetMyChats(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}

	query := db.Model(&model.Chat{})
	switch claim.Role {
	case constants.ROLE_ADMIN:
		// all chats
	case constants.ROLE_AGENT:
		query = query.Where("agent_id = ? OR status = ?", claim.UserId, constants.CHAT_OPEN)
	default:
		query = query.Where("user_id = ?", claim.UserId)
	}

	var chats []model.Chat
	err = query.Preload("User").Preload("Agent").
		Order("updated_at DESC").
		Find(&chats).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, chats)
}

// loadChatForCaller resolves the chat and checks the caller may see it.
func loadChatForCaller(c *fiber.Ctx, id uint) (*model.Chat, *model.TokenClaim, error) {
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return nil, nil, err
	}
	var chat model.Chat
	if err := database.DB.First(&chat, id).Error; err != nil {
		return nil, &claim, err
	}
	isParticipant := chat.UserId == claim.UserId ||
		(chat.AgentId != nil && *chat.AgentId == claim.UserId)
	isStaff := claim.Role == constants.ROLE_ADMIN || claim.Role == constants.ROLE_AGENT
	if !isParticipant && !isStaff {
		return nil, &claim, fmt.Errorf("forbidden")
	}
	return &chat, &claim, nil
}

func GetChatMessages(c *fiber.Ctx) error {
	db := database.DB
	id, _ := c.Locals("inputId").(uint)

	chat, claim, err := loadChatForCaller(c, id)
	if err != nil {
		if claim == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
		}
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_CHAT_NOT_FOUND, err)
	}

	var messages []model.Message
	err = db.Where("chat_id = ?", chat.ID).
		Preload("Sender").
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	// Everything sent by the other side is now read.
	db.Model(&model.Message{}).
		Where("chat_id = ? AND sender_id <> ? AND is_read = ?", chat.ID, claim.UserId, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"chat":     chat,
		"messages": messages,
	})
}

func SendMessage(c *fiber.Ctx) error {
	db := database.DB
	id, _ := c.Locals("inputId").(uint)
	input, ok := c.Locals("SendMessageInput").(model.SendMessageInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, nil)
	}

	chat, claim, err := loadChatForCaller(c, id)
	if err != nil {
		if claim == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
		}
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_CHAT_NOT_FOUND, err)
	}
	if chat.Status == constants.CHAT_CLOSED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MSG_CHAT_CLOSED, nil)
	}

	message := model.Message{
		ChatId:   chat.ID,
		SenderId: claim.UserId,
		Content:  input.Content,
	}
	if err := db.Create(&message).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}

	// An agent's first reply claims the chat.
	updates := map[string]interface{}{"updated_at": time.Now()}
	if claim.Role == constants.ROLE_AGENT && chat.AgentId == nil {
		updates["agent_id"] = claim.UserId
		updates["status"] = constants.CHAT_ACTIVE
	}
	db.Model(chat).Updates(updates)

	publishMessage(chat.ID, &message)
	return utils.SuccessMessage(c, fiber.StatusCreated, "", message)
}

// GetSupportQueue lists unclaimed open chats for agents, oldest first.
func GetSupportQueue(c *fiber.Ctx) error {
	db := database.DB

	var chats []model.Chat
	err := db.Where("status = ? AND agent_id IS NULL", constants.CHAT_OPEN).
		Preload("User").
		Order("created_at ASC").
		Find(&chats).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, chats)
}

// AcceptSupportChat claims an open chat for the calling agent. The guard
// in the WHERE clause keeps two agents from claiming the same chat.
func AcceptSupportChat(c *fiber.Ctx) error {
	db := database.DB
	claim, err := helper.GetUserFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
	}
	id, _ := c.Locals("inputId").(uint)

	res := db.Model(&model.Chat{}).
		Where("id = ? AND status = ? AND agent_id IS NULL", id, constants.CHAT_OPEN).
		Updates(map[string]interface{}{
			"agent_id": claim.UserId,
			"status":   constants.CHAT_ACTIVE,
		})
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, res.Error)
	}
	if res.RowsAffected == 0 {
		var chat model.Chat
		if err := db.First(&chat, id).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_CHAT_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.MSG_CHAT_TAKEN, nil)
	}

	var chat model.Chat
	if err := db.Preload("User").First(&chat, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_CHAT_ACCEPTED, chat)
}

func CloseChat(c *fiber.Ctx) error {
	db := database.DB
	id, _ := c.Locals("inputId").(uint)

	chat, claim, err := loadChatForCaller(c, id)
	if err != nil {
		if claim == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
		}
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_CHAT_NOT_FOUND, err)
	}

	now := time.Now()
	err = db.Model(chat).Updates(map[string]interface{}{
		"status":    constants.CHAT_CLOSED,
		"closed_at": now,
	}).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.MSG_INTERNAL_ERROR, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, constants.MSG_CHAT_CLOSED, nil)
}
