package routes

import (
	"github.com/AhmedHajAhmed/Homi/services"
	"github.com/AhmedHajAhmed/Homi/utils"

	"github.com/kataras/iris/v12"
)

type MessageHandler struct {
	messages *services.MessageService
	// Seconds clients should wait between unread-count polls.
	pollInterval int
}

func NewMessageHandler(messages *services.MessageService, pollIntervalSeconds int) *MessageHandler {
	return &MessageHandler{messages: messages, pollInterval: pollIntervalSeconds}
}

type SendMessageInput struct {
	BookingID uint   `json:"bookingId" validate:"required"`
	Content   string `json:"content" validate:"required,max=5000"`
}

func (h *MessageHandler) SendMessage(ctx iris.Context) {
	var input SendMessageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	claims := utils.Claims(ctx)
	message, err := h.messages.Send(input.BookingID, claims.ID, input.Content)
	if err != nil {
		utils.HandleServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": message})
}

// GetMessages returns a booking's thread oldest-first. Viewing marks the
// other participant's messages as read.
func (h *MessageHandler) GetMessages(ctx iris.Context) {
	bookingID, err := ctx.URLParamInt("bookingId")
	if err != nil || bookingID <= 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "bookingId is required", ctx)
		return
	}

	claims := utils.Claims(ctx)
	messages, svcErr := h.messages.Thread(uint(bookingID), claims.ID)
	if svcErr != nil {
		utils.HandleServiceError(svcErr, ctx)
		return
	}
	ctx.JSON(iris.Map{"messages": messages})
}

func (h *MessageHandler) UnreadCount(ctx iris.Context) {
	claims := utils.Claims(ctx)

	count, err := h.messages.UnreadCount(claims.ID, claims.Role)
	if err != nil {
		utils.HandleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{
		"count":               count,
		"pollIntervalSeconds": h.pollInterval,
	})
}
