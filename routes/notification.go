package routes

import (
	"github.com/AhmedHajAhmed/Homi/services"
	"github.com/AhmedHajAhmed/Homi/utils"

	"github.com/kataras/iris/v12"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) GetNotifications(ctx iris.Context) {
	claims := utils.Claims(ctx)

	notifications, err := h.notifications.ListFor(claims.ID)
	if err != nil {
		utils.HandleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"notifications": notifications})
}

func (h *NotificationHandler) MarkNotificationRead(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid notification ID", ctx)
		return
	}

	claims := utils.Claims(ctx)
	notification, svcErr := h.notifications.MarkRead(id, claims.ID)
	if svcErr != nil {
		utils.HandleServiceError(svcErr, ctx)
		return
	}
	ctx.JSON(iris.Map{"notification": notification})
}
