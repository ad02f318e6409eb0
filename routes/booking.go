package routes

import (
	"time"

	"github.com/AhmedHajAhmed/Homi/services"
	"github.com/AhmedHajAhmed/Homi/utils"

	"github.com/kataras/iris/v12"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type CreateBookingInput struct {
	ListingID uint      `json:"listingId" validate:"required"`
	CheckIn   time.Time `json:"checkIn" validate:"required"`
	CheckOut  time.Time `json:"checkOut" validate:"required"`
	Guests    int       `json:"guests" validate:"required,gte=1,lte=16"`
	Message   string    `json:"message" validate:"max=2000"`
}

func (h *BookingHandler) CreateBooking(ctx iris.Context) {
	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	claims := utils.Claims(ctx)
	booking, err := h.bookings.Create(claims.ID, services.BookingParams{
		ListingID: input.ListingID,
		CheckIn:   input.CheckIn,
		CheckOut:  input.CheckOut,
		Guests:    input.Guests,
		Message:   input.Message,
	})
	if err != nil {
		utils.HandleServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"booking": booking})
}

// GetBookings is scoped by the caller's role: seekers see their own
// requests, hosts see requests against their listings.
func (h *BookingHandler) GetBookings(ctx iris.Context) {
	claims := utils.Claims(ctx)

	bookings, err := h.bookings.ListFor(claims.ID, claims.Role)
	if err != nil {
		utils.HandleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"bookings": bookings})
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=ACCEPTED REJECTED CANCELLED"`
}

func (h *BookingHandler) UpdateBookingStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid booking ID", ctx)
		return
	}

	var input UpdateBookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	claims := utils.Claims(ctx)
	booking, svcErr := h.bookings.UpdateStatus(id, claims.ID, input.Status)
	if svcErr != nil {
		utils.HandleServiceError(svcErr, ctx)
		return
	}
	ctx.JSON(iris.Map{"booking": booking})
}
