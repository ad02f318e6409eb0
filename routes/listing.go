package routes

import (
	"strconv"
	"time"

	"github.com/AhmedHajAhmed/Homi/services"
	"github.com/AhmedHajAhmed/Homi/storage"
	"github.com/AhmedHajAhmed/Homi/utils"

	"github.com/kataras/iris/v12"
)

type ListingHandler struct {
	listings *services.ListingService
}

func NewListingHandler(listings *services.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

type CreateListingInput struct {
	Title         string          `json:"title" validate:"required,max=256"`
	Description   string          `json:"description" validate:"required"`
	Location      string          `json:"location" validate:"required,max=256"`
	Price         float64         `json:"price" validate:"required,gt=0"`
	MaxGuests     int             `json:"maxGuests" validate:"required,gte=1,lte=16"`
	Amenities     map[string]bool `json:"amenities"`
	Photos        []string        `json:"photos" validate:"omitempty,dive,url"`
	AvailableFrom time.Time       `json:"availableFrom" validate:"required"`
	AvailableTo   time.Time       `json:"availableTo" validate:"required"`
}

func (h *ListingHandler) CreateListing(ctx iris.Context) {
	var input CreateListingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	claims := utils.Claims(ctx)
	listing, err := h.listings.Create(claims.ID, services.ListingParams{
		Title:         input.Title,
		Description:   input.Description,
		Location:      input.Location,
		Price:         input.Price,
		MaxGuests:     input.MaxGuests,
		Amenities:     input.Amenities,
		Photos:        input.Photos,
		AvailableFrom: input.AvailableFrom,
		AvailableTo:   input.AvailableTo,
	})
	if err != nil {
		utils.HandleServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"listing": listing})
}

// GetListings is public: location is a case-insensitive substring match,
// prices are inclusive bounds.
func (h *ListingHandler) GetListings(ctx iris.Context) {
	filter := storage.ListingFilter{
		Location: ctx.URLParamDefault("location", ""),
	}

	if raw := ctx.URLParam("minPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "minPrice must be a number", ctx)
			return
		}
		filter.MinPrice = &price
	}
	if raw := ctx.URLParam("maxPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "maxPrice must be a number", ctx)
			return
		}
		filter.MaxPrice = &price
	}

	listings, err := h.listings.List(filter)
	if err != nil {
		utils.HandleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"listings": listings})
}

func (h *ListingHandler) GetListing(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid listing ID", ctx)
		return
	}

	listing, svcErr := h.listings.Get(id)
	if svcErr != nil {
		utils.HandleServiceError(svcErr, ctx)
		return
	}
	ctx.JSON(iris.Map{"listing": listing})
}

type UpdateListingInput struct {
	Title         *string         `json:"title" validate:"omitempty,max=256"`
	Description   *string         `json:"description"`
	Location      *string         `json:"location" validate:"omitempty,max=256"`
	Price         *float64        `json:"price" validate:"omitempty,gt=0"`
	MaxGuests     *int            `json:"maxGuests" validate:"omitempty,gte=1,lte=16"`
	Amenities     map[string]bool `json:"amenities"`
	Photos        []string        `json:"photos" validate:"omitempty,dive,url"`
	AvailableFrom *time.Time      `json:"availableFrom"`
	AvailableTo   *time.Time      `json:"availableTo"`
}

func (h *ListingHandler) UpdateListing(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid listing ID", ctx)
		return
	}

	var input UpdateListingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	claims := utils.Claims(ctx)
	listing, svcErr := h.listings.Update(id, claims.ID, services.ListingUpdate{
		Title:         input.Title,
		Description:   input.Description,
		Location:      input.Location,
		Price:         input.Price,
		MaxGuests:     input.MaxGuests,
		Amenities:     input.Amenities,
		Photos:        input.Photos,
		AvailableFrom: input.AvailableFrom,
		AvailableTo:   input.AvailableTo,
	})
	if svcErr != nil {
		utils.HandleServiceError(svcErr, ctx)
		return
	}
	ctx.JSON(iris.Map{"listing": listing})
}

func (h *ListingHandler) DeleteListing(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid listing ID", ctx)
		return
	}

	claims := utils.Claims(ctx)
	if svcErr := h.listings.Delete(id, claims.ID); svcErr != nil {
		utils.HandleServiceError(svcErr, ctx)
		return
	}
	ctx.JSON(iris.Map{"deleted": true})
}
