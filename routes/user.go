package routes

import (
	"strconv"

	"github.com/AhmedHajAhmed/Homi/models"
	"github.com/AhmedHajAhmed/Homi/services"
	"github.com/AhmedHajAhmed/Homi/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

type AuthHandler struct {
	auth   *services.AuthService
	signer *utils.TokenSigner
}

func NewAuthHandler(auth *services.AuthService, signer *utils.TokenSigner) *AuthHandler {
	return &AuthHandler{auth: auth, signer: signer}
}

type RegisterUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=256"`
	Name     string `json:"name" validate:"required,max=256"`
	Role     string `json:"role" validate:"required,oneof=seeker host"`
	Bio      string `json:"bio" validate:"max=2000"`
	Phone    string `json:"phone" validate:"max=32"`
}

func (h *AuthHandler) Register(ctx iris.Context) {
	var input RegisterUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	user, err := h.auth.Signup(services.SignupParams{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Role:     input.Role,
		Bio:      input.Bio,
		Phone:    input.Phone,
	})
	if err != nil {
		utils.HandleServiceError(err, ctx)
		return
	}

	h.returnUser(user, iris.StatusCreated, ctx)
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(ctx iris.Context) {
	var input LoginUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	user, err := h.auth.Login(input.Email, input.Password)
	if err != nil {
		utils.HandleServiceError(err, ctx)
		return
	}

	h.returnUser(user, iris.StatusOK, ctx)
}

// Refresh rotates a whitelisted refresh token into a fresh token pair.
// The refresh verifier middleware has already checked the signature.
func (h *AuthHandler) Refresh(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)

	valid, err := h.signer.ConsumeRefreshToken(string(token.Token))
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if !valid {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Refresh token has been revoked", ctx)
		return
	}

	userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user, err := h.auth.Get(uint(userID))
	if err != nil {
		utils.HandleServiceError(err, ctx)
		return
	}

	h.returnUser(user, iris.StatusOK, ctx)
}

func (h *AuthHandler) Logout(ctx iris.Context) {
	var input utils.RefreshTokenInput
	if err := ctx.ReadJSON(&input); err == nil && input.RefreshToken != "" {
		h.signer.RevokeRefreshToken(input.RefreshToken)
	}
	utils.ClearAuthCookie(ctx)
	ctx.JSON(iris.Map{"loggedOut": true})
}

func (h *AuthHandler) Me(ctx iris.Context) {
	claims := utils.Claims(ctx)

	user, err := h.auth.Get(claims.ID)
	if err != nil {
		utils.HandleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"user": user})
}

type UpdateProfileInput struct {
	Name  *string `json:"name" validate:"omitempty,max=256"`
	Bio   *string `json:"bio" validate:"omitempty,max=2000"`
	Phone *string `json:"phone" validate:"omitempty,max=32"`
}

func (h *AuthHandler) UpdateProfile(ctx iris.Context) {
	var input UpdateProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	claims := utils.Claims(ctx)
	user, err := h.auth.UpdateProfile(claims.ID, services.ProfileUpdate{
		Name:  input.Name,
		Bio:   input.Bio,
		Phone: input.Phone,
	})
	if err != nil {
		utils.HandleServiceError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"user": user})
}

// returnUser signs a fresh token pair for the user, mirrors the access
// token into the auth cookie, and writes the auth payload.
func (h *AuthHandler) returnUser(user *models.User, status int, ctx iris.Context) {
	tokenPair, err := h.signer.CreateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.SetAuthCookie(ctx, string(tokenPair.AccessToken), h.signer.AccessTTL())
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{
		"user":         user,
		"token":        string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
