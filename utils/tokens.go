package utils

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var bgContext = context.Background()

// AccessToken is the claim set carried by every authenticated request.
type AccessToken struct {
	ID    uint   `json:"ID"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

const AuthCookieName = "token"

// TokenSigner issues access/refresh token pairs. Refresh tokens are
// whitelisted in redis for their lifetime and removed on rotation, so a
// consumed or revoked token cannot be replayed.
type TokenSigner struct {
	accessSigner  *jwt.Signer
	refreshSigner *jwt.Signer
	accessTTL     time.Duration
	refreshTTL    time.Duration
	redis         *redis.Client
}

func NewTokenSigner(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, rdb *redis.Client) *TokenSigner {
	return &TokenSigner{
		accessSigner:  jwt.NewSigner(jwt.HS256, accessSecret, accessTTL),
		refreshSigner: jwt.NewSigner(jwt.HS256, refreshSecret, refreshTTL),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		redis:         rdb,
	}
}

func (t *TokenSigner) AccessTTL() time.Duration {
	return t.accessTTL
}

func (t *TokenSigner) CreateTokenPair(id uint, email, role string) (*jwt.TokenPair, error) {
	accessToken, err := t.accessSigner.Sign(AccessToken{
		ID:    id,
		Email: email,
		Role:  role,
	})
	if err != nil {
		return nil, err
	}

	refreshToken, err := t.refreshSigner.Sign(jwt.Claims{
		Subject: strconv.FormatUint(uint64(id), 10),
	})
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	if t.redis != nil {
		t.redis.Set(bgContext, string(refreshToken), "true", t.refreshTTL+5*time.Minute)
	}

	return &tokenPair, nil
}

// ConsumeRefreshToken checks the whitelist and removes the token so each
// refresh token is usable once. The error reports an absent token; a nil
// error with false means the token was present but no longer valid.
func (t *TokenSigner) ConsumeRefreshToken(token string) (bool, error) {
	if t.redis == nil {
		return true, nil
	}
	valid, err := t.redis.Get(bgContext, token).Result()
	if err != nil {
		return false, err
	}
	t.redis.Del(bgContext, token)
	return valid == "true", nil
}

func (t *TokenSigner) RevokeRefreshToken(token string) {
	if t.redis != nil {
		t.redis.Del(bgContext, token)
	}
}

// SetAuthCookie mirrors the access token into an HTTP-only cookie for
// browser clients; API clients keep using the Authorization header.
func SetAuthCookie(ctx iris.Context, token string, ttl time.Duration) {
	ctx.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(ttl),
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearAuthCookie(ctx iris.Context) {
	ctx.RemoveCookie(AuthCookieName)
}

// CookieTokenExtractor lets the JWT verifier pick the token up from the
// auth cookie when no Authorization header is present.
func CookieTokenExtractor(ctx iris.Context) string {
	return ctx.GetCookie(AuthCookieName)
}
