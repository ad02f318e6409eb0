package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// Claims returns the verified access token claims for the request. Only
// valid behind the access token verifier middleware.
func Claims(ctx iris.Context) *AccessToken {
	return jwt.Get(ctx).(*AccessToken)
}

// RequireRole gates a route on the role carried in the access token.
func RequireRole(role string) iris.Handler {
	return func(ctx iris.Context) {
		claims := Claims(ctx)
		if claims.Role != role {
			CreateError(iris.StatusForbidden, "Forbidden", role+" access required", ctx)
			return
		}
		ctx.Next()
	}
}
