package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ringsizer/storefront/internal/api/handler/v1/response"
	"github.com/ringsizer/storefront/internal/pkg/jwthelper"
)

const ContextKeyUserID = "userID"

var errMissingToken = errors.New("missing bearer token")

type Authenticator struct {
	key []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{key: []byte(signingKey)}
}

// VerifyJWT rejects requests without a valid session token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, err := a.userID(ctx)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(ContextKeyUserID, userID)
		ctx.Next()
	}
}

// OptionalJWT identifies the caller when a valid token is present and lets anonymous
// requests through.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if userID, err := a.userID(ctx); err == nil {
			ctx.Set(ContextKeyUserID, userID)
		}
		ctx.Next()
	}
}

func (a *Authenticator) userID(ctx *gin.Context) (int64, error) {
	token := bearerToken(ctx)
	if token == "" {
		return 0, errMissingToken
	}

	claims, err := jwthelper.ParseToken(a.key, token)
	if err != nil {
		return 0, err
	}

	return claims.UserID()
}

// bearerToken reads the Authorization header, falling back to the token query parameter
// for websocket clients that cannot set headers.
func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ctx.Query("token")
}
