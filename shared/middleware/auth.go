package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/plaza-dev/plaza/shared/domain"
	jwt_internal "github.com/plaza-dev/plaza/shared/jwt"
	"github.com/plaza-dev/plaza/shared/logger"
	"github.com/plaza-dev/plaza/shared/utils"
)

// Key to store the member id in the request context
type key int

const MemberIdKey key = 0

const accessTokenCookie = "accessToken"

// Auth resolves the member behind a request from the session token.
type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that rejects requests without a valid token
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			memberId, err := a.extractMemberId(r)
			if err != nil {
				switch err {
				case errNoToken:
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
				case errInvalidClaims:
					logger.Log.Warn("invalid jwt claims")
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				default:
					utils.WriteErrorAndStatusCode(w, err)
				}
				return
			}

			ctx := context.WithValue(r.Context(), MemberIdKey, memberId)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates the member id when the token is valid but lets
// anonymous requests through
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if memberId, err := a.extractMemberId(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), MemberIdKey, memberId))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) extractMemberId(r *http.Request) (domain.MemberId, error) {
	var tokenString string
	if cookie, err := r.Cookie(accessTokenCookie); err == nil {
		tokenString = cookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}
	if tokenString == "" {
		return "", errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", errInvalidClaims
	}
	if domain.CategoryOf(claims.Subject) != domain.CategoryMember {
		return "", errInvalidClaims
	}
	return claims.Subject, nil
}

var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// GetMemberIdFromContext returns the authenticated member id or "".
func GetMemberIdFromContext(r *http.Request) domain.MemberId {
	memberId, _ := r.Context().Value(MemberIdKey).(domain.MemberId)
	return memberId
}

// WithMemberId returns a copy of r carrying memberId, as NeedAuth would.
func WithMemberId(r *http.Request, memberId domain.MemberId) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), MemberIdKey, memberId))
}
