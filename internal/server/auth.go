package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/chrisdamba/foodinsights/internal/analytics"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const callerKey = "caller"

// Claims carries the identity the analytics endpoint needs. Customers are
// identified by user_id, falling back to the subject.
type Claims struct {
	Role     string `json:"role"`
	TenantID string `json:"tenant_id,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// Caller turns the claims into an analytics caller. It fails closed on an
// unknown role or a missing tenant or customer id.
func (c *Claims) Caller() (analytics.Caller, error) {
	userID := c.UserID
	if userID == "" {
		userID = c.Subject
	}
	return analytics.ParseCaller(c.Role, c.TenantID, userID)
}

// IssueToken signs claims with HS256. A zero ttl means no expiry.
func IssueToken(secret string, claims Claims, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// AuthMiddleware validates the bearer token and stores the resulting caller
// in the gin context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, http.StatusUnauthorized, errors.New("invalid token format"))
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			log.Printf("Rejected token: %v", err)
			abortWithError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			return
		}

		caller, err := claims.Caller()
		if err != nil {
			abortWithError(c, http.StatusForbidden, err)
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// CallerFrom returns the caller stored by AuthMiddleware.
func CallerFrom(c *gin.Context) (analytics.Caller, error) {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil, fmt.Errorf("%w: no caller in request", analytics.ErrUnknownRole)
	}
	caller, ok := v.(analytics.Caller)
	if !ok {
		return nil, fmt.Errorf("%w: %T", analytics.ErrUnknownRole, v)
	}
	return caller, nil
}

func abortWithError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, analytics.NewErrorResult(err))
}
