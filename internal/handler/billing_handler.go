package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/service"
)

type portalPayload struct {
	ReturnURL string `json:"return_url"`
}

// BearerAuthRequired gates routes behind a JWT bearer token. The billing
// endpoints use header auth so the portal can be opened from contexts that
// carry no cookie jar.
func (a *API) BearerAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			respondError(c, http.StatusUnauthorized, "authorization header is required")
			c.Abort()
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(c, http.StatusUnauthorized, "authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(a.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			respondError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondError(c, http.StatusUnauthorized, "invalid token claims")
			c.Abort()
			return
		}
		sub, ok := claims["sub"].(float64)
		if !ok || sub <= 0 {
			respondError(c, http.StatusUnauthorized, "invalid token subject")
			c.Abort()
			return
		}

		c.Set(userIDContextKey, uint(sub))
		c.Next()
	}
}

// CreatePortalSession opens a Stripe billing-portal session for the caller.
func (a *API) CreatePortalSession(c *gin.Context) {
	var payload portalPayload
	if !bindJSON(c, &payload, "invalid portal payload") {
		return
	}

	url, err := a.billing.CreatePortalSession(c.Request.Context(), currentUserID(c), payload.ReturnURL)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"url": url})
	case errors.Is(err, service.ErrReturnURLMissing):
		respondError(c, http.StatusBadRequest, "return_url is required")
	case errors.Is(err, service.ErrNoSubscription):
		respondError(c, http.StatusBadRequest, "no active subscription found")
	case errors.Is(err, service.ErrBillingUnavailable):
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "failed to create portal session")
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "failed to create portal session")
	}
}
