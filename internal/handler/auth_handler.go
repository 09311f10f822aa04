package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an account with a bcrypt-hashed password and an empty
// profile, then signs the caller in.
func (a *API) Register(c *gin.Context) {
	var payload credentialsPayload
	if !bindJSON(c, &payload, "invalid register payload") {
		return
	}

	username := strings.TrimSpace(payload.Username)
	password := strings.TrimSpace(payload.Password)
	if len(username) < 3 || len(password) < 8 {
		respondError(c, http.StatusBadRequest, "username must be 3+ characters and password 8+")
		return
	}

	var existing db.User
	err := a.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		respondError(c, http.StatusConflict, "username already taken")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusInternalServerError, "failed to check username")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := db.User{Username: username, Password: string(hashed)}
	if err := a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&db.Profile{UserID: user.ID, DisplayName: username}).Error
	}); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	a.signIn(c, user)
}

// Login checks credentials and establishes a session. The response also
// carries a bearer token for endpoints that want header auth.
func (a *API) Login(c *gin.Context) {
	var payload credentialsPayload
	if !bindJSON(c, &payload, "invalid login payload") {
		return
	}

	var user db.User
	if err := a.db.Where("username = ?", strings.TrimSpace(payload.Username)).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	a.signIn(c, user)
}

// Logout clears the session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authed user with their profile.
func (a *API) Me(c *gin.Context) {
	userID := currentUserID(c)

	var user db.User
	if err := a.db.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	var profile db.Profile
	a.db.Where("user_id = ?", userID).First(&profile)

	c.JSON(http.StatusOK, gin.H{
		"id":                user.ID,
		"username":          user.Username,
		"display_name":      profile.DisplayName,
		"avatar_url":        profile.AvatarURL,
		"subscription_tier": profile.SubscriptionTier,
	})
}

type profilePayload struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// UpdateProfile changes the caller's display name and avatar.
func (a *API) UpdateProfile(c *gin.Context) {
	var payload profilePayload
	if !bindJSON(c, &payload, "invalid profile payload") {
		return
	}

	updates := map[string]interface{}{
		"display_name": strings.TrimSpace(payload.DisplayName),
		"avatar_url":   strings.TrimSpace(payload.AvatarURL),
	}
	if err := a.db.Model(&db.Profile{}).
		Where("user_id = ?", currentUserID(c)).
		Updates(updates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

func (a *API) signIn(c *gin.Context, user db.User) {
	session := sessions.Default(c)
	session.Set(userIDContextKey, user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	token, err := a.issueToken(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"token":    token,
	})
}

func (a *API) issueToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": float64(userID),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.jwtSecret))
}

// AuthRequired gates routes behind the cookie session.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(userIDContextKey)
		if userID == nil {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		if id, ok := userID.(uint); ok {
			c.Set(userIDContextKey, id)
			c.Next()
			return
		}
		respondError(c, http.StatusUnauthorized, "authentication required")
		c.Abort()
	}
}
