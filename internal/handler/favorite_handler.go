package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/service"
)

type favoritePayload struct {
	ImageURL string `json:"image_url"`
	Category string `json:"category"`
	Breed    string `json:"breed"`
}

// CreateFavorite saves a daily image and advances the daily favorite quest.
func (a *API) CreateFavorite(c *gin.Context) {
	var payload favoritePayload
	if !bindJSON(c, &payload, "invalid favorite payload") {
		return
	}

	userID := currentUserID(c)
	favorite, err := a.favorites.Create(service.FavoriteInput{
		UserID:   userID,
		ImageURL: payload.ImageURL,
		Category: payload.Category,
		Breed:    payload.Breed,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrFavoriteImageMissing):
		respondError(c, http.StatusBadRequest, "image_url is required")
		return
	case errors.Is(err, service.ErrFavoriteInvalidCategory):
		respondError(c, http.StatusBadRequest, "category must be dog or cat")
		return
	default:
		respondError(c, http.StatusInternalServerError, "failed to save favorite")
		return
	}

	a.advanceQuest(c, userID, "daily_favorite", time.Now())
	if _, err := a.social.RecordActivity(userID, "favorite", "saved a new favorite"); err != nil {
		c.Error(err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        favorite.PublicID,
		"image_url": favorite.ImageURL,
		"category":  favorite.Category,
		"breed":     favorite.Breed,
		"saved_at":  favorite.SavedAt,
	})
}

// ListFavorites returns the caller's favorites, newest first.
func (a *API) ListFavorites(c *gin.Context) {
	favorites, err := a.favorites.List(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list favorites")
		return
	}

	out := make([]gin.H, 0, len(favorites))
	for _, favorite := range favorites {
		out = append(out, gin.H{
			"id":        favorite.PublicID,
			"image_url": favorite.ImageURL,
			"category":  favorite.Category,
			"breed":     favorite.Breed,
			"saved_at":  favorite.SavedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"favorites": out})
}

// DeleteFavorite removes one of the caller's favorites by public id.
func (a *API) DeleteFavorite(c *gin.Context) {
	err := a.favorites.Delete(currentUserID(c), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "favorite deleted"})
	case errors.Is(err, service.ErrFavoriteNotFound):
		respondError(c, http.StatusNotFound, "favorite not found")
	default:
		respondError(c, http.StatusInternalServerError, "failed to delete favorite")
	}
}
