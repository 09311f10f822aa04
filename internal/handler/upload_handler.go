package handler

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const thumbnailMaxSide = 320

// UploadPetPhoto stores a photo for one of the caller's pets and attaches
// it to the profile. A downscaled thumbnail is written next to the
// original.
func (a *API) UploadPetPhoto(c *gin.Context) {
	petID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no photo in request")
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "only image uploads are allowed")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create upload directory")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	fullPath := filepath.Join(a.uploadDir, name)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save photo")
		return
	}

	if _, err := writeThumbnail(a.uploadDir, name, fullPath); err != nil {
		// the full-size photo is still usable without its thumbnail
		c.Error(err)
	}

	photoURL := a.uploadURL + "/" + name
	if err := a.pets.SetPetPhoto(currentUserID(c), petID, photoURL); err != nil {
		os.Remove(fullPath)
		respondError(c, http.StatusNotFound, "pet not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"photo_url": photoURL,
		"thumb_url": thumbURL(a.uploadURL, name),
	})
}

// writeThumbnail decodes the saved upload and writes a jpeg capped at
// thumbnailMaxSide on its longer edge.
func writeThumbnail(dir, name, fullPath string) (string, error) {
	src, err := os.Open(fullPath)
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	decoded, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode upload: %w", err)
	}

	bounds := decoded.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("empty image")
	}

	scale := 1.0
	if width > height && width > thumbnailMaxSide {
		scale = float64(thumbnailMaxSide) / float64(width)
	} else if height >= width && height > thumbnailMaxSide {
		scale = float64(thumbnailMaxSide) / float64(height)
	}

	thumbWidth := int(float64(width) * scale)
	thumbHeight := int(float64(height) * scale)
	thumb := image.NewRGBA(image.Rect(0, 0, thumbWidth, thumbHeight))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), decoded, bounds, draw.Over, nil)

	thumbName := thumbFileName(name)
	out, err := os.Create(filepath.Join(dir, thumbName))
	if err != nil {
		return "", fmt.Errorf("create thumbnail: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	return thumbName, nil
}

func thumbFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + "_thumb.jpg"
}

func thumbURL(uploadURL, name string) string {
	return uploadURL + "/" + thumbFileName(name)
}
