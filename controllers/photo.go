package controllers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
	"go.mongodb.org/mongo-driver/bson"

	"backend/store"
)

const maxPhotoSize = 5 * 1024 * 1024

// UploadProductPhoto stores the product photo under uploads/products and a
// 200px preview next to it, then records both URLs on the product.
func (ct *Controller) UploadProductPhoto(c *gin.Context) {
	productID := c.Param("id")
	if _, err := ct.store.Product(c.Request.Context(), productID); err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	if file.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds the 5MB limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file format: " + ext})
		return
	}

	dir := "./uploads/products"
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer src.Close()

	var img image.Image
	if ext == ".png" {
		img, err = png.Decode(src)
	} else {
		img, err = jpeg.Decode(src)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to decode image"})
		return
	}

	base := fmt.Sprintf("%s_%d", productID, time.Now().Unix())
	fullName := base + ".jpg"
	previewName := base + "_preview.jpg"

	// Full image capped at 800px wide, preview at 200px.
	if err := savePhoto(filepath.Join(dir, fullName), resize.Resize(800, 0, img, resize.Lanczos3)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
		return
	}
	if err := savePhoto(filepath.Join(dir, previewName), resize.Resize(200, 0, img, resize.Lanczos3)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preview"})
		return
	}

	imageURL := "/uploads/products/" + fullName
	previewURL := "/uploads/products/" + previewName
	err = ct.store.UpdateProduct(c.Request.Context(), productID, bson.M{
		"imageurl":   imageURL,
		"previewurl": previewURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record photo URLs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageurl": imageURL, "previewurl": previewURL})
}

func savePhoto(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return jpeg.Encode(out, img, &jpeg.Options{Quality: 80})
}
