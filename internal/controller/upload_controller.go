package controller

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/utils/jwt"
)

// UploadHostelImage hostel için resim yükler (S3'e)
func UploadHostelImage(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	hostel := c.Locals("hostel").(*model.Hostel)

	var imageCount int64
	db.Model(&model.HostelImage{}).
		Where("hostel_id = ?", hostel.ID).
		Count(&imageCount)

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	imageURL, err := fileStore.UploadImage(file, claims.UserID, hostel.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Could not upload image: %v", err),
		})
	}

	image := model.HostelImage{
		HostelID: hostel.ID,
		URL:      imageURL,
		Order:    int(imageCount),
		IsCover:  imageCount == 0, // İlk resim kapak olsun
	}

	if err := db.Create(&image).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save image record",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Image uploaded successfully",
		"image":   image,
	})
}

// DeleteHostelImage hostel resmini siler
func DeleteHostelImage(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	imageIDStr := c.Params("image_id")
	imageID, err := strconv.ParseUint(imageIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid image ID",
		})
	}

	var image model.HostelImage
	if err := db.Preload("Hostel").First(&image, imageID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Image not found",
		})
	}

	if image.Hostel.UserID != claims.UserID && claims.Role != string(model.RoleAdmin) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to delete this image",
		})
	}

	// S3'teki dosyayı sil, hata olsa bile kaydı kaldır
	if err := fileStore.DeleteImage(image.URL); err != nil {
		log.Printf("Could not delete file from storage: %v", err)
	}

	if err := db.Delete(&image).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete image",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
