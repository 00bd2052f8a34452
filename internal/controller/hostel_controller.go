package controller

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/utils/jwt"
)

type HostelInput struct {
	Name        string           `json:"name" validate:"required"`
	Type        model.HostelType `json:"type" validate:"required"`
	Description string           `json:"description"`

	AddressLine string `json:"address_line"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state"`
	Country     string `json:"country" validate:"required"`
	PostalCode  string `json:"postal_code"`

	TotalBeds       int            `json:"total_beds"`
	MonthlyRateFrom float64        `json:"monthly_rate_from"`
	Currency        model.Currency `json:"currency"`
	Amenities       []string       `json:"amenities"`
	IsActive        *bool          `json:"is_active"`
}

func amenitiesJSON(amenities []string) datatypes.JSON {
	if len(amenities) == 0 {
		return nil
	}
	data, _ := json.Marshal(amenities)
	return datatypes.JSON(data)
}

// CreateHostel yeni hostel oluşturur
func CreateHostel(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(HostelInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Name == "" || input.City == "" || input.Country == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name, city and country are required",
		})
	}

	currency := input.Currency
	if currency == "" {
		currency = model.CurrencyUSD
	}

	hostel := model.Hostel{
		Name:            input.Name,
		Type:            input.Type,
		Description:     input.Description,
		UserID:          claims.UserID,
		AddressLine:     input.AddressLine,
		City:            input.City,
		State:           input.State,
		Country:         input.Country,
		PostalCode:      input.PostalCode,
		TotalBeds:       input.TotalBeds,
		MonthlyRateFrom: input.MonthlyRateFrom,
		Currency:        currency,
		Amenities:       amenitiesJSON(input.Amenities),
		IsActive:        true,
	}

	if err := db.Create(&hostel).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create hostel",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(hostel)
}

// ListMyHostels kullanıcının hostel'larını getirir
func ListMyHostels(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var hostels []model.Hostel
	if err := db.Where("user_id = ?", claims.UserID).
		Preload("Images").
		Order("created_at DESC").
		Find(&hostels).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch hostels",
		})
	}

	return c.JSON(hostels)
}

// UpdateHostel hostel bilgilerini günceller (ownership middleware'de kontrol edilir)
func UpdateHostel(c *fiber.Ctx) error {
	hostel := c.Locals("hostel").(*model.Hostel)

	input := new(HostelInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	updates := map[string]interface{}{
		"name":              input.Name,
		"type":              input.Type,
		"description":       input.Description,
		"address_line":      input.AddressLine,
		"city":              input.City,
		"state":             input.State,
		"country":           input.Country,
		"postal_code":       input.PostalCode,
		"total_beds":        input.TotalBeds,
		"monthly_rate_from": input.MonthlyRateFrom,
	}
	if input.Currency != "" {
		updates["currency"] = input.Currency
	}
	if input.Amenities != nil {
		updates["amenities"] = amenitiesJSON(input.Amenities)
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := db.Model(hostel).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update hostel",
		})
	}

	return c.JSON(hostel)
}

// DeleteHostel hostel'ı siler
func DeleteHostel(c *fiber.Ctx) error {
	hostel := c.Locals("hostel").(*model.Hostel)

	if err := db.Delete(hostel).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete hostel",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

// ListUserHostels bir işletmecinin public hostel listesini getirir
func ListUserHostels(c *fiber.Ctx) error {
	username := c.Params("username")

	var user model.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var hostels []model.Hostel
	if err := db.Where("user_id = ? AND is_active = ?", user.ID, true).
		Preload("Images").
		Find(&hostels).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch hostels",
		})
	}

	return c.JSON(fiber.Map{
		"owner":   user.GetPublicProfile(),
		"hostels": hostels,
	})
}

// GetHostelBySlug public hostel sayfası
func GetHostelBySlug(c *fiber.Ctx) error {
	username := c.Params("username")
	hostelSlug := c.Params("hostel_slug")

	var user model.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var hostel model.Hostel
	if err := db.Where("user_id = ? AND slug = ? AND is_active = ?", user.ID, hostelSlug, true).
		Preload("Images").
		First(&hostel).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Hostel not found",
		})
	}

	return c.JSON(fiber.Map{
		"owner":  user.GetPublicProfile(),
		"hostel": hostel,
	})
}
