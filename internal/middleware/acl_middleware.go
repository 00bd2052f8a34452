package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/utils/jwt"
)

// CheckHostelOwnership hostel'ın sahibi olup olmadığını kontrol eder
func CheckHostelOwnership(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		hostelID := c.Params("id")
		if hostelID == "" {
			hostelID = c.Params("hostel_id")
		}

		var hostel model.Hostel
		if err := db.First(&hostel, hostelID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Hostel not found",
			})
		}

		if hostel.UserID != claims.UserID && claims.Role != string(model.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this hostel",
			})
		}

		c.Locals("hostel", &hostel)
		return c.Next()
	}
}

// CheckInquiryAccess inquiry'nin ait olduğu hostel'ın sahibini doğrular
func CheckInquiryAccess(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		inquiryID := c.Params("id")

		var inq model.Inquiry
		if err := db.Preload("Hostel").First(&inq, "id = ?", inquiryID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Inquiry not found",
			})
		}

		if inq.Hostel.UserID != claims.UserID && claims.Role != string(model.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this inquiry",
			})
		}

		return c.Next()
	}
}

// CheckFollowUpAccess follow-up'ın bağlı olduğu inquiry üzerinden
// hostel sahibini doğrular
func CheckFollowUpAccess(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		followUpID := c.Params("followup_id")

		var followUp model.InquiryFollowUp
		if err := db.Preload("Inquiry.Hostel").First(&followUp, followUpID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Follow-up not found",
			})
		}

		if followUp.Inquiry.Hostel.UserID != claims.UserID && claims.Role != string(model.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this follow-up",
			})
		}

		return c.Next()
	}
}
