package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/subscription"
	"hostelhub_backend/pkg/utils/jwt"
)

// activePlanType kullanıcının aktif aboneliğinden plan tipini belirler;
// abonelik yoksa Starter kabul edilir
func activePlanType(db *gorm.DB, userID uint) subscription.PlanType {
	var userSub model.UserSubscription
	planType := subscription.StarterPlan

	err := db.Where("user_id = ? AND status = ?", userID, "active").
		Preload("Subscription").
		First(&userSub).Error
	if err == nil {
		planType = subscription.DeterminePlanType(userSub.Subscription.Name)
	}

	return planType
}

func CheckFeatureAccess(db *gorm.DB, feature subscription.Feature) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*jwt.Claims)
		if !ok {
			// Public inquiry formu: hostel sahibinin planına bakılır
			hostelID := c.Params("hostel_id")
			var hostel model.Hostel
			if err := db.First(&hostel, hostelID).Error; err != nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Hostel not found",
				})
			}
			if !subscription.CanUseFeature(activePlanType(db, hostel.UserID), feature) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "This feature requires a higher subscription plan",
				})
			}
			return c.Next()
		}

		if !subscription.CanUseFeature(activePlanType(db, claims.UserID), feature) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "This feature requires a higher subscription plan",
			})
		}

		return c.Next()
	}
}

// CheckHostelLimit plan limitine göre yeni hostel eklenebilir mi kontrol eder
func CheckHostelLimit(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		limits := subscription.GetPlanLimits(activePlanType(db, claims.UserID))

		var currentHostels int64
		db.Model(&model.Hostel{}).Where("user_id = ?", claims.UserID).Count(&currentHostels)

		if int(currentHostels) >= limits.MaxHostels {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You have reached your hostel limit. Please upgrade your plan.",
			})
		}

		return c.Next()
	}
}

// CheckImageLimit plan limitine göre hostel'a yeni resim eklenebilir mi kontrol eder
func CheckImageLimit(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		hostelID := c.Params("hostel_id")

		limits := subscription.GetPlanLimits(activePlanType(db, claims.UserID))

		var imageCount int64
		db.Model(&model.HostelImage{}).Where("hostel_id = ?", hostelID).Count(&imageCount)

		if int(imageCount) >= limits.MaxImagesPerHostel {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":         "You have reached the image limit for this hostel",
				"current_count": imageCount,
				"max_limit":     limits.MaxImagesPerHostel,
			})
		}

		return c.Next()
	}
}
