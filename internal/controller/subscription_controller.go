package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/subscription"
	"hostelhub_backend/pkg/utils/jwt"
)

// ListPlans mevcut planları özellikleriyle listeler
func ListPlans(c *fiber.Ctx) error {
	var plans []model.Subscription
	if err := db.Order("price ASC").Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch plans",
		})
	}

	result := make([]fiber.Map, 0, len(plans))
	for _, plan := range plans {
		planType := subscription.DeterminePlanType(plan.Name)
		result = append(result, fiber.Map{
			"id":          plan.ID,
			"name":        plan.Name,
			"description": plan.Description,
			"price":       plan.Price,
			"duration":    plan.Duration,
			"features":    subscription.PlanFeatures[planType],
		})
	}

	return c.JSON(result)
}

// GetMySubscription kullanıcının aktif aboneliğini getirir
func GetMySubscription(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var userSub model.UserSubscription
	err := db.Preload("Subscription").
		Where("user_id = ? AND status = ?", claims.UserID, "active").
		Order("created_at DESC").
		First(&userSub).Error
	if err != nil {
		// Aboneliği olmayan kullanıcı Starter sayılır
		return c.JSON(fiber.Map{
			"plan":     subscription.StarterPlan,
			"features": subscription.PlanFeatures[subscription.StarterPlan],
		})
	}

	planType := subscription.DeterminePlanType(userSub.Subscription.Name)

	return c.JSON(fiber.Map{
		"plan":       planType,
		"features":   subscription.PlanFeatures[planType],
		"status":     userSub.Status,
		"expires_at": userSub.ExpiresAt,
	})
}

// ActivateSubscription kullanıcıya plan atar (admin işlemi)
func ActivateSubscription(c *fiber.Ctx) error {
	input := struct {
		UserID         uint `json:"user_id"`
		SubscriptionID uint `json:"subscription_id"`
	}{}
	if err := c.BodyParser(&input); err != nil || input.UserID == 0 || input.SubscriptionID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var plan model.Subscription
	if err := db.First(&plan, input.SubscriptionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan not found",
		})
	}

	var user model.User
	if err := db.First(&user, input.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	// Önceki aktif abonelikleri pasifleştir
	db.Model(&model.UserSubscription{}).
		Where("user_id = ? AND status = ?", input.UserID, "active").
		Update("status", "cancelled")

	userSub := model.UserSubscription{
		UserID:         input.UserID,
		SubscriptionID: input.SubscriptionID,
		Status:         "active",
		ExpiresAt:      time.Now().AddDate(0, 0, plan.Duration).Format(time.RFC3339),
	}
	if err := db.Create(&userSub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not activate subscription",
		})
	}

	db.Model(&user).Update("subscription_id", plan.ID)

	return c.JSON(fiber.Map{
		"message":      "Subscription activated",
		"subscription": userSub,
	})
}
