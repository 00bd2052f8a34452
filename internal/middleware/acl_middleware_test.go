package middleware

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/utils/jwt"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Her test kendi isimli in-memory veritabanını kullanır
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Hostel{},
		&model.Inquiry{},
		&model.InquiryFollowUp{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, username string) model.User {
	t.Helper()
	user := model.User{
		Email:       email,
		Password:    "hashed",
		Username:    username,
		CompanyName: "Test Hostels",
		Role:        model.RoleManager,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// engagementApp claims'i enjekte eden bir stub ardından middleware'i kurar
func engagementApp(db *gorm.DB, claims *jwt.Claims) *fiber.App {
	app := fiber.New()
	app.Put("/inquiries/followups/:followup_id/engagement",
		func(c *fiber.Ctx) error {
			c.Locals("user", claims)
			return c.Next()
		},
		CheckFollowUpAccess(db),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
	return app
}

func TestCheckFollowUpAccess(t *testing.T) {
	db := newTestDB(t)

	owner := seedUser(t, db, "owner@acmehostels.com", "acme-hostels")
	intruder := seedUser(t, db, "other@otherhostels.com", "other-hostels")

	hostel := model.Hostel{
		Name:    "Acme Central",
		Type:    model.HostelTypeCoEd,
		City:    "Istanbul",
		Country: "Turkey",
		UserID:  owner.ID,
	}
	require.NoError(t, db.Create(&hostel).Error)

	inq := model.Inquiry{
		HostelID:    hostel.ID,
		VisitorName: "Deniz Kaya",
	}
	require.NoError(t, db.Create(&inq).Error)

	followUp := model.InquiryFollowUp{
		InquiryID:      inq.ID,
		FollowedUpBy:   owner.ID,
		ContactMethod:  model.ContactMethodEmail,
		ContactOutcome: model.OutcomeEmailSent,
		AttemptedAt:    time.Now(),
		Notes:          "sent availability details",
		AttemptNumber:  1,
	}
	require.NoError(t, db.Create(&followUp).Error)

	url := fmt.Sprintf("/inquiries/followups/%d/engagement", followUp.ID)

	t.Run("owner can access", func(t *testing.T) {
		app := engagementApp(db, &jwt.Claims{UserID: owner.ID, Role: string(model.RoleManager)})
		resp, err := app.Test(httptest.NewRequest("PUT", url, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("other tenant is rejected", func(t *testing.T) {
		app := engagementApp(db, &jwt.Claims{UserID: intruder.ID, Role: string(model.RoleManager)})
		resp, err := app.Test(httptest.NewRequest("PUT", url, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		app := engagementApp(db, &jwt.Claims{UserID: intruder.ID, Role: string(model.RoleAdmin)})
		resp, err := app.Test(httptest.NewRequest("PUT", url, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("unknown follow-up", func(t *testing.T) {
		app := engagementApp(db, &jwt.Claims{UserID: owner.ID, Role: string(model.RoleManager)})
		resp, err := app.Test(httptest.NewRequest("PUT", "/inquiries/followups/9999/engagement", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
