package controller

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostelhub_backend/internal/inquiry"
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
		&model.Booking{},
	))
	return db
}

// convertApp claims'i enjekte eden bir stub ardından handler'ı kurar
func convertApp(claims *jwt.Claims) *fiber.App {
	app := fiber.New()
	app.Post("/inquiries/:id/convert",
		func(c *fiber.Ctx) error {
			c.Locals("user", claims)
			return c.Next()
		},
		ConvertInquiry)
	return app
}

func TestConvertInquiryInlineBooking(t *testing.T) {
	testDB := newTestDB(t)

	owner := model.User{
		Email:       "owner@acmehostels.com",
		Password:    "hashed",
		Username:    "acme-hostels",
		CompanyName: "Acme Hostels",
		Role:        model.RoleManager,
	}
	require.NoError(t, testDB.Create(&owner).Error)

	hostel := model.Hostel{
		Name:    "Acme Central",
		Type:    model.HostelTypeCoEd,
		City:    "Istanbul",
		Country: "Turkey",
		UserID:  owner.ID,
	}
	require.NoError(t, testDB.Create(&hostel).Error)

	svc := inquiry.NewService(testDB)
	Init(testDB, nil, nil, svc, inquiry.NewAnalytics(testDB), "")

	claims := &jwt.Claims{UserID: owner.ID, Role: string(model.RoleManager)}
	actor := inquiry.Principal{UserID: owner.ID, Role: model.RoleManager}
	app := convertApp(claims)

	newInquiry := func(t *testing.T) *model.Inquiry {
		t.Helper()
		inq, err := svc.Create(inquiry.CreateInput{
			HostelID:     hostel.ID,
			VisitorName:  "Deniz Kaya",
			VisitorEmail: "deniz@example.com",
		})
		require.NoError(t, err)
		return inq
	}

	post := func(t *testing.T, inquiryID string) int {
		t.Helper()
		req := httptest.NewRequest("POST",
			fmt.Sprintf("/inquiries/%s/convert", inquiryID),
			strings.NewReader(`{"duration_months": 3, "monthly_rate": 450}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	t.Run("creates booking from inquiry details", func(t *testing.T) {
		inq := newInquiry(t)
		assert.Equal(t, fiber.StatusOK, post(t, inq.ID))

		var booking model.Booking
		require.NoError(t, testDB.First(&booking, "inquiry_id = ?", inq.ID).Error)
		assert.Equal(t, "Deniz Kaya", booking.GuestName)
		assert.Equal(t, 3, booking.DurationMonths)

		var reloaded model.Inquiry
		require.NoError(t, testDB.First(&reloaded, "id = ?", inq.ID).Error)
		assert.True(t, reloaded.ConvertedToBooking)
		assert.Equal(t, booking.ID, *reloaded.BookingID)
	})

	t.Run("failed conversion leaves no orphan booking", func(t *testing.T) {
		inq := newInquiry(t)
		_, err := svc.UpdateStatus(actor, inq.ID, model.InquiryStatusNotInterested, "")
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, post(t, inq.ID))

		var count int64
		require.NoError(t, testDB.Model(&model.Booking{}).
			Where("inquiry_id = ?", inq.ID).
			Count(&count).Error)
		assert.Zero(t, count)

		var reloaded model.Inquiry
		require.NoError(t, testDB.First(&reloaded, "id = ?", inq.ID).Error)
		assert.False(t, reloaded.ConvertedToBooking)
	})
}
