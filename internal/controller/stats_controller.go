package controller

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/email"
	"hostelhub_backend/pkg/utils/jwt"
)

// DashboardStats genel dashboard istatistikleri
type DashboardStats struct {
	TotalHostels      int64            `json:"total_hostels"`
	ActiveHostels     int64            `json:"active_hostels"`
	TotalViews        int64            `json:"total_views"`
	TotalInquiries    int64            `json:"total_inquiries"`
	UnreadInquiries   int64            `json:"unread_inquiries"`
	ConvertedThisWeek int64            `json:"converted_this_week"`
	TopHostels        []TopHostel      `json:"top_hostels"`
	DailyStats        []DailyStat      `json:"daily_stats"`
	HostelTypeStats   []HostelTypeStat `json:"hostel_type_stats"`
}

type TopHostel struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Type      string `json:"type"`
	Views     int64  `json:"views"`
	Inquiries int64  `json:"inquiries"`
}

type DailyStat struct {
	Date         string `json:"date"`
	Views        int64  `json:"views"`
	NewInquiries int64  `json:"new_inquiries"`
}

type HostelTypeStat struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
	Views int64  `json:"views"`
}

const ViewCooldown = 24 * time.Hour // Aynı IP için bekleme süresi

// GetDashboardStats dashboard istatistiklerini getirir
func GetDashboardStats(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var stats DashboardStats

	// Toplam ve aktif hostel sayısı
	db.Model(&model.Hostel{}).
		Where("user_id = ?", claims.UserID).
		Count(&stats.TotalHostels)

	db.Model(&model.Hostel{}).
		Where("user_id = ? AND is_active = ?", claims.UserID, true).
		Count(&stats.ActiveHostels)

	// Toplam görüntülenme
	db.Model(&model.HostelView{}).
		Joins("JOIN hostels ON hostel_views.hostel_id = hostels.id").
		Where("hostels.user_id = ?", claims.UserID).
		Count(&stats.TotalViews)

	// Inquiry sayıları
	db.Model(&model.Inquiry{}).
		Joins("JOIN hostels ON inquiries.hostel_id = hostels.id").
		Where("hostels.user_id = ?", claims.UserID).
		Count(&stats.TotalInquiries)

	db.Model(&model.Inquiry{}).
		Joins("JOIN hostels ON inquiries.hostel_id = hostels.id").
		Where("hostels.user_id = ? AND inquiries.read_status = ?", claims.UserID, false).
		Count(&stats.UnreadInquiries)

	db.Model(&model.Inquiry{}).
		Joins("JOIN hostels ON inquiries.hostel_id = hostels.id").
		Where("hostels.user_id = ? AND inquiries.converted_to_booking = ? AND inquiries.converted_at > ?",
			claims.UserID, true, time.Now().AddDate(0, 0, -7)).
		Count(&stats.ConvertedThisWeek)

	// En çok görüntülenen 5 hostel
	var topHostels []TopHostel
	db.Table("hostels").
		Select("hostels.id, hostels.name, hostels.city, hostels.type, COUNT(hostel_views.id) as views").
		Joins("LEFT JOIN hostel_views ON hostels.id = hostel_views.hostel_id").
		Where("hostels.user_id = ? AND hostels.is_active = ?", claims.UserID, true).
		Group("hostels.id").
		Order("views DESC").
		Limit(5).
		Scan(&topHostels)

	for i := range topHostels {
		db.Model(&model.Inquiry{}).
			Where("hostel_id = ?", topHostels[i].ID).
			Count(&topHostels[i].Inquiries)
	}
	stats.TopHostels = topHostels

	// Son 7 günün istatistikleri
	var dailyStats []DailyStat
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		var stat DailyStat
		stat.Date = date.Format("2006-01-02")

		db.Model(&model.HostelView{}).
			Joins("JOIN hostels ON hostel_views.hostel_id = hostels.id").
			Where("hostels.user_id = ? AND DATE(hostel_views.created_at) = ?",
				claims.UserID, date.Format("2006-01-02")).
			Count(&stat.Views)

		db.Model(&model.Inquiry{}).
			Joins("JOIN hostels ON inquiries.hostel_id = hostels.id").
			Where("hostels.user_id = ? AND DATE(inquiries.created_at) = ?",
				claims.UserID, date.Format("2006-01-02")).
			Count(&stat.NewInquiries)

		dailyStats = append(dailyStats, stat)
	}
	stats.DailyStats = dailyStats

	// Hostel türü dağılımı
	var typeStats []HostelTypeStat
	db.Table("hostels").
		Select("hostels.type, COUNT(DISTINCT hostels.id) as count, COUNT(hostel_views.id) as views").
		Joins("LEFT JOIN hostel_views ON hostels.id = hostel_views.hostel_id").
		Where("hostels.user_id = ?", claims.UserID).
		Group("hostels.type").
		Scan(&typeStats)
	stats.HostelTypeStats = typeStats

	return c.JSON(stats)
}

// RecordHostelView hostel görüntülenmesini kaydeder
func RecordHostelView(c *fiber.Ctx) error {
	hostelIDStr := c.Params("id")
	hostelID, err := strconv.ParseUint(hostelIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid hostel ID",
		})
	}

	var hostel model.Hostel
	if err := db.First(&hostel, hostelID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Hostel not found",
		})
	}

	ip := c.IP()
	userAgent := c.Get("User-Agent")

	sessionID := c.Get("X-Session-ID")
	if sessionID == "" {
		sessionID = fmt.Sprintf("%s_%s", ip, time.Now().Format("20060102"))
	}

	var userID *uint
	if claims, ok := c.Locals("user").(*jwt.Claims); ok {
		userID = &claims.UserID
	}

	// Son 24 saat içinde aynı IP'den görüntüleme varsa yeni kayıt atma
	var lastView model.HostelView
	result := db.Where(
		"hostel_id = ? AND ip = ? AND created_at > ?",
		hostelID,
		ip,
		time.Now().Add(-ViewCooldown),
	).First(&lastView)

	if result.RowsAffected == 0 {
		view := model.HostelView{
			HostelID:  uint(hostelID),
			UserID:    userID,
			IP:        ip,
			SessionID: sessionID,
			UserAgent: userAgent,
			ViewedAt:  time.Now(),
		}

		if err := db.Create(&view).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not record view",
			})
		}
	}

	return c.SendStatus(fiber.StatusOK)
}

// SendInquiryStatsEmail haftalık/aylık inquiry özetini mail atar
func SendInquiryStatsEmail(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	statType := c.Query("type", "weekly") // weekly veya monthly

	if email.GlobalEmailService == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Email service not initialized",
		})
	}

	var startDate time.Time
	if statType == "monthly" {
		startDate = time.Now().AddDate(0, -1, 0)
	} else {
		startDate = time.Now().AddDate(0, 0, -7)
	}

	var user model.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var total, converted int64
	db.Model(&model.Inquiry{}).
		Joins("JOIN hostels ON inquiries.hostel_id = hostels.id").
		Where("hostels.user_id = ? AND inquiries.created_at >= ?", claims.UserID, startDate).
		Count(&total)

	db.Model(&model.Inquiry{}).
		Joins("JOIN hostels ON inquiries.hostel_id = hostels.id").
		Where("hostels.user_id = ? AND inquiries.created_at >= ? AND inquiries.converted_to_booking = ?",
			claims.UserID, startDate, true).
		Count(&converted)

	var rate float64
	if total > 0 {
		rate = float64(converted) / float64(total) * 100
	}

	err := email.GlobalEmailService.SendInquiryStatsEmail(
		user.Email,
		user.CompanyName,
		statType,
		total,
		converted,
		rate,
		startDate,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Error sending stats email: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s stats email sent successfully", statType),
	})
}
