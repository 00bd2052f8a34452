package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internal/model"
)

// analyticsRange start/end query parametrelerini çözer; verilmezse son 30 gün
func analyticsRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return start, end, err
		}
		start = parsed
	}
	if e := c.Query("end"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			return start, end, err
		}
		// gün sonuna kadar dahil et
		end = parsed.Add(24*time.Hour - time.Second)
	}
	return start, end, nil
}

func invalidRange(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid date range, expected YYYY-MM-DD",
	})
}

// GetInquiryOverview durum dağılımı ve temel metrikler
func GetInquiryOverview(c *fiber.Ctx) error {
	hostel := c.Locals("hostel").(*model.Hostel)

	start, end, err := analyticsRange(c)
	if err != nil {
		return invalidRange(c)
	}

	overview, err := inquiryAnalytics.GetOverview(hostel.ID, start, end)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(overview)
}

// GetInquiryFunnel dönüşüm hunisi
func GetInquiryFunnel(c *fiber.Ctx) error {
	hostel := c.Locals("hostel").(*model.Hostel)

	start, end, err := analyticsRange(c)
	if err != nil {
		return invalidRange(c)
	}

	funnel, err := inquiryAnalytics.GetFunnel(hostel.ID, start, end)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(funnel)
}

// GetInquirySourcePerformance kaynak bazlı dönüşüm performansı
func GetInquirySourcePerformance(c *fiber.Ctx) error {
	hostel := c.Locals("hostel").(*model.Hostel)

	start, end, err := analyticsRange(c)
	if err != nil {
		return invalidRange(c)
	}

	sources, err := inquiryAnalytics.GetSourcePerformance(hostel.ID, start, end)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(sources)
}

// GetInquiryTeamPerformance atanan kullanıcı bazlı performans
func GetInquiryTeamPerformance(c *fiber.Ctx) error {
	hostel := c.Locals("hostel").(*model.Hostel)

	start, end, err := analyticsRange(c)
	if err != nil {
		return invalidRange(c)
	}

	team, err := inquiryAnalytics.GetTeamPerformance(hostel.ID, start, end)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(team)
}

// GetInquiryDailyTrend günlük inquiry/dönüşüm trendi
func GetInquiryDailyTrend(c *fiber.Ctx) error {
	hostel := c.Locals("hostel").(*model.Hostel)

	start, end, err := analyticsRange(c)
	if err != nil {
		return invalidRange(c)
	}

	trend, err := inquiryAnalytics.GetDailyTrend(hostel.ID, start, end)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(trend)
}
