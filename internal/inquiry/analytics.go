package inquiry

import (
	"log"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/apperror"
)

// Analytics inquiry verisi üzerinde salt okunur gruplu sorgular çalıştırır.
// Tüm raporlar hostel ve [start, end] tarih penceresine göre kapsamlanır.
type Analytics struct {
	db *gorm.DB
}

func NewAnalytics(db *gorm.DB) *Analytics {
	return &Analytics{db: db}
}

type Overview struct {
	Total                  int64                         `json:"total"`
	ByStatus               map[model.InquiryStatus]int64 `json:"by_status"`
	Converted              int64                         `json:"converted"`
	ConversionRate         float64                       `json:"conversion_rate"`
	AvgPriorityScore       float64                       `json:"avg_priority_score"`
	AvgResponseTimeMinutes float64                       `json:"avg_response_time_minutes"`
}

type FunnelStage struct {
	Stage      string  `json:"stage"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Funnel struct {
	Total  int64         `json:"total"`
	Stages []FunnelStage `json:"stages"`
}

type SourcePerformance struct {
	Source                 model.InquirySource `json:"source"`
	Count                  int64               `json:"count"`
	Converted              int64               `json:"converted"`
	ConversionRate         float64             `json:"conversion_rate"`
	AvgPriorityScore       float64             `json:"avg_priority_score"`
	AvgResponseTimeMinutes float64             `json:"avg_response_time_minutes"`
}

type TeamPerformance struct {
	UserID                 uint    `json:"user_id"`
	Username               string  `json:"username"`
	Count                  int64   `json:"count"`
	Converted              int64   `json:"converted"`
	ConversionRate         float64 `json:"conversion_rate"`
	AvgResponseTimeMinutes float64 `json:"avg_response_time_minutes"`
}

type DailyTrendPoint struct {
	Date        string `json:"date"`
	Count       int64  `json:"count"`
	Conversions int64  `json:"conversions"`
}

// round2 raporlama sınırında iki ondalığa yuvarlar
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// rate payda sıfırsa hata yerine 0 döner
func rate(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return round2(float64(num) / float64(den) * 100)
}

func (a *Analytics) scope(hostelID uint, start, end time.Time) *gorm.DB {
	// kolonlar tablo adıyla nitelenir, users join'i olan sorgularda çakışma olmasın
	return a.db.Model(&model.Inquiry{}).
		Where("inquiries.hostel_id = ? AND inquiries.created_at >= ? AND inquiries.created_at <= ?", hostelID, start, end)
}

func (a *Analytics) fail(err error) error {
	log.Printf("inquiry analytics: database error: %v", err)
	return apperror.Internal("database operation failed", err)
}

// GetOverview durum bazlı sayımlar, dönüşüm oranı ve ortalamalar
func (a *Analytics) GetOverview(hostelID uint, start, end time.Time) (*Overview, error) {
	var rows []struct {
		Status model.InquiryStatus
		Count  int64
	}
	if err := a.scope(hostelID, start, end).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, a.fail(err)
	}

	overview := &Overview{ByStatus: make(map[model.InquiryStatus]int64)}
	for _, row := range rows {
		overview.ByStatus[row.Status] = row.Count
		overview.Total += row.Count
	}
	overview.Converted = overview.ByStatus[model.InquiryStatusConverted]
	overview.ConversionRate = rate(overview.Converted, overview.Total)

	var avgs struct {
		AvgPriority float64
		AvgResponse float64
	}
	if err := a.scope(hostelID, start, end).
		Select("COALESCE(AVG(priority_score), 0) as avg_priority, COALESCE(AVG(response_time_minutes), 0) as avg_response").
		Scan(&avgs).Error; err != nil {
		return nil, a.fail(err)
	}
	overview.AvgPriorityScore = round2(avgs.AvgPriority)
	overview.AvgResponseTimeMinutes = round2(avgs.AvgResponse)

	return overview, nil
}

// GetFunnel total → assigned → contacted → interested → converted aşamaları
func (a *Analytics) GetFunnel(hostelID uint, start, end time.Time) (*Funnel, error) {
	counts := []struct {
		stage string
		cond  func(*gorm.DB) *gorm.DB
	}{
		{"total", func(q *gorm.DB) *gorm.DB { return q }},
		{"assigned", func(q *gorm.DB) *gorm.DB { return q.Where("assigned_at IS NOT NULL") }},
		{"contacted", func(q *gorm.DB) *gorm.DB { return q.Where("contacted_at IS NOT NULL") }},
		{"interested", func(q *gorm.DB) *gorm.DB {
			return q.Where("status IN ?", []model.InquiryStatus{model.InquiryStatusInterested, model.InquiryStatusConverted})
		}},
		{"converted", func(q *gorm.DB) *gorm.DB { return q.Where("converted_to_booking = ?", true) }},
	}

	funnel := &Funnel{}
	for _, c := range counts {
		var n int64
		if err := c.cond(a.scope(hostelID, start, end)).Count(&n).Error; err != nil {
			return nil, a.fail(err)
		}
		if c.stage == "total" {
			funnel.Total = n
		}
		funnel.Stages = append(funnel.Stages, FunnelStage{
			Stage: c.stage,
			Count: n,
		})
	}
	for i := range funnel.Stages {
		funnel.Stages[i].Percentage = rate(funnel.Stages[i].Count, funnel.Total)
	}
	return funnel, nil
}

// GetSourcePerformance kaynak bazında performans, dönüşüm oranına göre azalan
func (a *Analytics) GetSourcePerformance(hostelID uint, start, end time.Time) ([]SourcePerformance, error) {
	var perf []SourcePerformance
	err := a.scope(hostelID, start, end).
		Select(`source,
			COUNT(*) as count,
			SUM(CASE WHEN converted_to_booking THEN 1 ELSE 0 END) as converted,
			COALESCE(AVG(priority_score), 0) as avg_priority_score,
			COALESCE(AVG(response_time_minutes), 0) as avg_response_time_minutes`).
		Group("source").
		Scan(&perf).Error
	if err != nil {
		return nil, a.fail(err)
	}

	for i := range perf {
		perf[i].ConversionRate = rate(perf[i].Converted, perf[i].Count)
		perf[i].AvgPriorityScore = round2(perf[i].AvgPriorityScore)
		perf[i].AvgResponseTimeMinutes = round2(perf[i].AvgResponseTimeMinutes)
	}
	sort.Slice(perf, func(i, j int) bool {
		return perf[i].ConversionRate > perf[j].ConversionRate
	})
	return perf, nil
}

// GetTeamPerformance atanan kullanıcı bazında performans, dönüşüm oranına göre azalan
func (a *Analytics) GetTeamPerformance(hostelID uint, start, end time.Time) ([]TeamPerformance, error) {
	var perf []TeamPerformance
	err := a.scope(hostelID, start, end).
		Select(`inquiries.assigned_to as user_id,
			users.username as username,
			COUNT(*) as count,
			SUM(CASE WHEN inquiries.converted_to_booking THEN 1 ELSE 0 END) as converted,
			COALESCE(AVG(inquiries.response_time_minutes), 0) as avg_response_time_minutes`).
		Joins("JOIN users ON users.id = inquiries.assigned_to").
		Where("inquiries.assigned_to IS NOT NULL").
		Group("inquiries.assigned_to, users.username").
		Scan(&perf).Error
	if err != nil {
		return nil, a.fail(err)
	}

	for i := range perf {
		perf[i].ConversionRate = rate(perf[i].Converted, perf[i].Count)
		perf[i].AvgResponseTimeMinutes = round2(perf[i].AvgResponseTimeMinutes)
	}
	sort.Slice(perf, func(i, j int) bool {
		return perf[i].ConversionRate > perf[j].ConversionRate
	})
	return perf, nil
}

// GetDailyTrend pencere içindeki her takvim günü için sayım ve dönüşüm
func (a *Analytics) GetDailyTrend(hostelID uint, start, end time.Time) ([]DailyTrendPoint, error) {
	var trend []DailyTrendPoint

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for !day.After(end) {
		date := day.Format("2006-01-02")
		point := DailyTrendPoint{Date: date}

		if err := a.db.Model(&model.Inquiry{}).
			Where("hostel_id = ? AND DATE(created_at) = ?", hostelID, date).
			Count(&point.Count).Error; err != nil {
			return nil, a.fail(err)
		}

		if err := a.db.Model(&model.Inquiry{}).
			Where("hostel_id = ? AND converted_to_booking = ? AND DATE(converted_at) = ?", hostelID, true, date).
			Count(&point.Conversions).Error; err != nil {
			return nil, a.fail(err)
		}

		trend = append(trend, point)
		day = day.AddDate(0, 0, 1)
	}

	return trend, nil
}
