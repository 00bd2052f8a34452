package model

import (
	"time"

	"gorm.io/gorm"
)

// HostelView tekil görüntülenme kaydı
type HostelView struct {
	gorm.Model
	HostelID  uint      `json:"hostel_id" gorm:"index"`
	UserID    *uint     `json:"user_id" gorm:"index"` // Giriş yapmış kullanıcı için (opsiyonel)
	IP        string    `json:"ip" gorm:"index"`
	SessionID string    `json:"session_id" gorm:"index"`
	UserAgent string    `json:"user_agent"`
	ViewedAt  time.Time `json:"viewed_at" gorm:"index"`
	IsUnique  bool      `json:"is_unique" gorm:"default:true"`

	// İlişkiler
	Hostel Hostel `json:"-" gorm:"foreignKey:HostelID"`
	User   *User  `json:"-" gorm:"foreignKey:UserID"`
}

// HostelStats genel istatistikler
type HostelStats struct {
	gorm.Model
	HostelID     uint      `json:"hostel_id" gorm:"uniqueIndex"`
	TotalViews   int64     `json:"total_views"`
	UniqueViews  int64     `json:"unique_views"`
	DailyViews   int64     `json:"daily_views"`
	WeeklyViews  int64     `json:"weekly_views"`
	MonthlyViews int64     `json:"monthly_views"`
	LastUpdated  time.Time `json:"last_updated"`

	// İlişkiler
	Hostel Hostel `json:"-" gorm:"foreignKey:HostelID"`
}

// BeforeCreate son 24 saat içinde aynı IP'den görüntüleme varsa tekil saymaz
func (hv *HostelView) BeforeCreate(tx *gorm.DB) error {
	var count int64
	tx.Model(&HostelView{}).
		Where("hostel_id = ? AND ip = ? AND viewed_at > ?",
			hv.HostelID,
			hv.IP,
			time.Now().Add(-24*time.Hour)).
		Count(&count)

	if count > 0 {
		hv.IsUnique = false
	}

	return nil
}

// AfterCreate görüntülenme sayaçlarını günceller
func (hv *HostelView) AfterCreate(tx *gorm.DB) error {
	var stats HostelStats
	tx.FirstOrCreate(&stats, HostelStats{HostelID: hv.HostelID})

	updates := map[string]interface{}{
		"total_views":   gorm.Expr("total_views + ?", 1),
		"daily_views":   gorm.Expr("daily_views + ?", 1),
		"weekly_views":  gorm.Expr("weekly_views + ?", 1),
		"monthly_views": gorm.Expr("monthly_views + ?", 1),
		"last_updated":  time.Now(),
	}

	if hv.IsUnique {
		updates["unique_views"] = gorm.Expr("unique_views + ?", 1)
	}

	return tx.Model(&stats).Updates(updates).Error
}
