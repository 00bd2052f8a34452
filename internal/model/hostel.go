package model

import (
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Hostel türleri
type HostelType string

const (
	HostelTypeBoys  HostelType = "Boys"
	HostelTypeGirls HostelType = "Girls"
	HostelTypeCoEd  HostelType = "Co-Ed"
)

// Oda türleri
type RoomType string

const (
	RoomTypeDorm    RoomType = "Dorm"
	RoomTypeSingle  RoomType = "Single"
	RoomTypeDouble  RoomType = "Double"
	RoomTypeTriple  RoomType = "Triple"
	RoomTypePrivate RoomType = "Private"
)

// Currency Types
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyTRY Currency = "TRY"
	CurrencyGBP Currency = "GBP"
	CurrencyINR Currency = "INR"
)

type Hostel struct {
	gorm.Model
	Name        string     `json:"name" gorm:"not null"`
	Slug        string     `json:"slug" gorm:"uniqueIndex:idx_user_hostel_slug;not null"`
	Type        HostelType `json:"type" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`

	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_user_hostel_slug"`

	// Adres bilgileri
	AddressLine string `json:"address_line" gorm:"type:text"`
	City        string `json:"city" gorm:"not null"`
	State       string `json:"state"`
	Country     string `json:"country" gorm:"not null"`
	PostalCode  string `json:"postal_code"`

	// Kapasite ve fiyat
	TotalBeds       int      `json:"total_beds"`
	MonthlyRateFrom float64  `json:"monthly_rate_from"`
	Currency        Currency `json:"currency" gorm:"default:'USD'"`

	// Olanaklar JSON olarak tutulur: ["wifi", "laundry", "mess", ...]
	Amenities datatypes.JSON `json:"amenities"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	// İlişkiler
	User      User          `json:"-" gorm:"foreignKey:UserID"`
	Images    []HostelImage `json:"images" gorm:"foreignKey:HostelID;constraint:OnDelete:CASCADE"`
	Inquiries []Inquiry     `json:"-" gorm:"foreignKey:HostelID"`
}

type HostelImage struct {
	gorm.Model
	HostelID uint   `json:"hostel_id"`
	URL      string `json:"url" gorm:"not null"`
	IsCover  bool   `json:"is_cover" gorm:"default:false"`
	Order    int    `json:"order" gorm:"default:0"`

	Hostel Hostel `json:"-" gorm:"foreignKey:HostelID"`
}

// BeforeCreate hostel oluşturulurken slug'ı otomatik oluşturur
func (h *Hostel) BeforeCreate(tx *gorm.DB) error {
	if h.Slug == "" {
		s := slug.Make(h.Name)

		// Slug'ın kullanıcı içinde benzersiz olduğundan emin ol
		var count int64
		tx.Model(&Hostel{}).Where("user_id = ? AND slug = ?", h.UserID, s).Count(&count)
		if count > 0 {
			s = s + "-" + h.CreatedAt.Format("20060102")
		}

		h.Slug = s
	}
	return nil
}
