package model

import (
	"time"

	"gorm.io/gorm"
)

// Booking durumları
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking inquiry dönüşümünün hedefidir. Check-in/check-out iş akışı
// bu serviste yönetilmez; kayıt referans olarak tutulur.
type Booking struct {
	gorm.Model
	HostelID  uint    `json:"hostel_id" gorm:"index;not null"`
	InquiryID *string `json:"inquiry_id" gorm:"type:uuid;index"`

	GuestName  string `json:"guest_name" gorm:"not null"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`

	CheckInDate    *time.Time    `json:"check_in_date"`
	DurationMonths int           `json:"duration_months"`
	RoomType       RoomType      `json:"room_type"`
	MonthlyRate    float64       `json:"monthly_rate"`
	Currency       Currency      `json:"currency" gorm:"default:'USD'"`
	Status         BookingStatus `json:"status" gorm:"default:'confirmed'"`

	CreatedBy uint `json:"created_by"`

	// İlişkiler
	Hostel Hostel `json:"-" gorm:"foreignKey:HostelID"`
}
