package model

import (
	"strings"

	"gorm.io/gorm"
)

// Kullanıcı rolleri
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager" // hostel sahibi / işletmeci
	RoleStaff   UserRole = "staff"
)

type User struct {
	gorm.Model
	Email       string   `gorm:"uniqueIndex;not null"`
	Password    string   `gorm:"not null"`
	Username    string   `gorm:"uniqueIndex;not null"`
	CompanyName string   `json:"company_name" gorm:"not null"`
	Role        UserRole `json:"role" gorm:"default:'manager'"`

	// Opsiyonel profil bilgileri (settings'den güncellenecek)
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Title          string `json:"title"`
	PhoneNumber    string `json:"phone_number"`
	WhatsAppNumber string `json:"whats_app_number"`
	Avatar         string `json:"avatar"`

	// Sistem bilgileri
	IsVerified     bool  `json:"is_verified" gorm:"default:false"`
	SubscriptionID *uint `json:"subscription_id"`

	// İlişkiler
	Hostels      []Hostel      `json:"-"`
	Subscription *Subscription `json:"-" gorm:"foreignKey:SubscriptionID"`
}

func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":               u.ID,
		"username":         u.Username,
		"company_name":     u.CompanyName,
		"full_name":        u.GetFullName(),
		"title":            u.Title,
		"phone_number":     u.PhoneNumber,
		"whats_app_number": u.WhatsAppNumber,
		"avatar":           u.Avatar,
		"is_verified":      u.IsVerified,
	}
}
