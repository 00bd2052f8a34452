package model

import "gorm.io/gorm"

type Subscription struct {
	gorm.Model
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null"`
	Duration    int     `json:"duration" gorm:"not null"` // gün
	MaxHostels  int     `json:"max_hostels" gorm:"not null"`
	MaxImages   int     `json:"max_images" gorm:"not null"`

	// İlişkiler
	UserSubscriptions []UserSubscription
}

type UserSubscription struct {
	gorm.Model
	UserID         uint   `json:"user_id"`
	SubscriptionID uint   `json:"subscription_id"`
	Status         string `json:"status" gorm:"default:'active'"`
	ExpiresAt      string `json:"expires_at"`

	// İlişkiler
	User         User         `gorm:"foreignKey:UserID"`
	Subscription Subscription `gorm:"foreignKey:SubscriptionID"`
}
