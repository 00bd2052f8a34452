package controller

import (
	"gorm.io/gorm"

	"hostelhub_backend/internal/inquiry"
	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/utils/jwt"
	"hostelhub_backend/pkg/utils/storage"
)

// Controller bağımlılıkları main tarafından bir kez kurulur
var (
	db               *gorm.DB
	jwtManager       *jwt.Manager
	fileStore        *storage.Storage
	inquirySvc       *inquiry.Service
	inquiryAnalytics *inquiry.Analytics
	appBaseURL       string
)

func Init(
	database *gorm.DB,
	manager *jwt.Manager,
	store *storage.Storage,
	svc *inquiry.Service,
	analytics *inquiry.Analytics,
	baseURL string,
) {
	db = database
	jwtManager = manager
	fileStore = store
	inquirySvc = svc
	inquiryAnalytics = analytics
	appBaseURL = baseURL
}

// principalFromClaims token'daki kimliği servis katmanının Principal
// değerine çevirir
func principalFromClaims(claims *jwt.Claims) inquiry.Principal {
	return inquiry.Principal{
		UserID: claims.UserID,
		Role:   model.UserRole(claims.Role),
	}
}
