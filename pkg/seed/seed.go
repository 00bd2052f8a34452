package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hostelhub_backend/internal/model"
)

func SeedSubscriptionPlans(db *gorm.DB) {
	plans := []model.Subscription{
		{
			Name:        "Starter Plan",
			Description: "For single-hostel operators",
			Price:       0,
			Duration:    365,
			MaxHostels:  1,
			MaxImages:   5,
		},
		{
			Name:        "Growth Plan",
			Description: "For growing hostel businesses",
			Price:       49.99,
			Duration:    30,
			MaxHostels:  5,
			MaxImages:   16,
		},
		{
			Name:        "Scale Plan",
			Description: "For hostel chains",
			Price:       149.99,
			Duration:    30,
			MaxHostels:  25,
			MaxImages:   16,
		},
	}

	for _, plan := range plans {
		result := db.FirstOrCreate(&plan, model.Subscription{Name: plan.Name})
		if result.Error != nil {
			log.Printf("Error creating plan %s: %v", plan.Name, result.Error)
		}
	}

	log.Println("Subscription plans seeded successfully!")
}

// SeedDemoData geliştirme ortamı için örnek hesap ve hostel oluşturur
func SeedDemoData(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Where("email = ?", "demo@hostelhub.app").Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing demo password: %v", err)
		return
	}

	user := model.User{
		Email:       "demo@hostelhub.app",
		Password:    string(hashed),
		Username:    "demo-hostels",
		CompanyName: "Demo Hostels",
		Role:        model.RoleManager,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("Error creating demo user: %v", err)
		return
	}

	hostel := model.Hostel{
		Name:        "Demo Central Hostel",
		Type:        model.HostelTypeCoEd,
		Description: "Sample hostel for trying out the dashboard.",
		UserID:      user.ID,
		City:        "Istanbul",
		Country:     "Turkey",
		TotalBeds:   40,
		Currency:    model.CurrencyUSD,
		IsActive:    true,
	}
	if err := db.Create(&hostel).Error; err != nil {
		log.Printf("Error creating demo hostel: %v", err)
		return
	}

	log.Println("Demo data seeded successfully!")
}
