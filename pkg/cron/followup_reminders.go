package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/email"
)

func InitFollowUpReminderCron(db *gorm.DB) {
	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		sendFollowUpReminders(db)
	})

	if err != nil {
		log.Printf("Could not initialize follow-up reminder cron: %v", err)
		return
	}

	c.Start()
}

// sendFollowUpReminders vadesi geçmiş follow-up'ları atanan kullanıcıya hatırlatır
func sendFollowUpReminders(db *gorm.DB) {
	log.Println("Checking for overdue follow-ups...")

	var inquiries []model.Inquiry
	err := db.Preload("Hostel").
		Where("next_follow_up_due IS NOT NULL AND next_follow_up_due <= ?", time.Now()).
		Where("assigned_to IS NOT NULL").
		Where("status NOT IN ?", []model.InquiryStatus{
			model.InquiryStatusConverted,
			model.InquiryStatusNotInterested,
		}).
		Find(&inquiries).Error
	if err != nil {
		log.Printf("Error fetching overdue follow-ups: %v", err)
		return
	}

	log.Printf("Found %d overdue follow-ups", len(inquiries))

	if email.GlobalEmailService == nil {
		return
	}

	for _, inq := range inquiries {
		var staff model.User
		if err := db.First(&staff, *inq.AssignedTo).Error; err != nil {
			log.Printf("Could not load assignee %d for inquiry %s: %v", *inq.AssignedTo, inq.ID, err)
			continue
		}

		err := email.GlobalEmailService.SendFollowUpReminderEmail(
			staff.Email,
			staff.GetFullName(),
			inq.VisitorName,
			inq.Hostel.Name,
			*inq.NextFollowUpDue,
		)
		if err != nil {
			log.Printf("Error sending follow-up reminder to %s: %v", staff.Email, err)
		}
	}
}
