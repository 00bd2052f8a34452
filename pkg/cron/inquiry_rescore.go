package cron

import (
	"log"

	"github.com/robfig/cron/v3"

	"hostelhub_backend/internal/inquiry"
)

// InitInquiryRescoreCron öncelik puanlarını gecede bir yeniden hesaplar.
// Puanın yaş bileşeni zamanla değiştiği için mutasyon anındaki hesap
// tek başına yeterli olmaz.
func InitInquiryRescoreCron(svc *inquiry.Service) {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		result, err := svc.BulkRescore(0)
		if err != nil {
			log.Printf("Inquiry rescore failed: %v", err)
			return
		}
		log.Printf("Inquiry rescore complete: %d updated, %d unchanged", result.Updated, result.Skipped)
	})

	if err != nil {
		log.Printf("Could not initialize inquiry rescore cron: %v", err)
		return
	}

	c.Start()
}
