package inquiry

import (
	"log"

	"gorm.io/gorm"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/apperror"
)

// BulkResult toplu işlemin kısmi sonuç raporu
type BulkResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// BulkAssign inquiry'leri tek transaction içinde sırayla atar. Tek tek
// hatalar atlanır ve sayılır; batch atomik değildir, başarılılar commit
// edilir.
func (s *Service) BulkAssign(actor Principal, inquiryIDs []string, assigneeID uint) (*BulkResult, error) {
	if !actor.CanBulkOperate() {
		return nil, apperror.Forbidden("not allowed to run bulk operations")
	}

	result := &BulkResult{}
	err := s.inTx(func(tx *gorm.DB) error {
		var assignee model.User
		if err := tx.First(&assignee, assigneeID).Error; err != nil {
			return apperror.NotFound("assignee not found")
		}

		for _, id := range inquiryIDs {
			inq, err := s.getInquiry(tx, id)
			if err != nil {
				log.Printf("bulk assign: skipping %s: %v", id, err)
				result.Skipped++
				continue
			}
			if inq.Status.IsTerminal() {
				result.Skipped++
				continue
			}

			now := s.now()
			inq.AssignedTo = &assigneeID
			inq.AssignedAt = &now
			if inq.Status == model.InquiryStatusNew {
				inq.Status = model.InquiryStatusAssigned
			}
			s.applyScores(inq)

			if err := tx.Save(inq).Error; err != nil {
				log.Printf("bulk assign: skipping %s: %v", id, err)
				result.Skipped++
				continue
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BulkRescore hostel'ın terminal olmayan inquiry'lerinin puanlarını yeniden
// hesaplar. Günlük cron bunu tüm hostel'lar için çağırır; yaşa bağlı puan
// kayması böylece kimse dokunmasa da düzeltilir.
func (s *Service) BulkRescore(hostelID uint) (*BulkResult, error) {
	result := &BulkResult{}
	err := s.inTx(func(tx *gorm.DB) error {
		var inquiries []model.Inquiry
		query := tx.Where("status NOT IN ?", []model.InquiryStatus{
			model.InquiryStatusConverted,
			model.InquiryStatusNotInterested,
		})
		if hostelID != 0 {
			query = query.Where("hostel_id = ?", hostelID)
		}
		if err := query.Find(&inquiries).Error; err != nil {
			return err
		}

		for i := range inquiries {
			inq := &inquiries[i]
			newScore := CalculatePriorityScore(inq, s.now())
			if newScore == inq.PriorityScore {
				result.Skipped++
				continue
			}
			if err := tx.Model(inq).Update("priority_score", newScore).Error; err != nil {
				log.Printf("bulk rescore: skipping %s: %v", inq.ID, err)
				result.Skipped++
				continue
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
