package inquiry

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/apperror"
)

const minFollowUpNotesLen = 10

// FollowUpInput bir iletişim denemesinin kaydı için girdi
type FollowUpInput struct {
	InquiryID        string
	ContactMethod    model.ContactMethod
	ContactOutcome   model.ContactOutcome
	Notes            string
	DurationMinutes  *int
	NextFollowUpDate *time.Time
}

// RecordFollowUp iletişim denemesini kaydeder. attempt_number inquiry
// başına 1'den başlayarak artar; başarılı ilk temas response_time'ı da
// doldurur. Idempotans yoktur, her çağrı yeni satır üretir.
func (s *Service) RecordFollowUp(actor Principal, input FollowUpInput) (*model.InquiryFollowUp, error) {
	if !actor.CanManageInquiries() {
		return nil, apperror.Forbidden("not allowed to manage inquiries")
	}
	if len(input.Notes) < minFollowUpNotesLen {
		return nil, apperror.Validation(fmt.Sprintf("notes must be at least %d characters", minFollowUpNotesLen))
	}

	now := s.now()
	if input.NextFollowUpDate != nil && input.NextFollowUpDate.Before(now) {
		return nil, apperror.Validation("next follow-up date must be in the future")
	}

	var created *model.InquiryFollowUp
	err := s.inTx(func(tx *gorm.DB) error {
		inq, err := s.getInquiry(tx, input.InquiryID)
		if err != nil {
			return err
		}

		followUp := &model.InquiryFollowUp{
			InquiryID:       inq.ID,
			FollowedUpBy:    actor.UserID,
			ContactMethod:   input.ContactMethod,
			ContactOutcome:  input.ContactOutcome,
			AttemptedAt:     now,
			DurationMinutes: input.DurationMinutes,
			Notes:           input.Notes,
			AttemptNumber:   inq.FollowUpCount + 1,
			IsSuccessful:    input.ContactOutcome.IsSuccessful(),
		}

		if err := tx.Create(followUp).Error; err != nil {
			return err
		}

		// Parent inquiry sayaçlarını güncelle
		inq.FollowUpCount++
		inq.LastFollowUpAt = &now
		if input.NextFollowUpDate != nil {
			inq.NextFollowUpDue = input.NextFollowUpDate
		}

		// İlk başarılı temas yanıt süresini belirler
		if followUp.IsSuccessful && inq.ResponseTimeMinutes == nil {
			minutes := int(now.Sub(inq.CreatedAt).Minutes())
			inq.ResponseTimeMinutes = &minutes
		}

		s.applyScores(inq)

		if err := tx.Save(inq).Error; err != nil {
			return err
		}
		created = followUp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateEngagement email engagement bayraklarını asenkron günceller;
// follow-up kaydının diğer alanları oluşturulduktan sonra değişmez.
func (s *Service) UpdateEngagement(followUpID uint, opened, clicked bool) error {
	return s.inTx(func(tx *gorm.DB) error {
		var followUp model.InquiryFollowUp
		if err := tx.First(&followUp, followUpID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("follow-up not found")
			}
			return err
		}
		return tx.Model(&followUp).Updates(map[string]interface{}{
			"email_opened":  opened,
			"email_clicked": clicked,
		}).Error
	})
}
