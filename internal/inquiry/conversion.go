package inquiry

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/apperror"
)

// Convert inquiry'yi booking referansına bağlar. İşlem inquiry başına en
// fazla bir kez yapılabilir; eşzamanlı isteklere karşı guard uygulama
// seviyesindeki kontrol değil, koşullu UPDATE'tir (compare-and-swap):
// yalnızca converted_to_booking = false satırı güncellenir, kaybeden
// istek "already converted" alır.
func (s *Service) Convert(actor Principal, inquiryID string, bookingID uint) (*model.Inquiry, error) {
	if !actor.CanManageInquiries() {
		return nil, apperror.Forbidden("not allowed to manage inquiries")
	}

	var converted *model.Inquiry
	err := s.inTx(func(tx *gorm.DB) error {
		inq, err := s.getInquiry(tx, inquiryID)
		if err != nil {
			return err
		}

		if inq.ConvertedToBooking {
			return apperror.Validation("already converted")
		}
		if inq.Status == model.InquiryStatusNotInterested {
			return apperror.Validation("cannot convert inquiry in NOT_INTERESTED status")
		}

		var booking model.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("booking not found")
			}
			return err
		}
		if booking.HostelID != inq.HostelID {
			return apperror.Validation("booking belongs to a different hostel")
		}

		now := s.now()
		res := tx.Model(&model.Inquiry{}).
			Where("id = ? AND converted_to_booking = ?", inquiryID, false).
			Updates(map[string]interface{}{
				"converted_to_booking": true,
				"booking_id":           bookingID,
				"converted_at":         now,
				"converted_by":         actor.UserID,
				"status":               model.InquiryStatusConverted,
				"priority_score":       0, // terminal durumda puan sıfırlanır
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// CAS kaybedildi: başka bir istek aradan dönüşümü tamamladı
			return apperror.Validation("already converted")
		}

		inq.ConvertedToBooking = true
		inq.BookingID = &bookingID
		inq.ConvertedAt = &now
		inq.ConvertedBy = &actor.UserID
		inq.Status = model.InquiryStatusConverted
		inq.PriorityScore = 0

		s.appendAuditNote(inq, fmt.Sprintf("Status changed to %s: converted to booking #%d", model.InquiryStatusConverted, bookingID))
		if err := tx.Model(inq).Update("notes", inq.Notes).Error; err != nil {
			return err
		}

		converted = inq
		return nil
	})
	if err != nil {
		return nil, err
	}
	return converted, nil
}

// ReverseConversion dönüşümü geri alır: conversion alanları temizlenir,
// neden ve aktör audit notuna yazılır. Referans verilen booking kaydına
// dokunulmaz; booking yaşam döngüsü bu servisin dışındadır.
func (s *Service) ReverseConversion(actor Principal, inquiryID string, reason string) (*model.Inquiry, error) {
	if !actor.CanManageInquiries() {
		return nil, apperror.Forbidden("not allowed to manage inquiries")
	}
	if reason == "" {
		return nil, apperror.Validation("reversal reason is required")
	}

	var reversed *model.Inquiry
	err := s.inTx(func(tx *gorm.DB) error {
		inq, err := s.getInquiry(tx, inquiryID)
		if err != nil {
			return err
		}
		if !inq.ConvertedToBooking {
			return apperror.Validation("inquiry is not converted")
		}

		previousBooking := inq.BookingID

		inq.ConvertedToBooking = false
		inq.BookingID = nil
		inq.ConvertedAt = nil
		inq.ConvertedBy = nil
		inq.Status = model.InquiryStatusInterested
		s.applyScores(inq)
		s.appendAuditNote(inq, fmt.Sprintf("Conversion to booking #%d reversed by user #%d: %s", derefUint(previousBooking), actor.UserID, reason))

		updates := map[string]interface{}{
			"converted_to_booking": false,
			"booking_id":           nil,
			"converted_at":         nil,
			"converted_by":         nil,
			"status":               inq.Status,
			"priority_score":       inq.PriorityScore,
			"quality_score":        inq.QualityScore,
			"notes":                inq.Notes,
		}
		if err := tx.Model(&model.Inquiry{}).Where("id = ?", inquiryID).Updates(updates).Error; err != nil {
			return err
		}

		reversed = inq
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reversed, nil
}

func derefUint(v *uint) uint {
	if v == nil {
		return 0
	}
	return *v
}
