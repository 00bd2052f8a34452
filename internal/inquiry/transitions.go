package inquiry

import (
	"fmt"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/apperror"
)

// legalTransitions inquiry durum makinesinin izin verilen geçişleri.
// CONVERTED ve NOT_INTERESTED son durumlardır, çıkış kenarları yoktur.
var legalTransitions = map[model.InquiryStatus][]model.InquiryStatus{
	model.InquiryStatusNew: {
		model.InquiryStatusAssigned,
		model.InquiryStatusContacted,
		model.InquiryStatusNotInterested,
	},
	model.InquiryStatusAssigned: {
		model.InquiryStatusContacted,
		model.InquiryStatusNotInterested,
	},
	model.InquiryStatusContacted: {
		model.InquiryStatusInterested,
		model.InquiryStatusNotInterested,
	},
	model.InquiryStatusInterested: {
		model.InquiryStatusConverted,
		model.InquiryStatusNotInterested,
	},
	model.InquiryStatusConverted:     {},
	model.InquiryStatusNotInterested: {},
}

// CanTransition (from, to) geçişinin tabloda olup olmadığını döner
func CanTransition(from, to model.InquiryStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition geçersiz geçişte (from, to) çiftini adlandıran
// VALIDATION_ERROR döner
func ValidateTransition(from, to model.InquiryStatus) error {
	if !CanTransition(from, to) {
		return apperror.Validation(fmt.Sprintf("illegal status transition from %s to %s", from, to))
	}
	return nil
}

// LegalNextStatuses mevcut durumdan gidilebilecek durumları döner
func LegalNextStatuses(from model.InquiryStatus) []model.InquiryStatus {
	next := legalTransitions[from]
	out := make([]model.InquiryStatus, len(next))
	copy(out, next)
	return out
}
