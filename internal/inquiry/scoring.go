package inquiry

import (
	"time"

	"hostelhub_backend/internal/model"
)

// CalculatePriorityScore inquiry anlık görüntüsünden 0-100 arası öncelik
// puanı hesaplar. Saf fonksiyondur; sonucu kalıcı hale getirmek çağıranın
// sorumluluğudur.
//
// Taban 50 puan üzerine:
//   - yaş < 1 gün +20, yaş < 3 gün +10, yaş > 7 gün -10
//   - üç tercih alanı da doluysa +15
//   - follow-up başına +5, en fazla +15
//   - kaynak REFERRAL +10, WALK_IN +15
//
// CONVERTED ve NOT_INTERESTED durumlarında puan her koşulda 0'dır.
func CalculatePriorityScore(inq *model.Inquiry, now time.Time) int {
	if inq.Status.IsTerminal() {
		return 0
	}

	score := 50

	age := now.Sub(inq.CreatedAt)
	switch {
	case age < 24*time.Hour:
		score += 20
	case age < 72*time.Hour:
		score += 10
	case age > 7*24*time.Hour:
		score -= 10
	}

	if inq.HasCompletePreferences() {
		score += 15
	}

	engagement := inq.FollowUpCount * 5
	if engagement > 15 {
		engagement = 15
	}
	score += engagement

	switch inq.Source {
	case model.InquirySourceReferral:
		score += 10
	case model.InquirySourceWalkIn:
		score += 15
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// CalculateQualityScore ziyaretçinin verdiği bilgilerin doluluk oranını
// yüzde olarak döner.
func CalculateQualityScore(inq *model.Inquiry) int {
	fields := 0
	filled := 0

	check := func(ok bool) {
		fields++
		if ok {
			filled++
		}
	}

	check(inq.VisitorEmail != "")
	check(inq.VisitorPhone != "")
	check(inq.PreferredCheckInDate != nil)
	check(inq.StayDurationMonths != nil)
	check(inq.RoomTypePreference != nil)
	check(inq.Message != "")

	return filled * 100 / fields
}
