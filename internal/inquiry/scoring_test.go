package inquiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hostelhub_backend/internal/model"
)

func intPtr(v int) *int                             { return &v }
func timePtr(t time.Time) *time.Time                { return &t }
func roomTypePtr(rt model.RoomType) *model.RoomType { return &rt }

func TestCalculatePriorityScore(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		inquiry  model.Inquiry
		expected int
	}{
		{
			name: "fresh website inquiry",
			inquiry: model.Inquiry{
				Status:    model.InquiryStatusNew,
				Source:    model.InquirySourceWebsite,
				CreatedAt: now.Add(-2 * time.Hour),
			},
			expected: 70, // 50 + 20 yaş bonusu
		},
		{
			name: "two day old inquiry",
			inquiry: model.Inquiry{
				Status:    model.InquiryStatusNew,
				Source:    model.InquirySourceWebsite,
				CreatedAt: now.Add(-48 * time.Hour),
			},
			expected: 60, // 50 + 10
		},
		{
			name: "stale walk-in with complete preferences and follow-ups",
			inquiry: model.Inquiry{
				Status:               model.InquiryStatusContacted,
				Source:               model.InquirySourceWalkIn,
				CreatedAt:            now.Add(-10 * 24 * time.Hour),
				PreferredCheckInDate: timePtr(now.AddDate(0, 1, 0)),
				StayDurationMonths:   intPtr(6),
				RoomTypePreference:   roomTypePtr(model.RoomTypeDorm),
				FollowUpCount:        2,
			},
			expected: 80, // 50 - 10 + 15 + 10 + 15
		},
		{
			name: "referral bonus",
			inquiry: model.Inquiry{
				Status:    model.InquiryStatusNew,
				Source:    model.InquirySourceReferral,
				CreatedAt: now.Add(-4 * 24 * time.Hour),
			},
			expected: 60, // 50 + 0 yaş + 10 kaynak
		},
		{
			name: "engagement bonus caps at 15",
			inquiry: model.Inquiry{
				Status:        model.InquiryStatusContacted,
				Source:        model.InquirySourceWebsite,
				CreatedAt:     now.Add(-4 * 24 * time.Hour),
				FollowUpCount: 10,
			},
			expected: 65, // 50 + min(50, 15)
		},
		{
			name: "score clamps at 100",
			inquiry: model.Inquiry{
				Status:               model.InquiryStatusNew,
				Source:               model.InquirySourceWalkIn,
				CreatedAt:            now.Add(-time.Hour),
				PreferredCheckInDate: timePtr(now.AddDate(0, 1, 0)),
				StayDurationMonths:   intPtr(3),
				RoomTypePreference:   roomTypePtr(model.RoomTypeSingle),
				FollowUpCount:        3,
			},
			expected: 100, // 50 + 20 + 15 + 15 + 15 = 115, clamp
		},
		{
			name: "converted inquiry scores zero",
			inquiry: model.Inquiry{
				Status:    model.InquiryStatusConverted,
				Source:    model.InquirySourceWalkIn,
				CreatedAt: now.Add(-time.Hour),
			},
			expected: 0,
		},
		{
			name: "not interested inquiry scores zero",
			inquiry: model.Inquiry{
				Status:        model.InquiryStatusNotInterested,
				Source:        model.InquirySourceReferral,
				CreatedAt:     now.Add(-time.Hour),
				FollowUpCount: 3,
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculatePriorityScore(&tt.inquiry, now))
		})
	}
}

func TestCalculatePriorityScoreIncompletePreferences(t *testing.T) {
	now := time.Now()

	// İki tercih alanı dolu, biri boş: tamlık bonusu verilmez
	inq := model.Inquiry{
		Status:               model.InquiryStatusNew,
		Source:               model.InquirySourceWebsite,
		CreatedAt:            now.Add(-time.Hour),
		PreferredCheckInDate: timePtr(now.AddDate(0, 1, 0)),
		StayDurationMonths:   intPtr(3),
	}

	assert.Equal(t, 70, CalculatePriorityScore(&inq, now))
}

func TestCalculateQualityScore(t *testing.T) {
	now := time.Now()

	empty := model.Inquiry{}
	assert.Equal(t, 0, CalculateQualityScore(&empty))

	half := model.Inquiry{
		VisitorEmail:       "guest@example.com",
		VisitorPhone:       "+90 555 000 0000",
		StayDurationMonths: intPtr(6),
	}
	assert.Equal(t, 50, CalculateQualityScore(&half))

	full := model.Inquiry{
		VisitorEmail:         "guest@example.com",
		VisitorPhone:         "+90 555 000 0000",
		PreferredCheckInDate: timePtr(now.AddDate(0, 1, 0)),
		StayDurationMonths:   intPtr(6),
		RoomTypePreference:   roomTypePtr(model.RoomTypeDouble),
		Message:              "Looking for a quiet room near the university.",
	}
	assert.Equal(t, 100, CalculateQualityScore(&full))
}
