package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inquiry durumları
type InquiryStatus string

const (
	InquiryStatusNew           InquiryStatus = "NEW"
	InquiryStatusAssigned      InquiryStatus = "ASSIGNED"
	InquiryStatusContacted     InquiryStatus = "CONTACTED"
	InquiryStatusInterested    InquiryStatus = "INTERESTED"
	InquiryStatusConverted     InquiryStatus = "CONVERTED"
	InquiryStatusNotInterested InquiryStatus = "NOT_INTERESTED"
)

// IsTerminal CONVERTED ve NOT_INTERESTED son durumlardır
func (s InquiryStatus) IsTerminal() bool {
	return s == InquiryStatusConverted || s == InquiryStatusNotInterested
}

// Inquiry kaynakları
type InquirySource string

const (
	InquirySourceWebsite     InquirySource = "WEBSITE"
	InquirySourceReferral    InquirySource = "REFERRAL"
	InquirySourceWalkIn      InquirySource = "WALK_IN"
	InquirySourcePhone       InquirySource = "PHONE"
	InquirySourceSocialMedia InquirySource = "SOCIAL_MEDIA"
)

// İletişim yöntemleri
type ContactMethod string

const (
	ContactMethodPhone    ContactMethod = "phone"
	ContactMethodEmail    ContactMethod = "email"
	ContactMethodSMS      ContactMethod = "sms"
	ContactMethodWhatsApp ContactMethod = "whatsapp"
	ContactMethodInPerson ContactMethod = "in_person"
	ContactMethodOther    ContactMethod = "other"
)

// İletişim sonuçları
type ContactOutcome string

const (
	OutcomeConnected         ContactOutcome = "connected"
	OutcomeNoAnswer          ContactOutcome = "no_answer"
	OutcomeVoicemail         ContactOutcome = "voicemail"
	OutcomeEmailSent         ContactOutcome = "email_sent"
	OutcomeEmailBounced      ContactOutcome = "email_bounced"
	OutcomeInterested        ContactOutcome = "interested"
	OutcomeNotInterested     ContactOutcome = "not_interested"
	OutcomeCallbackRequested ContactOutcome = "callback_requested"
	OutcomeWrongNumber       ContactOutcome = "wrong_number"
	OutcomeDoNotContact      ContactOutcome = "do_not_contact"
)

// IsSuccessful görüşmenin başarılı sayılıp sayılmadığını belirler
func (o ContactOutcome) IsSuccessful() bool {
	return o == OutcomeConnected || o == OutcomeInterested || o == OutcomeCallbackRequested
}

type Inquiry struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	HostelID uint `json:"hostel_id" gorm:"index;not null"`

	// Ziyaretçi bilgileri
	VisitorName  string `json:"visitor_name" gorm:"not null"`
	VisitorEmail string `json:"visitor_email"`
	VisitorPhone string `json:"visitor_phone"`

	// Tercihler
	PreferredCheckInDate *time.Time `json:"preferred_check_in_date"`
	StayDurationMonths   *int       `json:"stay_duration_months"`
	RoomTypePreference   *RoomType  `json:"room_type_preference"`

	Source InquirySource `json:"source" gorm:"default:'WEBSITE';index"`
	Status InquiryStatus `json:"status" gorm:"default:'NEW';index"`

	// Yaşam döngüsü alanları
	AssignedTo  *uint      `json:"assigned_to" gorm:"index"`
	AssignedAt  *time.Time `json:"assigned_at"`
	ContactedBy *uint      `json:"contacted_by"`
	ContactedAt *time.Time `json:"contacted_at"`

	// Dönüşüm alanları
	ConvertedToBooking bool       `json:"converted_to_booking" gorm:"default:false"`
	BookingID          *uint      `json:"booking_id"`
	ConvertedAt        *time.Time `json:"converted_at"`
	ConvertedBy        *uint      `json:"converted_by"`

	// Skorlama ve takip
	PriorityScore       int        `json:"priority_score" gorm:"default:0"`
	QualityScore        int        `json:"quality_score" gorm:"default:0"`
	FollowUpCount       int        `json:"follow_up_count" gorm:"default:0"`
	LastFollowUpAt      *time.Time `json:"last_follow_up_at"`
	NextFollowUpDue     *time.Time `json:"next_follow_up_due"`
	ResponseTimeMinutes *int       `json:"response_time_minutes"`

	Message string `json:"message" gorm:"type:text"`
	Notes   string `json:"notes" gorm:"type:text"` // status değişikliği audit notları

	ReadStatus bool `json:"read_status" gorm:"default:false"`

	// İlişkiler
	Hostel       Hostel            `json:"-" gorm:"foreignKey:HostelID"`
	AssignedUser *User             `json:"-" gorm:"foreignKey:AssignedTo"`
	FollowUps    []InquiryFollowUp `json:"follow_ups,omitempty" gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE"`
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// HasCompletePreferences üç tercih alanının da dolu olup olmadığını döner
func (i *Inquiry) HasCompletePreferences() bool {
	return i.PreferredCheckInDate != nil && i.StayDurationMonths != nil && i.RoomTypePreference != nil
}

type InquiryFollowUp struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InquiryID    string `json:"inquiry_id" gorm:"type:uuid;index;not null"`
	FollowedUpBy uint   `json:"followed_up_by" gorm:"not null"`

	ContactMethod  ContactMethod  `json:"contact_method" gorm:"not null"`
	ContactOutcome ContactOutcome `json:"contact_outcome" gorm:"not null"`

	AttemptedAt     time.Time `json:"attempted_at" gorm:"not null"`
	DurationMinutes *int      `json:"duration_minutes"`
	Notes           string    `json:"notes" gorm:"type:text;not null"`
	AttemptNumber   int       `json:"attempt_number" gorm:"not null"` // inquiry başına 1'den başlar
	IsSuccessful    bool      `json:"is_successful" gorm:"default:false"`

	// Asenkron güncellenebilen engagement bayrakları
	EmailOpened  bool `json:"email_opened" gorm:"default:false"`
	EmailClicked bool `json:"email_clicked" gorm:"default:false"`

	// İlişkiler
	Inquiry Inquiry `json:"-" gorm:"foreignKey:InquiryID"`
	User    User    `json:"-" gorm:"foreignKey:FollowedUpBy"`
}
