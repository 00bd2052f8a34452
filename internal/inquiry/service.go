package inquiry

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/apperror"
)

// Service inquiry yaşam döngüsünü yönetir. Bağımlılıklar enjekte edilir;
// paket globali yoktur.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

type CreateInput struct {
	HostelID             uint
	VisitorName          string
	VisitorEmail         string
	VisitorPhone         string
	PreferredCheckInDate *time.Time
	StayDurationMonths   *int
	RoomTypePreference   *model.RoomType
	Source               model.InquirySource
	Message              string
}

type ListFilters struct {
	Status     *model.InquiryStatus
	Source     *model.InquirySource
	AssignedTo *uint
	OnlyUnread bool
	Limit      int
	Offset     int
}

// inTx veritabanı hatalarını servis sınırında tek tip hataya çevirir;
// transaction hata durumunda geri alınır, ham hata dışarı sızmaz.
func (s *Service) inTx(fn func(tx *gorm.DB) error) error {
	if err := s.db.Transaction(fn); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		log.Printf("inquiry service: database error: %v", err)
		return apperror.Internal("database operation failed", err)
	}
	return nil
}

func (s *Service) getInquiry(tx *gorm.DB, id string) (*model.Inquiry, error) {
	var inq model.Inquiry
	if err := tx.First(&inq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("inquiry not found")
		}
		return nil, err
	}
	return &inq, nil
}

// applyScores öncelik ve kalite puanlarını anlık durumdan yeniden hesaplar.
// Her mutasyon kendi transaction'ı içinde bunu çağırır; puan tazeliği
// çağıran tarafın hatırlamasına bırakılmaz.
func (s *Service) applyScores(inq *model.Inquiry) {
	inq.PriorityScore = CalculatePriorityScore(inq, s.now())
	inq.QualityScore = CalculateQualityScore(inq)
}

func (s *Service) appendAuditNote(inq *model.Inquiry, text string) {
	line := fmt.Sprintf("[%s] %s", s.now().Format(time.RFC3339), text)
	if inq.Notes == "" {
		inq.Notes = line
	} else {
		inq.Notes = inq.Notes + "\n" + line
	}
}

// Create yeni lead kaydı oluşturur
func (s *Service) Create(input CreateInput) (*model.Inquiry, error) {
	if input.VisitorName == "" {
		return nil, apperror.Validation("visitor name is required")
	}
	if input.VisitorEmail == "" && input.VisitorPhone == "" {
		return nil, apperror.Validation("visitor email or phone is required")
	}

	source := input.Source
	if source == "" {
		source = model.InquirySourceWebsite
	}

	inq := &model.Inquiry{
		HostelID:             input.HostelID,
		VisitorName:          input.VisitorName,
		VisitorEmail:         input.VisitorEmail,
		VisitorPhone:         input.VisitorPhone,
		PreferredCheckInDate: input.PreferredCheckInDate,
		StayDurationMonths:   input.StayDurationMonths,
		RoomTypePreference:   input.RoomTypePreference,
		Source:               source,
		Status:               model.InquiryStatusNew,
		Message:              input.Message,
		CreatedAt:            s.now(),
	}

	err := s.inTx(func(tx *gorm.DB) error {
		var hostel model.Hostel
		if err := tx.First(&hostel, input.HostelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("hostel not found")
			}
			return err
		}

		s.applyScores(inq)
		return tx.Create(inq).Error
	})
	if err != nil {
		return nil, err
	}
	return inq, nil
}

// Get inquiry'yi follow-up'lar olmadan döner
func (s *Service) Get(id string) (*model.Inquiry, error) {
	var inq model.Inquiry
	if err := s.db.First(&inq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("inquiry not found")
		}
		log.Printf("inquiry service: database error: %v", err)
		return nil, apperror.Internal("database operation failed", err)
	}
	return &inq, nil
}

// GetWithFollowUps inquiry'yi follow-up geçmişiyle birlikte tek seferde
// yükler; ilişki okuma sınırı bu metottur, lazy-load yoktur.
func (s *Service) GetWithFollowUps(id string) (*model.Inquiry, error) {
	var inq model.Inquiry
	err := s.db.
		Preload("FollowUps", func(db *gorm.DB) *gorm.DB {
			return db.Order("attempt_number ASC")
		}).
		First(&inq, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("inquiry not found")
		}
		log.Printf("inquiry service: database error: %v", err)
		return nil, apperror.Internal("database operation failed", err)
	}
	return &inq, nil
}

// List hostel'ın inquiry'lerini filtreleyerek döner
func (s *Service) List(hostelID uint, f ListFilters) ([]model.Inquiry, error) {
	query := s.db.Where("hostel_id = ?", hostelID)

	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}
	if f.Source != nil {
		query = query.Where("source = ?", *f.Source)
	}
	if f.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *f.AssignedTo)
	}
	if f.OnlyUnread {
		query = query.Where("read_status = ?", false)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit).Offset(f.Offset)
	}

	var inquiries []model.Inquiry
	if err := query.Order("priority_score DESC, created_at DESC").Find(&inquiries).Error; err != nil {
		log.Printf("inquiry service: database error: %v", err)
		return nil, apperror.Internal("database operation failed", err)
	}
	return inquiries, nil
}

// UpdateStatus durum makinesine göre geçiş yapar. Geçersiz geçişte kayıt
// değişmeden VALIDATION_ERROR döner. CONTACTED'a ilk girişte contacted_at,
// contacted_by atanır. Her başarılı geçiş öncelik puanını yeniden hesaplar
// ve not verilmişse audit satırı ekler.
func (s *Service) UpdateStatus(actor Principal, id string, to model.InquiryStatus, note string) (*model.Inquiry, error) {
	if !actor.CanManageInquiries() {
		return nil, apperror.Forbidden("not allowed to manage inquiries")
	}

	// Dönüşüm booking referansı gerektirir; CONVERTED'a geçiş yalnızca
	// Convert üzerinden yapılır
	if to == model.InquiryStatusConverted {
		return nil, apperror.Validation("conversion requires a booking; use the convert operation")
	}

	var updated *model.Inquiry
	err := s.inTx(func(tx *gorm.DB) error {
		inq, err := s.getInquiry(tx, id)
		if err != nil {
			return err
		}

		if err := ValidateTransition(inq.Status, to); err != nil {
			return err
		}

		now := s.now()
		if to == model.InquiryStatusContacted && inq.ContactedAt == nil {
			inq.ContactedAt = &now
			inq.ContactedBy = &actor.UserID
		}

		inq.Status = to
		s.applyScores(inq)
		if note != "" {
			s.appendAuditNote(inq, fmt.Sprintf("Status changed to %s: %s", to, note))
		}

		if err := tx.Save(inq).Error; err != nil {
			return err
		}
		updated = inq
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Assign inquiry'yi bir kullanıcıya atar; NEW durumundaysa ASSIGNED'a geçirir
func (s *Service) Assign(actor Principal, id string, assigneeID uint) (*model.Inquiry, error) {
	if !actor.CanManageInquiries() {
		return nil, apperror.Forbidden("not allowed to manage inquiries")
	}

	var updated *model.Inquiry
	err := s.inTx(func(tx *gorm.DB) error {
		inq, err := s.getInquiry(tx, id)
		if err != nil {
			return err
		}
		if inq.Status.IsTerminal() {
			return apperror.Validation(fmt.Sprintf("cannot assign inquiry in %s status", inq.Status))
		}

		var assignee model.User
		if err := tx.First(&assignee, assigneeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("assignee not found")
			}
			return err
		}

		now := s.now()
		inq.AssignedTo = &assigneeID
		inq.AssignedAt = &now
		if inq.Status == model.InquiryStatusNew {
			inq.Status = model.InquiryStatusAssigned
		}
		s.applyScores(inq)

		if err := tx.Save(inq).Error; err != nil {
			return err
		}
		updated = inq
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// MarkRead okundu işaretler
func (s *Service) MarkRead(actor Principal, id string) error {
	if !actor.CanManageInquiries() {
		return apperror.Forbidden("not allowed to manage inquiries")
	}
	return s.inTx(func(tx *gorm.DB) error {
		inq, err := s.getInquiry(tx, id)
		if err != nil {
			return err
		}
		return tx.Model(inq).Update("read_status", true).Error
	})
}

// SoftDelete kaydı siler; hard delete yapılmaz
func (s *Service) SoftDelete(actor Principal, id string) error {
	if !actor.CanManageInquiries() {
		return apperror.Forbidden("not allowed to manage inquiries")
	}
	return s.inTx(func(tx *gorm.DB) error {
		inq, err := s.getInquiry(tx, id)
		if err != nil {
			return err
		}
		return tx.Delete(inq).Error
	})
}
