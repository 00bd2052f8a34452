package inquiry

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/apperror"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Her test kendi isimli in-memory veritabanını kullanır
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Hostel{},
		&model.HostelImage{},
		&model.Inquiry{},
		&model.InquiryFollowUp{},
		&model.Booking{},
	))
	return db
}

func seedHostel(t *testing.T, db *gorm.DB) (model.User, model.Hostel) {
	t.Helper()

	user := model.User{
		Email:       "owner@acmehostels.com",
		Password:    "hashed",
		Username:    "acme-hostels",
		CompanyName: "Acme Hostels",
		Role:        model.RoleManager,
	}
	require.NoError(t, db.Create(&user).Error)

	hostel := model.Hostel{
		Name:    "Acme Central",
		Type:    model.HostelTypeCoEd,
		City:    "Istanbul",
		Country: "Turkey",
		UserID:  user.ID,
	}
	require.NoError(t, db.Create(&hostel).Error)
	return user, hostel
}

func managerPrincipal(user model.User) Principal {
	return Principal{UserID: user.ID, Role: model.RoleManager}
}

func createTestInquiry(t *testing.T, svc *Service, hostelID uint) *model.Inquiry {
	t.Helper()
	inq, err := svc.Create(CreateInput{
		HostelID:     hostelID,
		VisitorName:  "Deniz Kaya",
		VisitorEmail: "deniz@example.com",
		Message:      "Is a single room available from next month?",
	})
	require.NoError(t, err)
	return inq
}

func TestCreateInquiry(t *testing.T) {
	db := newTestDB(t)
	_, hostel := seedHostel(t, db)
	svc := NewService(db)

	t.Run("requires visitor name", func(t *testing.T) {
		_, err := svc.Create(CreateInput{HostelID: hostel.ID, VisitorEmail: "a@b.com"})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("requires email or phone", func(t *testing.T) {
		_, err := svc.Create(CreateInput{HostelID: hostel.ID, VisitorName: "Deniz"})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("unknown hostel", func(t *testing.T) {
		_, err := svc.Create(CreateInput{
			HostelID:     9999,
			VisitorName:  "Deniz",
			VisitorEmail: "deniz@example.com",
		})
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("success defaults and scores", func(t *testing.T) {
		inq := createTestInquiry(t, svc, hostel.ID)

		assert.NotEmpty(t, inq.ID)
		assert.Equal(t, model.InquiryStatusNew, inq.Status)
		assert.Equal(t, model.InquirySourceWebsite, inq.Source)
		// Taze website inquiry: 50 taban + 20 yaş
		assert.Equal(t, 70, inq.PriorityScore)
		assert.Greater(t, inq.QualityScore, 0)
	})
}

func TestUpdateStatusIllegalTransitionLeavesRecordUnchanged(t *testing.T) {
	db := newTestDB(t)
	user, hostel := seedHostel(t, db)
	svc := NewService(db)
	actor := managerPrincipal(user)

	inq := createTestInquiry(t, svc, hostel.ID)

	// NEW -> INTERESTED tabloda yok
	_, err := svc.UpdateStatus(actor, inq.ID, model.InquiryStatusInterested, "")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "NEW")
	assert.Contains(t, err.Error(), "INTERESTED")

	var reloaded model.Inquiry
	require.NoError(t, db.First(&reloaded, "id = ?", inq.ID).Error)
	assert.Equal(t, model.InquiryStatusNew, reloaded.Status)
}

func TestUpdateStatusDirectConversionRejected(t *testing.T) {
	db := newTestDB(t)
	user, hostel := seedHostel(t, db)
	svc := NewService(db)

	inq := createTestInquiry(t, svc, hostel.ID)

	_, err := svc.UpdateStatus(managerPrincipal(user), inq.ID, model.InquiryStatusConverted, "")
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateStatusFirstContactStampsContactInfo(t *testing.T) {
	db := newTestDB(t)
	user, hostel := seedHostel(t, db)
	svc := NewService(db)
	actor := managerPrincipal(user)

	inq := createTestInquiry(t, svc, hostel.ID)

	updated, err := svc.UpdateStatus(actor, inq.ID, model.InquiryStatusContacted, "reached by phone")
	require.NoError(t, err)

	require.NotNil(t, updated.ContactedAt)
	require.NotNil(t, updated.ContactedBy)
	assert.Equal(t, user.ID, *updated.ContactedBy)
	assert.Contains(t, updated.Notes, "Status changed to CONTACTED: reached by phone")

	firstContact := *updated.ContactedAt

	// İkinci geçişler contact damgasını değiştirmez
	updated, err = svc.UpdateStatus(actor, inq.ID, model.InquiryStatusInterested, "")
	require.NoError(t, err)
	assert.WithinDuration(t, firstContact, *updated.ContactedAt, time.Second)
}

func TestUpdateStatusForbiddenRole(t *testing.T) {
	db := newTestDB(t)
	_, hostel := seedHostel(t, db)
	svc := NewService(db)

	inq := createTestInquiry(t, svc, hostel.ID)

	_, err := svc.UpdateStatus(Principal{UserID: 1, Role: "viewer"}, inq.ID, model.InquiryStatusContacted, "")
	assert.Equal(t, apperror.CodeForbidden, apperror.CodeOf(err))
}

func TestAssign(t *testing.T) {
	db := newTestDB(t)
	user, hostel := seedHostel(t, db)
	svc := NewService(db)
	actor := managerPrincipal(user)

	staff := model.User{
		Email:       "staff@acmehostels.com",
		Password:    "hashed",
		Username:    "acme-staff",
		CompanyName: "Acme Hostels",
		Role:        model.RoleStaff,
	}
	require.NoError(t, db.Create(&staff).Error)

	inq := createTestInquiry(t, svc, hostel.ID)

	t.Run("unknown assignee", func(t *testing.T) {
		_, err := svc.Assign(actor, inq.ID, 9999)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("new inquiry moves to assigned", func(t *testing.T) {
		updated, err := svc.Assign(actor, inq.ID, staff.ID)
		require.NoError(t, err)
		assert.Equal(t, model.InquiryStatusAssigned, updated.Status)
		require.NotNil(t, updated.AssignedTo)
		assert.Equal(t, staff.ID, *updated.AssignedTo)
		assert.NotNil(t, updated.AssignedAt)
	})

	t.Run("contacted inquiry keeps status on reassign", func(t *testing.T) {
		_, err := svc.UpdateStatus(actor, inq.ID, model.InquiryStatusContacted, "")
		require.NoError(t, err)

		updated, err := svc.Assign(actor, inq.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, model.InquiryStatusContacted, updated.Status)
		assert.Equal(t, user.ID, *updated.AssignedTo)
	})
}

func TestRecordFollowUp(t *testing.T) {
	db := newTestDB(t)
	user, hostel := seedHostel(t, db)
	svc := NewService(db)
	actor := managerPrincipal(user)

	inq := createTestInquiry(t, svc, hostel.ID)

	t.Run("rejects short notes", func(t *testing.T) {
		_, err := svc.RecordFollowUp(actor, FollowUpInput{
			InquiryID:      inq.ID,
			ContactMethod:  model.ContactMethodPhone,
			ContactOutcome: model.OutcomeNoAnswer,
			Notes:          "ok",
		})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("rejects past next follow-up date", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		_, err := svc.RecordFollowUp(actor, FollowUpInput{
			InquiryID:        inq.ID,
			ContactMethod:    model.ContactMethodPhone,
			ContactOutcome:   model.OutcomeNoAnswer,
			Notes:            "tried calling, no answer",
			NextFollowUpDate: &past,
		})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("attempt numbers increase per inquiry", func(t *testing.T) {
		first, err := svc.RecordFollowUp(actor, FollowUpInput{
			InquiryID:      inq.ID,
			ContactMethod:  model.ContactMethodPhone,
			ContactOutcome: model.OutcomeNoAnswer,
			Notes:          "tried calling, no answer",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, first.AttemptNumber)
		assert.False(t, first.IsSuccessful)

		second, err := svc.RecordFollowUp(actor, FollowUpInput{
			InquiryID:      inq.ID,
			ContactMethod:  model.ContactMethodEmail,
			ContactOutcome: model.OutcomeEmailSent,
			Notes:          "sent room availability details",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, second.AttemptNumber)

		var reloaded model.Inquiry
		require.NoError(t, db.First(&reloaded, "id = ?", inq.ID).Error)
		assert.Equal(t, 2, reloaded.FollowUpCount)
		assert.NotNil(t, reloaded.LastFollowUpAt)
		// Başarılı temas yok, yanıt süresi henüz boş
		assert.Nil(t, reloaded.ResponseTimeMinutes)
	})

	t.Run("first successful contact sets response time", func(t *testing.T) {
		followUp, err := svc.RecordFollowUp(actor, FollowUpInput{
			InquiryID:      inq.ID,
			ContactMethod:  model.ContactMethodPhone,
			ContactOutcome: model.OutcomeConnected,
			Notes:          "spoke with visitor, interested in a tour",
		})
		require.NoError(t, err)
		assert.True(t, followUp.IsSuccessful)

		var reloaded model.Inquiry
		require.NoError(t, db.First(&reloaded, "id = ?", inq.ID).Error)
		require.NotNil(t, reloaded.ResponseTimeMinutes)
		assert.GreaterOrEqual(t, *reloaded.ResponseTimeMinutes, 0)
	})

	t.Run("unknown inquiry", func(t *testing.T) {
		_, err := svc.RecordFollowUp(actor, FollowUpInput{
			InquiryID:      "no-such-id",
			ContactMethod:  model.ContactMethodPhone,
			ContactOutcome: model.OutcomeNoAnswer,
			Notes:          "tried calling, no answer",
		})
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestGetWithFollowUpsOrdersByAttempt(t *testing.T) {
	db := newTestDB(t)
	user, hostel := seedHostel(t, db)
	svc := NewService(db)
	actor := managerPrincipal(user)

	inq := createTestInquiry(t, svc, hostel.ID)

	for i := 0; i < 3; i++ {
		_, err := svc.RecordFollowUp(actor, FollowUpInput{
			InquiryID:      inq.ID,
			ContactMethod:  model.ContactMethodPhone,
			ContactOutcome: model.OutcomeNoAnswer,
			Notes:          fmt.Sprintf("attempt %d, still no answer", i+1),
		})
		require.NoError(t, err)
	}

	loaded, err := svc.GetWithFollowUps(inq.ID)
	require.NoError(t, err)
	require.Len(t, loaded.FollowUps, 3)
	for i, followUp := range loaded.FollowUps {
		assert.Equal(t, i+1, followUp.AttemptNumber)
	}
}

func TestConvert(t *testing.T) {
	db := newTestDB(t)
	user, hostel := seedHostel(t, db)
	svc := NewService(db)
	actor := managerPrincipal(user)

	newBooking := func(hostelID uint) model.Booking {
		booking := model.Booking{
			HostelID:  hostelID,
			GuestName: "Deniz Kaya",
			Status:    model.BookingStatusConfirmed,
			CreatedBy: user.ID,
		}
		require.NoError(t, db.Create(&booking).Error)
		return booking
	}

	t.Run("success", func(t *testing.T) {
		inq := createTestInquiry(t, svc, hostel.ID)
		booking := newBooking(hostel.ID)

		converted, err := svc.Convert(actor, inq.ID, booking.ID)
		require.NoError(t, err)

		assert.True(t, converted.ConvertedToBooking)
		assert.Equal(t, model.InquiryStatusConverted, converted.Status)
		assert.Equal(t, 0, converted.PriorityScore)
		require.NotNil(t, converted.BookingID)
		assert.Equal(t, booking.ID, *converted.BookingID)
		assert.Equal(t, user.ID, *converted.ConvertedBy)
		assert.Contains(t, converted.Notes, fmt.Sprintf("booking #%d", booking.ID))
	})

	t.Run("second conversion fails and keeps first booking", func(t *testing.T) {
		inq := createTestInquiry(t, svc, hostel.ID)
		first := newBooking(hostel.ID)
		second := newBooking(hostel.ID)

		_, err := svc.Convert(actor, inq.ID, first.ID)
		require.NoError(t, err)

		_, err = svc.Convert(actor, inq.ID, second.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Contains(t, err.Error(), "already converted")

		var reloaded model.Inquiry
		require.NoError(t, db.First(&reloaded, "id = ?", inq.ID).Error)
		assert.Equal(t, first.ID, *reloaded.BookingID)
	})

	t.Run("not interested inquiry cannot convert", func(t *testing.T) {
		inq := createTestInquiry(t, svc, hostel.ID)
		booking := newBooking(hostel.ID)

		_, err := svc.UpdateStatus(actor, inq.ID, model.InquiryStatusNotInterested, "")
		require.NoError(t, err)

		_, err = svc.Convert(actor, inq.ID, booking.ID)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("booking from another hostel", func(t *testing.T) {
		other := model.Hostel{
			Name:    "Acme North",
			Type:    model.HostelTypeBoys,
			City:    "Ankara",
			Country: "Turkey",
			UserID:  user.ID,
		}
		require.NoError(t, db.Create(&other).Error)

		inq := createTestInquiry(t, svc, hostel.ID)
		booking := newBooking(other.ID)

		_, err := svc.Convert(actor, inq.ID, booking.ID)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("unknown booking", func(t *testing.T) {
		inq := createTestInquiry(t, svc, hostel.ID)
		_, err := svc.Convert(actor, inq.ID, 9999)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestReverseConversion(t *testing.T) {
	db := newTestDB(t)
	user, hostel := seedHostel(t, db)
	svc := NewService(db)
	actor := managerPrincipal(user)

	t.Run("requires reason", func(t *testing.T) {
		inq := createTestInquiry(t, svc, hostel.ID)
		_, err := svc.ReverseConversion(actor, inq.ID, "")
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("rejects non-converted inquiry", func(t *testing.T) {
		inq := createTestInquiry(t, svc, hostel.ID)
		_, err := svc.ReverseConversion(actor, inq.ID, "guest cancelled")
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("clears conversion fields and restores interested", func(t *testing.T) {
		inq := createTestInquiry(t, svc, hostel.ID)
		booking := model.Booking{
			HostelID:  hostel.ID,
			GuestName: "Deniz Kaya",
			CreatedBy: user.ID,
		}
		require.NoError(t, db.Create(&booking).Error)

		_, err := svc.Convert(actor, inq.ID, booking.ID)
		require.NoError(t, err)

		reversed, err := svc.ReverseConversion(actor, inq.ID, "guest cancelled before check-in")
		require.NoError(t, err)

		assert.False(t, reversed.ConvertedToBooking)
		assert.Nil(t, reversed.BookingID)
		assert.Nil(t, reversed.ConvertedAt)
		assert.Equal(t, model.InquiryStatusInterested, reversed.Status)
		assert.Greater(t, reversed.PriorityScore, 0)
		assert.Contains(t, reversed.Notes, "guest cancelled before check-in")

		var reloaded model.Inquiry
		require.NoError(t, db.First(&reloaded, "id = ?", inq.ID).Error)
		assert.False(t, reloaded.ConvertedToBooking)
		assert.Equal(t, model.InquiryStatusInterested, reloaded.Status)
	})
}

func TestBulkAssign(t *testing.T) {
	db := newTestDB(t)
	user, hostel := seedHostel(t, db)
	svc := NewService(db)
	actor := managerPrincipal(user)

	t.Run("staff cannot bulk operate", func(t *testing.T) {
		_, err := svc.BulkAssign(Principal{UserID: 1, Role: model.RoleStaff}, []string{"a"}, user.ID)
		assert.Equal(t, apperror.CodeForbidden, apperror.CodeOf(err))
	})

	t.Run("partial success with skips", func(t *testing.T) {
		first := createTestInquiry(t, svc, hostel.ID)
		second := createTestInquiry(t, svc, hostel.ID)
		terminal := createTestInquiry(t, svc, hostel.ID)

		_, err := svc.UpdateStatus(actor, terminal.ID, model.InquiryStatusNotInterested, "")
		require.NoError(t, err)

		result, err := svc.BulkAssign(actor, []string{first.ID, second.ID, terminal.ID, "missing-id"}, user.ID)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Updated)
		assert.Equal(t, 2, result.Skipped)

		var reloaded model.Inquiry
		require.NoError(t, db.First(&reloaded, "id = ?", first.ID).Error)
		assert.Equal(t, model.InquiryStatusAssigned, reloaded.Status)
		assert.Equal(t, user.ID, *reloaded.AssignedTo)
	})
}

func TestBulkRescore(t *testing.T) {
	db := newTestDB(t)
	user, hostel := seedHostel(t, db)
	svc := NewService(db)
	actor := managerPrincipal(user)

	fresh := createTestInquiry(t, svc, hostel.ID)
	stale := createTestInquiry(t, svc, hostel.ID)
	converted := createTestInquiry(t, svc, hostel.ID)

	booking := model.Booking{HostelID: hostel.ID, GuestName: "Deniz", CreatedBy: user.ID}
	require.NoError(t, db.Create(&booking).Error)
	_, err := svc.Convert(actor, converted.ID, booking.ID)
	require.NoError(t, err)

	// Kayıt 10 gün önce oluşturulmuş gibi yaşlandır
	require.NoError(t, db.Model(&model.Inquiry{}).
		Where("id = ?", stale.ID).
		Update("created_at", time.Now().AddDate(0, 0, -10)).Error)

	result, err := svc.BulkRescore(hostel.ID)
	require.NoError(t, err)

	// Taze kayıt aynı puanda kalır, yaşlanan kayıt düşer
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Skipped)

	var reloaded model.Inquiry
	require.NoError(t, db.First(&reloaded, "id = ?", stale.ID).Error)
	assert.Equal(t, 40, reloaded.PriorityScore) // 50 - 10 yaş cezası
	assert.Less(t, reloaded.PriorityScore, fresh.PriorityScore)

	// Terminal kayıt dokunulmadan 0'da kalır
	var terminal model.Inquiry
	require.NoError(t, db.First(&terminal, "id = ?", converted.ID).Error)
	assert.Equal(t, 0, terminal.PriorityScore)
}

func TestMarkReadAndSoftDelete(t *testing.T) {
	db := newTestDB(t)
	user, hostel := seedHostel(t, db)
	svc := NewService(db)
	actor := managerPrincipal(user)

	inq := createTestInquiry(t, svc, hostel.ID)

	require.NoError(t, svc.MarkRead(actor, inq.ID))
	var reloaded model.Inquiry
	require.NoError(t, db.First(&reloaded, "id = ?", inq.ID).Error)
	assert.True(t, reloaded.ReadStatus)

	require.NoError(t, svc.SoftDelete(actor, inq.ID))
	_, err := svc.Get(inq.ID)
	assert.True(t, apperror.IsNotFound(err))

	// Soft delete: satır unscoped sorguyla hala durur
	var count int64
	require.NoError(t, db.Unscoped().Model(&model.Inquiry{}).Where("id = ?", inq.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	user, hostel := seedHostel(t, db)
	svc := NewService(db)
	actor := managerPrincipal(user)

	first := createTestInquiry(t, svc, hostel.ID)
	second := createTestInquiry(t, svc, hostel.ID)
	_, err := svc.UpdateStatus(actor, second.ID, model.InquiryStatusContacted, "")
	require.NoError(t, err)
	require.NoError(t, svc.MarkRead(actor, first.ID))

	t.Run("by status", func(t *testing.T) {
		status := model.InquiryStatusContacted
		out, err := svc.List(hostel.ID, ListFilters{Status: &status})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, second.ID, out[0].ID)
	})

	t.Run("only unread", func(t *testing.T) {
		out, err := svc.List(hostel.ID, ListFilters{OnlyUnread: true})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, second.ID, out[0].ID)
	})

	t.Run("ordered by priority score", func(t *testing.T) {
		out, err := svc.List(hostel.ID, ListFilters{})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.GreaterOrEqual(t, out[0].PriorityScore, out[1].PriorityScore)
	})
}
