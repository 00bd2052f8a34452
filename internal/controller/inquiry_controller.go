package controller

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internal/inquiry"
	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/apperror"
	"hostelhub_backend/pkg/email"
	"hostelhub_backend/pkg/utils/jwt"
)

type InquiryInput struct {
	VisitorName          string              `json:"visitor_name" validate:"required"`
	VisitorEmail         string              `json:"visitor_email"`
	VisitorPhone         string              `json:"visitor_phone"`
	PreferredCheckInDate *time.Time          `json:"preferred_check_in_date"`
	StayDurationMonths   *int                `json:"stay_duration_months"`
	RoomTypePreference   *model.RoomType     `json:"room_type_preference"`
	Source               model.InquirySource `json:"source"`
	Message              string              `json:"message"`
}

type FollowUpRequest struct {
	ContactMethod    model.ContactMethod  `json:"contact_method" validate:"required"`
	ContactOutcome   model.ContactOutcome `json:"contact_outcome" validate:"required"`
	Notes            string               `json:"notes" validate:"required,min=10"`
	DurationMinutes  *int                 `json:"duration_minutes"`
	NextFollowUpDate *time.Time           `json:"next_follow_up_date"`
}

// serviceError servis hatasını HTTP cevabına çevirir
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch apperror.CodeOf(err) {
	case apperror.CodeNotFound:
		status = fiber.StatusNotFound
	case apperror.CodeValidation:
		status = fiber.StatusBadRequest
	case apperror.CodeForbidden:
		status = fiber.StatusForbidden
	}

	message := "Something went wrong"
	if appErr, ok := err.(*apperror.AppError); ok && appErr.Code != apperror.CodeInternal {
		message = appErr.Message
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"code":  apperror.CodeOf(err),
	})
}

// CreateInquiry public lead formu; hostel sahibine bildirim maili gönderir
func CreateInquiry(c *fiber.Ctx) error {
	hostelIDStr := c.Params("hostel_id")
	hostelID, err := strconv.ParseUint(hostelIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid hostel ID",
		})
	}

	input := new(InquiryInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	inq, err := inquirySvc.Create(inquiry.CreateInput{
		HostelID:             uint(hostelID),
		VisitorName:          input.VisitorName,
		VisitorEmail:         input.VisitorEmail,
		VisitorPhone:         input.VisitorPhone,
		PreferredCheckInDate: input.PreferredCheckInDate,
		StayDurationMonths:   input.StayDurationMonths,
		RoomTypePreference:   input.RoomTypePreference,
		Source:               input.Source,
		Message:              input.Message,
	})
	if err != nil {
		return serviceError(c, err)
	}

	// Hostel sahibine bildir
	if email.GlobalEmailService != nil {
		var hostel model.Hostel
		if err := db.Preload("User").First(&hostel, inq.HostelID).Error; err == nil {
			err := email.GlobalEmailService.SendInquiryNotificationEmail(
				hostel.User.Email,
				hostel.Name,
				inq.VisitorName,
				inq.VisitorEmail,
				inq.VisitorPhone,
				inq.Message,
				inq.PriorityScore,
			)
			if err != nil {
				log.Printf("Could not send inquiry notification email: %v", err)
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Your inquiry has been sent successfully. The hostel will contact you soon.",
		"id":      inq.ID,
	})
}

// ListHostelInquiries hostel'ın inquiry'lerini filtreleyerek getirir
func ListHostelInquiries(c *fiber.Ctx) error {
	hostel := c.Locals("hostel").(*model.Hostel)

	filters := inquiry.ListFilters{}
	if status := c.Query("status"); status != "" {
		s := model.InquiryStatus(status)
		filters.Status = &s
	}
	if source := c.Query("source"); source != "" {
		s := model.InquirySource(source)
		filters.Source = &s
	}
	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		if id, err := strconv.ParseUint(assignedTo, 10, 32); err == nil {
			uid := uint(id)
			filters.AssignedTo = &uid
		}
	}
	filters.OnlyUnread = c.Query("unread") == "true"
	filters.Limit = c.QueryInt("limit", 0)
	filters.Offset = c.QueryInt("offset", 0)

	inquiries, err := inquirySvc.List(hostel.ID, filters)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(inquiries)
}

// GetInquiry inquiry'yi follow-up geçmişiyle getirir
func GetInquiry(c *fiber.Ctx) error {
	inq, err := inquirySvc.GetWithFollowUps(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(inq)
}

// UpdateInquiryStatus durum makinesi üzerinden geçiş yapar
func UpdateInquiryStatus(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := struct {
		Status model.InquiryStatus `json:"status"`
		Note   string              `json:"note"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	inq, err := inquirySvc.UpdateStatus(principalFromClaims(claims), c.Params("id"), input.Status, input.Note)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Inquiry status updated successfully",
		"inquiry": inq,
	})
}

// AssignInquiry inquiry'yi bir kullanıcıya atar
func AssignInquiry(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := struct {
		AssigneeID uint `json:"assignee_id"`
	}{}
	if err := c.BodyParser(&input); err != nil || input.AssigneeID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	inq, err := inquirySvc.Assign(principalFromClaims(claims), c.Params("id"), input.AssigneeID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Inquiry assigned successfully",
		"inquiry": inq,
	})
}

// MarkInquiryAsRead okundu işaretler
func MarkInquiryAsRead(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	if err := inquirySvc.MarkRead(principalFromClaims(claims), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// RecordInquiryFollowUp iletişim denemesini kaydeder
func RecordInquiryFollowUp(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(FollowUpRequest)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	followUp, err := inquirySvc.RecordFollowUp(principalFromClaims(claims), inquiry.FollowUpInput{
		InquiryID:        c.Params("id"),
		ContactMethod:    input.ContactMethod,
		ContactOutcome:   input.ContactOutcome,
		Notes:            input.Notes,
		DurationMinutes:  input.DurationMinutes,
		NextFollowUpDate: input.NextFollowUpDate,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(followUp)
}

// UpdateFollowUpEngagement email engagement bayraklarını günceller
func UpdateFollowUpEngagement(c *fiber.Ctx) error {
	followUpID, err := strconv.ParseUint(c.Params("followup_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid follow-up ID",
		})
	}

	input := struct {
		EmailOpened  bool `json:"email_opened"`
		EmailClicked bool `json:"email_clicked"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if err := inquirySvc.UpdateEngagement(uint(followUpID), input.EmailOpened, input.EmailClicked); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// ConvertInquiry inquiry'yi booking'e dönüştürür. booking_id verilmezse
// inquiry bilgilerinden yeni booking oluşturulur.
func ConvertInquiry(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := struct {
		BookingID      uint       `json:"booking_id"`
		CheckInDate    *time.Time `json:"check_in_date"`
		DurationMonths int        `json:"duration_months"`
		MonthlyRate    float64    `json:"monthly_rate"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	bookingID := input.BookingID
	createdInline := false
	if bookingID == 0 {
		inq, err := inquirySvc.Get(c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		if inq.ConvertedToBooking {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "already converted",
				"code":  apperror.CodeValidation,
			})
		}

		booking := model.Booking{
			HostelID:       inq.HostelID,
			InquiryID:      &inq.ID,
			GuestName:      inq.VisitorName,
			GuestEmail:     inq.VisitorEmail,
			GuestPhone:     inq.VisitorPhone,
			CheckInDate:    input.CheckInDate,
			DurationMonths: input.DurationMonths,
			MonthlyRate:    input.MonthlyRate,
			Status:         model.BookingStatusConfirmed,
			CreatedBy:      claims.UserID,
		}
		if inq.PreferredCheckInDate != nil && booking.CheckInDate == nil {
			booking.CheckInDate = inq.PreferredCheckInDate
		}
		if inq.StayDurationMonths != nil && booking.DurationMonths == 0 {
			booking.DurationMonths = *inq.StayDurationMonths
		}
		if inq.RoomTypePreference != nil {
			booking.RoomType = *inq.RoomTypePreference
		}

		if err := db.Create(&booking).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not create booking",
			})
		}
		bookingID = booking.ID
		createdInline = true
	}

	inq, err := inquirySvc.Convert(principalFromClaims(claims), c.Params("id"), bookingID)
	if err != nil {
		// Dönüşüm kazanılamadıysa bu istek için açılan booking sahipsiz kalmasın
		if createdInline {
			if delErr := db.Delete(&model.Booking{}, bookingID).Error; delErr != nil {
				log.Printf("could not clean up booking %d after failed conversion: %v", bookingID, delErr)
			}
		}
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Inquiry converted successfully",
		"inquiry":    inq,
		"booking_id": bookingID,
	})
}

// ReverseInquiryConversion dönüşümü geri alır
func ReverseInquiryConversion(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := struct {
		Reason string `json:"reason"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	inq, err := inquirySvc.ReverseConversion(principalFromClaims(claims), c.Params("id"), input.Reason)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Conversion reversed",
		"inquiry": inq,
	})
}

// BulkAssignInquiries inquiry'leri toplu atar; kısmi başarı raporlanır
func BulkAssignInquiries(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := struct {
		InquiryIDs []string `json:"inquiry_ids"`
		AssigneeID uint     `json:"assignee_id"`
	}{}
	if err := c.BodyParser(&input); err != nil || len(input.InquiryIDs) == 0 || input.AssigneeID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	result, err := inquirySvc.BulkAssign(principalFromClaims(claims), input.InquiryIDs, input.AssigneeID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(result)
}

// DeleteInquiry inquiry'yi soft-delete yapar
func DeleteInquiry(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	if err := inquirySvc.SoftDelete(principalFromClaims(claims), c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
