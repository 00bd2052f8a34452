package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internal/model"
	"hostelhub_backend/pkg/utils/jwt"
)

type BookingInput struct {
	GuestName      string         `json:"guest_name" validate:"required"`
	GuestEmail     string         `json:"guest_email"`
	GuestPhone     string         `json:"guest_phone"`
	CheckInDate    *time.Time     `json:"check_in_date"`
	DurationMonths int            `json:"duration_months"`
	RoomType       model.RoomType `json:"room_type"`
	MonthlyRate    float64        `json:"monthly_rate"`
	Currency       model.Currency `json:"currency"`
}

// CreateBooking hostel için manuel booking oluşturur
func CreateBooking(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	hostel := c.Locals("hostel").(*model.Hostel)

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.GuestName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Guest name is required",
		})
	}

	booking := model.Booking{
		HostelID:       hostel.ID,
		GuestName:      input.GuestName,
		GuestEmail:     input.GuestEmail,
		GuestPhone:     input.GuestPhone,
		CheckInDate:    input.CheckInDate,
		DurationMonths: input.DurationMonths,
		RoomType:       input.RoomType,
		MonthlyRate:    input.MonthlyRate,
		Currency:       input.Currency,
		Status:         model.BookingStatusConfirmed,
		CreatedBy:      claims.UserID,
	}

	if err := db.Create(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create booking",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// ListHostelBookings hostel'ın booking'lerini getirir
func ListHostelBookings(c *fiber.Ctx) error {
	hostel := c.Locals("hostel").(*model.Hostel)

	var bookings []model.Booking
	query := db.Where("hostel_id = ?", hostel.ID).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch bookings",
		})
	}

	return c.JSON(bookings)
}

// GetBooking tek booking getirir
func GetBooking(c *fiber.Ctx) error {
	hostel := c.Locals("hostel").(*model.Hostel)

	var booking model.Booking
	if err := db.Where("id = ? AND hostel_id = ?", c.Params("booking_id"), hostel.ID).
		First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	return c.JSON(booking)
}

// UpdateBookingStatus booking durumunu günceller
func UpdateBookingStatus(c *fiber.Ctx) error {
	hostel := c.Locals("hostel").(*model.Hostel)

	input := struct {
		Status model.BookingStatus `json:"status"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var booking model.Booking
	if err := db.Where("id = ? AND hostel_id = ?", c.Params("booking_id"), hostel.ID).
		First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	if err := db.Model(&booking).Update("status", input.Status).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update booking",
		})
	}

	return c.JSON(booking)
}
