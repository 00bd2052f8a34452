package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type WelcomeEmailData struct {
	Name string
}

type InquiryNotificationData struct {
	HostelName    string
	VisitorName   string
	VisitorEmail  string
	VisitorPhone  string
	Message       string
	PriorityScore int
}

type FollowUpReminderData struct {
	StaffName   string
	VisitorName string
	HostelName  string
	DueAt       time.Time
}

type SubscriptionExpiryWarningData struct {
	CompanyName string
	PlanName    string
	DaysLeft    int
	ExpiryDate  time.Time
}

type PasswordResetData struct {
	ResetLink string
}

type InquiryStatsData struct {
	CompanyName    string
	Period         string
	TotalInquiries int64
	Converted      int64
	ConversionRate float64
	StartDate      time.Time
}

func NewEmailService(apiKey, from string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	log.Printf("Resend API response: Status: %d", resp.StatusCode)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	return nil
}

// Email sending methods
func (s *EmailService) SendWelcomeEmail(email, name string) error {
	data := WelcomeEmailData{
		Name: name,
	}
	return s.sendTemplateEmail(email, "Welcome to HostelHub! 🎉", "welcome.html", data)
}

func (s *EmailService) SendInquiryNotificationEmail(
	ownerEmail, hostelName, visitorName, visitorEmail, visitorPhone, message string,
	priorityScore int,
) error {
	data := InquiryNotificationData{
		HostelName:    hostelName,
		VisitorName:   visitorName,
		VisitorEmail:  visitorEmail,
		VisitorPhone:  visitorPhone,
		Message:       message,
		PriorityScore: priorityScore,
	}
	return s.sendTemplateEmail(ownerEmail, "New Inquiry for Your Hostel! 📋", "inquiry_notification.html", data)
}

func (s *EmailService) SendFollowUpReminderEmail(staffEmail, staffName, visitorName, hostelName string, dueAt time.Time) error {
	data := FollowUpReminderData{
		StaffName:   staffName,
		VisitorName: visitorName,
		HostelName:  hostelName,
		DueAt:       dueAt,
	}
	return s.sendTemplateEmail(staffEmail, "Follow-up Due: "+visitorName, "followup_reminder.html", data)
}

func (s *EmailService) SendSubscriptionExpiryWarning(email, companyName, planName string, daysLeft int, expiryDate time.Time) error {
	data := SubscriptionExpiryWarningData{
		CompanyName: companyName,
		PlanName:    planName,
		DaysLeft:    daysLeft,
		ExpiryDate:  expiryDate,
	}
	return s.sendTemplateEmail(email, fmt.Sprintf("Your subscription expires in %d days", daysLeft), "subscription_expiry.html", data)
}

func (s *EmailService) SendPasswordResetEmail(email, resetLink string) error {
	data := PasswordResetData{
		ResetLink: resetLink,
	}
	return s.sendTemplateEmail(email, "Reset Your Password", "password_reset.html", data)
}

func (s *EmailService) SendInquiryStatsEmail(email, companyName, period string, total, converted int64, conversionRate float64, startDate time.Time) error {
	data := InquiryStatsData{
		CompanyName:    companyName,
		Period:         period,
		TotalInquiries: total,
		Converted:      converted,
		ConversionRate: conversionRate,
		StartDate:      startDate,
	}
	return s.sendTemplateEmail(email, fmt.Sprintf("Your %s inquiry report", period), "inquiry_stats.html", data)
}
