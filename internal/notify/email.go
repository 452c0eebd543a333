package notify

import (
	"fmt"

	"helpdesk/backend/internal/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
)

// StaffDirectory is the slice of storage the email notifier needs to find
// staff recipients.
type StaffDirectory interface {
	ListStaffEmails() ([]string, error)
}

// EmailNotifier delivers notifications via SendGrid. Without an API key it
// only logs the message, which is the development mode.
type EmailNotifier struct {
	fromEmail string
	fromName  string
	baseURL   string
	apiKey    string
	staff     StaffDirectory
}

func NewEmailNotifier(fromEmail, fromName, baseURL, apiKey string, staff StaffDirectory) *EmailNotifier {
	if apiKey == "" {
		log.Warn("email notifier in console-only mode (set SENDGRID_API_KEY for delivery)")
	}
	return &EmailNotifier{
		fromEmail: fromEmail,
		fromName:  fromName,
		baseURL:   baseURL,
		apiKey:    apiKey,
		staff:     staff,
	}
}

func (e *EmailNotifier) ComplaintCreated(c *models.Complaint) error {
	subject := fmt.Sprintf("Complaint #%d - Confirmation", c.ID)
	body := fmt.Sprintf("Hi %s,\n\nYour complaint %q has been received and will be triaged shortly.\n\nTrack it at %s/complaints/%d\n",
		ownerName(c), c.Title, e.baseURL, c.ID)
	if err := e.send(ownerEmail(c), subject, body); err != nil {
		return err
	}

	// Staff get a separate heads-up about the new complaint.
	emails, err := e.staff.ListStaffEmails()
	if err != nil {
		return err
	}
	staffSubject := fmt.Sprintf("New Complaint #%d - %s", c.ID, c.Title)
	staffBody := fmt.Sprintf("A new %s-urgency complaint was submitted:\n\n%s\n\n%s/complaints/%d\n",
		c.Urgency, c.Description, e.baseURL, c.ID)
	for _, to := range emails {
		if err := e.send(to, staffSubject, staffBody); err != nil {
			return err
		}
	}
	return nil
}

func (e *EmailNotifier) ComplaintAssigned(c *models.Complaint, engineer *models.User) error {
	if engineer == nil || engineer.Email == "" {
		return nil
	}
	subject := fmt.Sprintf("Complaint #%d Assigned to You", c.ID)
	body := fmt.Sprintf("Hi %s,\n\nComplaint #%d (%s) has been assigned to you.\n\n%s/complaints/%d\n",
		engineer.DisplayName(), c.ID, c.Title, e.baseURL, c.ID)
	return e.send(engineer.Email, subject, body)
}

func (e *EmailNotifier) StatusChanged(c *models.Complaint, previousStatus, newStatus string) error {
	subject := fmt.Sprintf("Complaint #%d - Status Updated", c.ID)
	body := fmt.Sprintf("Hi %s,\n\nThe status of your complaint %q changed from %q to %q.\n\n%s/complaints/%d\n",
		ownerName(c), c.Title, previousStatus, newStatus, e.baseURL, c.ID)
	return e.send(ownerEmail(c), subject, body)
}

func (e *EmailNotifier) send(to, subject, body string) error {
	if to == "" {
		return nil
	}
	if e.apiKey == "" {
		log.WithFields(log.Fields{"to": to, "subject": subject}).Info("email (console mode)")
		return nil
	}

	from := mail.NewEmail(e.fromName, e.fromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, body)
	client := sendgrid.NewSendClient(e.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned error status: %d", response.StatusCode)
	}
	return nil
}

func ownerEmail(c *models.Complaint) string {
	if c.User == nil {
		return ""
	}
	return c.User.Email
}

func ownerName(c *models.Complaint) string {
	if c.User == nil {
		return "there"
	}
	return c.User.DisplayName()
}
