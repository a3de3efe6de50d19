package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"devclub.community/configs"
	"devclub.community/configs/configslog"
)

// MailerServiceError is a typed service-level error.
type MailerServiceError string

func (e MailerServiceError) Error() string { return string(e) }

const (
	ErrSubscribeFailed    MailerServiceError = "failed to subscribe to newsletter"
	ErrContactSyncFailed  MailerServiceError = "failed to add contact"
	ErrWelcomeMailFailed  MailerServiceError = "failed to send welcome email"
	ErrContactRelayFailed MailerServiceError = "failed to relay contact message"
)

const mailTimeout = 10 * time.Second

// Subscriber is a newsletter signup.
type Subscriber struct {
	Email     string
	FirstName string
	LastName  string
	Tags      []string
}

// ContactMessage is one contact-form submission relayed to the club inbox.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// IMailerService relays email side effects to the third-party providers.
// Every call is best-effort: failures are reported to the direct caller but
// must never roll back a core write that already happened.
type IMailerService interface {
	SubscribeNewsletter(sub Subscriber) error
	UpsertBrevoContact(email string, attributes map[string]string) error
	SendWelcomeEmail(email, name string) error
	RelayContactMessage(msg ContactMessage) error
}

// MailerService implements IMailerService over Fiber's HTTP agent.
type MailerService struct {
	mailchimp configs.Mailchimp
	brevo     configs.Brevo
	links     configs.CommunityLinks
}

// NewMailerService wires the provider credentials from config.
func NewMailerService(cfg *configs.AppConfig) IMailerService {
	return &MailerService{
		mailchimp: cfg.Mailchimp,
		brevo:     cfg.Brevo,
		links:     cfg.Links,
	}
}

func postJSON(url string, headers map[string]string, body interface{}) (int, []byte, error) {
	agent := fiber.Post(url).Timeout(mailTimeout).JSON(body)
	for k, v := range headers {
		agent.Set(k, v)
	}
	code, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, nil, errs[0]
	}
	return code, respBody, nil
}

// SubscribeNewsletter adds the subscriber to the Mailchimp audience.
func (s *MailerService) SubscribeNewsletter(sub Subscriber) error {
	url := fmt.Sprintf("https://%s.api.mailchimp.com/3.0/lists/%s/members",
		s.mailchimp.ServerPrefix, s.mailchimp.AudienceID)

	payload := fiber.Map{
		"email_address": sub.Email,
		"status":        "subscribed",
		"merge_fields": fiber.Map{
			"FNAME": sub.FirstName,
			"LNAME": sub.LastName,
		},
		"tags": sub.Tags,
	}

	agent := fiber.Post(url).Timeout(mailTimeout).JSON(payload)
	agent.BasicAuth("anystring", s.mailchimp.APIKey)
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		configslog.Log.Error("mailchimp subscribe failed", zap.Error(errs[0]))
		return ErrSubscribeFailed
	}
	if code >= 300 {
		configslog.Log.Error("mailchimp subscribe rejected",
			zap.Int("status", code), zap.ByteString("body", body))
		return ErrSubscribeFailed
	}
	return nil
}

// UpsertBrevoContact creates or updates a Brevo contact. An
// already-existing contact counts as success.
func (s *MailerService) UpsertBrevoContact(email string, attributes map[string]string) error {
	payload := fiber.Map{
		"email":         email,
		"attributes":    attributes,
		"listIds":       []int{1},
		"updateEnabled": true,
	}
	code, body, err := postJSON("https://api.brevo.com/v3/contacts",
		map[string]string{"api-key": s.brevo.APIKey}, payload)
	if err != nil {
		configslog.Log.Error("brevo contact upsert failed", zap.Error(err))
		return ErrContactSyncFailed
	}
	// 204 on update, 201 on create; duplicates arrive as 400 with a
	// duplicate_parameter code and are fine.
	if code >= 300 && !isBrevoDuplicate(body) {
		configslog.Log.Error("brevo contact upsert rejected",
			zap.Int("status", code), zap.ByteString("body", body))
		return ErrContactSyncFailed
	}
	return nil
}

func isBrevoDuplicate(body []byte) bool {
	return strings.Contains(string(body), "duplicate_parameter")
}

// SendWelcomeEmail sends the onboarding email through Brevo.
func (s *MailerService) SendWelcomeEmail(email, name string) error {
	if name == "" {
		name = "there"
	}
	payload := fiber.Map{
		"sender":  fiber.Map{"name": s.brevo.SenderName, "email": s.brevo.SenderEmail},
		"to":      []fiber.Map{{"email": email, "name": name}},
		"subject": fmt.Sprintf("Welcome to %s!", s.brevo.SenderName),
		"htmlContent": fmt.Sprintf(
			"<h1>Welcome to %s!</h1><p>Hi %s, thanks for joining our community of developers and tech enthusiasts.</p>"+
				"<p>Explore upcoming events and join the conversation on Discord: %s</p>",
			s.brevo.SenderName, name, s.links.Discord),
	}
	code, body, err := postJSON("https://api.brevo.com/v3/smtp/email",
		map[string]string{"api-key": s.brevo.APIKey}, payload)
	if err != nil {
		configslog.Log.Error("welcome email failed", zap.Error(err))
		return ErrWelcomeMailFailed
	}
	if code >= 300 {
		configslog.Log.Error("welcome email rejected",
			zap.Int("status", code), zap.ByteString("body", body))
		return ErrWelcomeMailFailed
	}
	return nil
}

// RelayContactMessage forwards a contact-form submission to the club inbox.
func (s *MailerService) RelayContactMessage(msg ContactMessage) error {
	payload := fiber.Map{
		"sender":  fiber.Map{"name": s.brevo.SenderName, "email": s.brevo.SenderEmail},
		"to":      []fiber.Map{{"email": s.links.Email}},
		"replyTo": fiber.Map{"email": msg.Email, "name": msg.Name},
		"subject": fmt.Sprintf("[Contact] %s", msg.Subject),
		"htmlContent": fmt.Sprintf("<p><strong>%s</strong> (%s) wrote:</p><p>%s</p>",
			msg.Name, msg.Email, msg.Message),
	}
	code, body, err := postJSON("https://api.brevo.com/v3/smtp/email",
		map[string]string{"api-key": s.brevo.APIKey}, payload)
	if err != nil {
		configslog.Log.Error("contact relay failed", zap.Error(err))
		return ErrContactRelayFailed
	}
	if code >= 300 {
		configslog.Log.Error("contact relay rejected",
			zap.Int("status", code), zap.ByteString("body", body))
		return ErrContactRelayFailed
	}
	return nil
}

var _ IMailerService = (*MailerService)(nil)
