package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/qurbanku/internal/utils"
)

// WhatsAppService delivers OTP codes and admin notifications through a
// WhatsApp Cloud template-message API.
type WhatsAppService struct {
	token       string
	baseURL     string
	version     string
	phoneID     string
	otpTemplate string
	adminPhone  string
	client      *http.Client
	log         *logrus.Logger
}

// NewWhatsAppService creates a WhatsAppService.
func NewWhatsAppService(token, baseURL, version, phoneID, otpTemplate, adminPhone string, log *logrus.Logger) *WhatsAppService {
	return &WhatsAppService{
		token:       token,
		baseURL:     strings.TrimRight(baseURL, "/"),
		version:     version,
		phoneID:     phoneID,
		otpTemplate: otpTemplate,
		adminPhone:  adminPhone,
		client:      &http.Client{Timeout: 15 * time.Second},
		log:         log,
	}
}

type templateLanguage struct {
	Code string `json:"code"`
}

type templateParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type templateComponent struct {
	Type       string              `json:"type"`
	Parameters []templateParameter `json:"parameters"`
}

type messageTemplate struct {
	Name       string              `json:"name"`
	Language   templateLanguage    `json:"language"`
	Components []templateComponent `json:"components"`
}

type textBody struct {
	Body string `json:"body"`
}

type whatsAppMessage struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Template         *messageTemplate `json:"template,omitempty"`
	Text             *textBody        `json:"text,omitempty"`
}

// SendOTP delivers a one-time code via the configured template.
func (s *WhatsAppService) SendOTP(phone, code, action string) error {
	msg := whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               strings.TrimPrefix(phone, "+"),
		Type:             "template",
		Template: &messageTemplate{
			Name:     s.otpTemplate,
			Language: templateLanguage{Code: "id"},
			Components: []templateComponent{{
				Type: "body",
				Parameters: []templateParameter{
					{Type: "text", Text: code},
					{Type: "text", Text: action},
				},
			}},
		},
	}

	return s.send(msg)
}

// NotifyNewOrder sends a plain-text order summary to the admin number.
func (s *WhatsAppService) NotifyNewOrder(orderNumber, customer, phone string, amount float64, locale string) error {
	if s.adminPhone == "" {
		return nil
	}

	body := fmt.Sprintf("Pesanan baru %s\nPelanggan: %s (%s)\nTotal: %s",
		orderNumber, customer, phone, utils.FormatCurrency(amount, locale))

	msg := whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               strings.TrimPrefix(s.adminPhone, "+"),
		Type:             "text",
		Text:             &textBody{Body: body},
	}

	return s.send(msg)
}

func (s *WhatsAppService) send(msg whatsAppMessage) error {
	if s.token == "" || s.phoneID == "" {
		s.log.WithField("to", msg.To).Warn("whatsapp not configured, message dropped")
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/%s/messages", s.baseURL, s.version, s.phoneID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.WithField("to", msg.To).WithError(err).Error("whatsapp send failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.WithFields(logrus.Fields{"to": msg.To, "status": resp.StatusCode}).Error("whatsapp send rejected")
		return fmt.Errorf("whatsapp returned status %d", resp.StatusCode)
	}

	return nil
}
