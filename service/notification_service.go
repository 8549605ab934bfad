package service

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vendor-collective/config"
	"vendor-collective/logging"
	"vendor-collective/utils"
)

// NotificationService sends SMS through the Twilio REST API. Without
// credentials it runs in mock mode and only logs the messages, which keeps
// local development working with no account.
type NotificationService struct {
	cfg    config.NotificationsConfig
	client *http.Client
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(cfg config.NotificationsConfig) *NotificationService {
	return &NotificationService{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Ensure NotificationService implements NotificationServiceInterface
var _ NotificationServiceInterface = (*NotificationService)(nil)

func (s *NotificationService) mockMode() bool {
	return s.cfg.TwilioAccountSID == "" || s.cfg.TwilioAuthToken == "" || s.cfg.TwilioPhoneNumber == ""
}

// NotifyOrderConfirmed tells a vendor their order was finalized.
func (s *NotificationService) NotifyOrderConfirmed(phone, name string, amountPaise int64) {
	body := fmt.Sprintf("Hi %s! Your order is confirmed. %s was debited from your wallet. Delivery is on its way today.",
		name, utils.FormatINR(amountPaise))
	s.send(phone, body)
}

// NotifySupplierSummary tells a supplier what was ordered from them today.
func (s *NotificationService) NotifySupplierSummary(phone, name, productsSummary string) {
	body := fmt.Sprintf("Hi %s! Today's pooled orders for your goods: %s. An agent will pick them up shortly.",
		name, productsSummary)
	s.send(phone, body)
}

// NotifyRouteAssigned tells an agent their route is ready.
func (s *NotificationService) NotifyRouteAssigned(phone, name string, stopCount int) {
	body := fmt.Sprintf("Hi %s! A delivery route with %d stops has been assigned to you. Open the app to start.",
		name, stopCount)
	s.send(phone, body)
}

// send delivers one SMS. Failures are logged and swallowed; notifications
// never affect the outcome of the operation that triggered them.
func (s *NotificationService) send(phone, body string) {
	if phone == "" {
		logging.L.Warnf("⚠️ Notification skipped: no phone number on profile")
		return
	}

	if s.mockMode() {
		logging.L.Infof("📱 [MOCK SMS] to %s: %s", phone, body)
		return
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.cfg.TwilioAccountSID)
	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", s.cfg.TwilioPhoneNumber)
	form.Set("Body", body)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		logging.L.Errorf("❌ Notification: Error building request: %v", err)
		return
	}
	req.SetBasicAuth(s.cfg.TwilioAccountSID, s.cfg.TwilioAuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		logging.L.Errorf("❌ Notification: Error sending SMS to %s: %v", phone, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logging.L.Errorf("❌ Notification: Twilio returned %d for SMS to %s", resp.StatusCode, phone)
		return
	}
	logging.L.Infof("📱 SMS sent to %s", phone)
}
