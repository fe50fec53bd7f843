// services/alert_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"rentautopro-backend/models"
	"rentautopro-backend/utils"
)

// AlertService evaluates active maintenance alerts on a daily schedule
// and notifies the fleet manager by SMS when a threshold is crossed.
type AlertService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewAlertService(db *gorm.DB) *AlertService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	s := &AlertService{db: db}
	if accountSid != "" && authToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}
	return s
}

func (s *AlertService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	if _, err := c.AddFunc("0 9 * * *", s.ProcessAlerts); err != nil {
		log.Printf("Failed to schedule alert sweep: %v", err)
		return
	}

	c.Start()
	log.Println("Maintenance alert scheduler started")
}

// ProcessAlerts fires every active alert whose threshold has been reached
// and stamps its last_alert_date.
func (s *AlertService) ProcessAlerts() {
	log.Println("Starting maintenance alert sweep...")

	var alerts []models.MaintenanceAlert
	if err := s.db.Preload("Vehicle").Where("is_active = ?", true).Find(&alerts).Error; err != nil {
		log.Printf("Failed to fetch maintenance alerts: %v", err)
		return
	}

	now := time.Now()
	for _, alert := range alerts {
		if !s.alertDue(alert, now) {
			continue
		}

		if err := s.db.Model(&models.MaintenanceAlert{}).
			Where("id = ?", alert.ID).
			Update("last_alert_date", now).Error; err != nil {
			log.Printf("Alert %s: failed to stamp last_alert_date: %v", alert.ID, err)
			continue
		}

		s.notify(alert)
	}

	log.Println("Maintenance alert sweep completed")
}

func (s *AlertService) alertDue(alert models.MaintenanceAlert, now time.Time) bool {
	switch alert.AlertType {
	case models.AlertTypeKM:
		return alert.Vehicle != nil && alert.Vehicle.CurrentKM >= alert.ThresholdValue
	case models.AlertTypeTime:
		since := alert.CreatedAt
		if alert.LastAlertDate != nil {
			since = *alert.LastAlertDate
		}
		return utils.DaysBetween(since, now) >= alert.ThresholdValue
	default:
		return false
	}
}

func (s *AlertService) notify(alert models.MaintenanceAlert) {
	to := os.Getenv("FLEET_MANAGER_PHONE")
	if s.client == nil || to == "" {
		return
	}

	vehicle := "unknown vehicle"
	if alert.Vehicle != nil {
		vehicle = fmt.Sprintf("%s %s (%s)", alert.Vehicle.Brand, alert.Vehicle.Model, alert.Vehicle.LicensePlate)
	}
	body := fmt.Sprintf("Maintenance due for %s: %s alert reached threshold %d", vehicle, alert.AlertType, alert.ThresholdValue)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Alert %s: failed to send SMS: %v", alert.ID, err)
	}
}
