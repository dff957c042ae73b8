package service

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"locacar/internal/entities"
)

// NotifyConfig carries the provider credentials. Empty SendGrid or Twilio
// credentials disable the corresponding channel rather than erroring.
type NotifyConfig struct {
	SendGridAPIKey   string
	FromEmail        string
	FromName         string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// NotifyService sends reservation status notifications to the client over
// email and SMS. Sends are fire-and-forget: a provider failure is logged
// and never surfaces to the caller.
type NotifyService struct {
	cfg NotifyConfig
	log *logrus.Logger
}

func NewNotifyService(cfg NotifyConfig, log *logrus.Logger) *NotifyService {
	if cfg.FromName == "" {
		cfg.FromName = "LocaCar"
	}
	return &NotifyService{cfg: cfg, log: log}
}

// statusWording maps a reservation status to the phrasing used in messages.
func statusWording(status string) string {
	switch status {
	case "confirmed":
		return "confirmed"
	case "completed":
		return "completed"
	case "cancelled_by_client", "cancelled_by_agency":
		return "cancelled"
	default:
		return strings.ReplaceAll(status, "_", " ")
	}
}

// ReservationStatusChanged notifies the reservation's client about the new
// status. Nothing is sent when the client summary is missing.
func (s *NotifyService) ReservationStatusChanged(res entities.ReservationDetail) {
	if res.Client == nil {
		return
	}
	wording := statusWording(res.Status)

	if res.Client.Email != nil && *res.Client.Email != "" {
		go s.sendEmail(res, *res.Client.Email, wording)
	}
	if res.Client.Phone != "" {
		go s.sendSMS(res, wording)
	}
}

func (s *NotifyService) sendEmail(res entities.ReservationDetail, toEmail, wording string) {
	if s.cfg.SendGridAPIKey == "" || s.cfg.FromEmail == "" {
		s.log.Warn("SendGrid is not configured, skipping reservation email")
		return
	}

	clientName := fmt.Sprintf("%s %s", res.Client.FirstName, res.Client.LastName)
	vehicle := "your reserved vehicle"
	if res.Car != nil {
		vehicle = fmt.Sprintf("%s %s (plate %s)", res.Car.Make, res.Car.Model, res.Car.LicensePlate)
	}

	subject := fmt.Sprintf("Your reservation %s is %s", res.ReservationNumber, wording)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation at %s has been %s.\n\n"+
			"Reservation number: %s\n"+
			"Vehicle: %s\n"+
			"Pickup: %s\n"+
			"Return: %s\n\n"+
			"Thank you for choosing %s.",
		clientName, s.cfg.FromName, wording,
		res.ReservationNumber, vehicle,
		res.StartDate.Format("02 Jan 2006"), res.EndDate.Format("02 Jan 2006"),
		s.cfg.FromName,
	)

	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	to := mail.NewEmail(clientName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		s.log.WithError(err).WithField("reservation", res.ReservationNumber).
			Error("failed to send reservation email")
		return
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		s.log.WithFields(logrus.Fields{
			"reservation": res.ReservationNumber,
			"status":      response.StatusCode,
			"body":        response.Body,
		}).Error("SendGrid returned a non-success status")
		return
	}
	s.log.WithFields(logrus.Fields{
		"reservation": res.ReservationNumber,
		"to":          toEmail,
	}).Info("reservation email sent")
}

func (s *NotifyService) sendSMS(res entities.ReservationDetail, wording string) {
	if s.cfg.TwilioAccountSID == "" || s.cfg.TwilioAuthToken == "" || s.cfg.TwilioFromNumber == "" {
		s.log.Warn("Twilio is not configured, skipping reservation SMS")
		return
	}
	toNumber := res.Client.Phone
	if !strings.HasPrefix(toNumber, "+") {
		s.log.WithField("to", toNumber).Warn("destination number is not in E.164 format, SMS may fail")
	}

	body := fmt.Sprintf("%s: reservation %s has been %s. Pickup: %s. Details in your email.",
		s.cfg.FromName, res.ReservationNumber, wording, res.StartDate.Format("02/01"))

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   s.cfg.TwilioAccountSID,
		Password:   s.cfg.TwilioAuthToken,
		AccountSid: s.cfg.TwilioAccountSID,
	})
	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.cfg.TwilioFromNumber)
	params.SetBody(body)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		s.log.WithError(err).WithField("reservation", res.ReservationNumber).
			Error("failed to send reservation SMS")
		return
	}
	fields := logrus.Fields{"reservation": res.ReservationNumber, "to": toNumber}
	if resp != nil && resp.Sid != nil {
		fields["sid"] = *resp.Sid
	}
	s.log.WithFields(fields).Info("reservation SMS sent")
}
