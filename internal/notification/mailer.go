package notification

import (
	"github.com/rs/zerolog"

	"github.com/aviseihq/avisei-api/internal/models"
)

type EventType string

const (
	EventConfirmation EventType = "appointment_confirmation"
	EventCancellation EventType = "appointment_cancellation"
	EventReschedule   EventType = "appointment_reschedule"
)

// Event carries everything a mailer needs to notify the participants of
// an appointment. OldDate/OldTime are set for reschedules only.
type Event struct {
	Type        EventType
	Appointment models.Appointment
	OldDate     string
	OldTime     string
}

// Mailer delivers one notification per recipient. Delivery transport is
// an external concern; implementations never block a state transition.
type Mailer interface {
	SendConfirmation(ev Event) error
	SendCancellation(ev Event) error
	SendReschedule(ev Event) error
}

// LogMailer is the default delivery backend: it records the notification
// instead of sending it, which is all the booking flow requires.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) send(ev Event) error {
	evt := m.log.Info().
		Str("type", string(ev.Type)).
		Uint("appointment_id", ev.Appointment.ID).
		Uint("client_id", ev.Appointment.ClientID).
		Uint("professional_id", ev.Appointment.ProfessionalID).
		Uint("establishment_id", ev.Appointment.EstablishmentID).
		Str("date", ev.Appointment.Date).
		Str("time", ev.Appointment.Time)

	if ev.OldDate != "" {
		evt = evt.Str("old_date", ev.OldDate).Str("old_time", ev.OldTime)
	}

	evt.Msg("notification")
	return nil
}

func (m *LogMailer) SendConfirmation(ev Event) error { return m.send(ev) }
func (m *LogMailer) SendCancellation(ev Event) error { return m.send(ev) }
func (m *LogMailer) SendReschedule(ev Event) error   { return m.send(ev) }
