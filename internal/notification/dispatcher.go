package notification

import "github.com/rs/zerolog"

// Dispatcher hands notification events to the mailer on a worker
// goroutine. Dispatch never blocks the booking flow: a full queue drops
// the event and logs it.
type Dispatcher struct {
	mailer Mailer
	queue  chan Event
	log    zerolog.Logger
}

func NewDispatcher(mailer Mailer, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan Event, 100),
		log:    log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		var err error
		switch ev.Type {
		case EventConfirmation:
			err = d.mailer.SendConfirmation(ev)
		case EventCancellation:
			err = d.mailer.SendCancellation(ev)
		case EventReschedule:
			err = d.mailer.SendReschedule(ev)
		}
		if err != nil {
			d.log.Error().Err(err).
				Str("type", string(ev.Type)).
				Uint("appointment_id", ev.Appointment.ID).
				Msg("notification delivery failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().
			Str("type", string(ev.Type)).
			Msg("notification queue full, dropping event")
	}
}
