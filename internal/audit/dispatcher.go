package audit

import "github.com/rs/zerolog"

type Event struct {
	EstablishmentID uint
	ActorID         *uint
	Action          string
	Entity          string
	EntityID        *uint
	Metadata        any
}

// Sink persists audit entries. *Logger is the gorm-backed one.
type Sink interface {
	Log(establishmentID uint, actorID *uint, action, entity string, entityID *uint, metadata any) error
}

type Dispatcher struct {
	logger Sink
	queue  chan Event
	log    zerolog.Logger
}

func NewDispatcher(logger Sink, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		log:    log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.EstablishmentID,
			ev.ActorID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// never let auditing break the API
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
