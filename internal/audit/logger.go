package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/aviseihq/avisei-api/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	establishmentID uint,
	actorID *uint,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		EstablishmentID: establishmentID,
		ActorID:         actorID,
		Action:          action,
		Entity:          entity,
		EntityID:        entityID,
		Metadata:        metaJSON,
	}

	return l.db.Create(&entry).Error
}
