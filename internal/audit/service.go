package audit

import (
	"encoding/json"

	"asador-backend/internal/database"
	"asador-backend/internal/models"
)

type LogOptions struct {
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      interface{}
	After       interface{}
}

// WriteLog guarda un registro de auditoría. Es best-effort: el que llama decide
// si un fallo aquí amerita algo más que un log.
func WriteLog(opts LogOptions) error {
	entry := models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
	}

	if opts.Before != nil {
		if raw, err := json.Marshal(opts.Before); err == nil {
			entry.BeforeData = string(raw)
		}
	}
	if opts.After != nil {
		if raw, err := json.Marshal(opts.After); err == nil {
			entry.AfterData = string(raw)
		}
	}

	return database.DB.Create(&entry).Error
}
