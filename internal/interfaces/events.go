package interfaces

import "crypto-tracker/internal/models"

// EventEmitter defines the interface for emitting tracker events
type EventEmitter interface {
	EmitEvent(event models.TrackerEvent) error
}
