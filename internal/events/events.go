package events

import (
	"crypto-tracker/internal/interfaces"
	"crypto-tracker/internal/logger"
	"crypto-tracker/internal/models"
)

// LogEmitter logs every tracker event and forwards to a wrapped emitter
// when one is configured. It is the default emitter when no Kafka broker
// is set.
type LogEmitter struct {
	WrappedEmitter interfaces.EventEmitter
}

// EmitEvent logs the event and forwards it to the wrapped emitter
func (l *LogEmitter) EmitEvent(event models.TrackerEvent) error {
	logger.GetLogger().Info().
		Str("type", string(event.Type)).
		Int64("user", event.UserID).
		Str("chain", event.Chain.String()).
		Str("wallet", event.Wallet).
		Str("token", event.Token).
		Time("timestamp", event.Timestamp).
		Msg("Tracker event")

	if l.WrappedEmitter != nil {
		return l.WrappedEmitter.EmitEvent(event)
	}
	return nil
}
