package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crypto-tracker/internal/interfaces"
	"crypto-tracker/internal/models"
	"crypto-tracker/internal/store"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler pushes a periodic price digest to every user with a
// non-empty subscription set. A token whose price cannot be resolved is
// silently omitted from that cycle's digest; it is not retried within
// the cycle and not counted as an error toward the user.
type Scheduler struct {
	store     *store.UserStore
	price     interfaces.PriceOracle
	messenger interfaces.Messenger
	emitter   interfaces.EventEmitter
	logger    *zerolog.Logger
	schedule  string
	cron      *cron.Cron
}

func New(
	userStore *store.UserStore,
	price interfaces.PriceOracle,
	messenger interfaces.Messenger,
	emitter interfaces.EventEmitter,
	schedule string,
	logger *zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		store:     userStore,
		price:     price,
		messenger: messenger,
		emitter:   emitter,
		logger:    logger,
		schedule:  schedule,
	}
}

// Start registers the periodic trigger and begins firing it.
func (s *Scheduler) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid alert schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", s.schedule).
		Msg("Alert scheduler started")
	return nil
}

// Stop halts the trigger and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RunOnce executes a single alert cycle.
func (s *Scheduler) RunOnce(ctx context.Context) {
	for userID, tokens := range s.store.Subscribers() {
		digest := s.buildDigest(ctx, tokens)
		if digest == "" {
			continue
		}

		if err := s.messenger.Send(ctx, userID, digest); err != nil {
			s.logger.Error().
				Err(err).
				Int64("user", userID).
				Msg("Failed to deliver price digest")
			continue
		}

		if err := s.emitter.EmitEvent(models.TrackerEvent{
			Type:      models.EventDigestSent,
			UserID:    userID,
			Timestamp: time.Now(),
		}); err != nil {
			s.logger.Error().
				Err(err).
				Int64("user", userID).
				Msg("Failed to emit digest event")
		}
	}
}

// buildDigest resolves each subscribed token and formats the digest.
// Returns "" when no token resolved this cycle.
func (s *Scheduler) buildDigest(ctx context.Context, tokens []string) string {
	var b strings.Builder
	b.WriteString("📈 Price Alerts:\n")

	resolved := 0
	for _, token := range tokens {
		price, err := s.price.Resolve(ctx, token)
		if err != nil {
			s.logger.Debug().
				Str("token", token).
				Msg("Token omitted from digest")
			continue
		}
		fmt.Fprintf(&b, "%s: $%s\n", strings.ToUpper(token), price.String())
		resolved++
	}

	if resolved == 0 {
		return ""
	}
	return b.String()
}
