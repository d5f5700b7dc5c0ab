package alerts

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"crypto-tracker/internal/models"
	"crypto-tracker/internal/store"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type MockPriceOracle struct {
	prices map[string]decimal.Decimal
}

func (m *MockPriceOracle) Resolve(_ context.Context, tokenID string) (decimal.Decimal, error) {
	price, ok := m.prices[tokenID]
	if !ok {
		return decimal.Zero, fmt.Errorf("token %q not recognized", tokenID)
	}
	return price, nil
}

type MockMessenger struct {
	mu   sync.Mutex
	sent map[int64][]string
}

func (m *MockMessenger) Send(_ context.Context, userID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sent == nil {
		m.sent = make(map[int64][]string)
	}
	m.sent[userID] = append(m.sent[userID], text)
	return nil
}

type MockEmitter struct {
	mu     sync.Mutex
	events []models.TrackerEvent
}

func (m *MockEmitter) EmitEvent(event models.TrackerEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func setupTestScheduler(prices map[string]decimal.Decimal) (*Scheduler, *store.UserStore, *MockMessenger, *MockEmitter) {
	logger := zerolog.New(nil)
	userStore := store.New()
	messenger := &MockMessenger{}
	emitter := &MockEmitter{}
	scheduler := New(userStore, &MockPriceOracle{prices: prices}, messenger, emitter, "@every 1h", &logger)
	return scheduler, userStore, messenger, emitter
}

func TestRunOnce_DigestFormat(t *testing.T) {
	scheduler, userStore, messenger, emitter := setupTestScheduler(map[string]decimal.Decimal{
		"bitcoin":  decimal.NewFromInt(50000),
		"ethereum": decimal.NewFromInt(2000),
	})

	userStore.Subscribe(1, "bitcoin")
	userStore.Subscribe(1, "ethereum")

	scheduler.RunOnce(context.Background())

	digests := messenger.sent[1]
	if len(digests) != 1 {
		t.Fatalf("digests sent = %d, want 1", len(digests))
	}

	want := "📈 Price Alerts:\nBITCOIN: $50000\nETHEREUM: $2000\n"
	if digests[0] != want {
		t.Errorf("digest = %q, want %q", digests[0], want)
	}

	if len(emitter.events) != 1 || emitter.events[0].Type != models.EventDigestSent {
		t.Errorf("events = %v, want one digest_sent", emitter.events)
	}
}

func TestRunOnce_UnresolvableTokenOmitted(t *testing.T) {
	scheduler, userStore, messenger, _ := setupTestScheduler(map[string]decimal.Decimal{
		"bitcoin": decimal.NewFromInt(50000),
	})

	userStore.Subscribe(1, "bitcoin")
	userStore.Subscribe(1, "notacoin")

	scheduler.RunOnce(context.Background())

	digests := messenger.sent[1]
	if len(digests) != 1 {
		t.Fatalf("digests sent = %d, want 1", len(digests))
	}

	want := "📈 Price Alerts:\nBITCOIN: $50000\n"
	if digests[0] != want {
		t.Errorf("digest = %q, want %q", digests[0], want)
	}
}

func TestRunOnce_EmptyDigestSkipped(t *testing.T) {
	scheduler, userStore, messenger, emitter := setupTestScheduler(nil)

	userStore.Subscribe(1, "notacoin")

	scheduler.RunOnce(context.Background())

	if len(messenger.sent) != 0 {
		t.Errorf("messages sent = %v, want none", messenger.sent)
	}
	if len(emitter.events) != 0 {
		t.Errorf("events = %v, want none", emitter.events)
	}
}

func TestRunOnce_OnlySubscribersGetDigests(t *testing.T) {
	scheduler, userStore, messenger, _ := setupTestScheduler(map[string]decimal.Decimal{
		"bitcoin": decimal.NewFromInt(50000),
	})

	userStore.Subscribe(1, "bitcoin")
	// User 2 tracks a wallet but has no subscriptions.
	userStore.AddWallet(2, models.Ethereum, "0xabc")

	scheduler.RunOnce(context.Background())

	if _, ok := messenger.sent[2]; ok {
		t.Error("non-subscriber received a digest")
	}
	if len(messenger.sent[1]) != 1 {
		t.Errorf("subscriber digests = %d, want 1", len(messenger.sent[1]))
	}
}

func TestStart_InvalidSchedule(t *testing.T) {
	logger := zerolog.New(nil)
	scheduler := New(store.New(), &MockPriceOracle{}, &MockMessenger{}, &MockEmitter{}, "not a schedule", &logger)

	if err := scheduler.Start(); err == nil {
		t.Error("Start() error = nil, want error for invalid schedule")
	}
}
