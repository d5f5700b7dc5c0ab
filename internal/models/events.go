package models

import "time"

// EventType enumerates tracker events emitted for operator visibility.
type EventType string

const (
	EventWalletAdded    EventType = "wallet_added"
	EventWalletRemoved  EventType = "wallet_removed"
	EventWalletsCleared EventType = "wallets_cleared"
	EventSubscribed     EventType = "price_subscribed"
	EventUnsubscribed   EventType = "price_unsubscribed"
	EventDigestSent     EventType = "digest_sent"
)

// TrackerEvent represents a user-visible state change or alert delivery.
type TrackerEvent struct {
	Type      EventType `json:"type"`
	UserID    int64     `json:"user_id"`
	Chain     ChainKey  `json:"chain,omitempty"`
	Wallet    string    `json:"wallet,omitempty"`
	Token     string    `json:"token,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
