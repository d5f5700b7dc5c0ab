package store

import (
	"errors"
	"sync"

	"crypto-tracker/internal/models"
)

var (
	ErrDuplicateWallet   = errors.New("wallet already tracked")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrNotSubscribed     = errors.New("not subscribed")
)

// account is the per-user record. Wallets keep insertion order per chain
// (display indices depend on it) and chains keep their own insertion
// order so reports are deterministic.
type account struct {
	wallets       map[models.ChainKey][]string
	chainOrder    []models.ChainKey
	notifications []string
}

// ChainWallets is an ordered snapshot of one chain's tracked wallets.
type ChainWallets struct {
	Chain     models.ChainKey
	Addresses []string
}

// UserStore is the process-lifetime registry mapping a user identity to
// tracked wallets and price-alert subscriptions. Purely in-memory; no
// persistence.
type UserStore struct {
	mu       sync.RWMutex
	accounts map[int64]*account
}

func New() *UserStore {
	return &UserStore{
		accounts: make(map[int64]*account),
	}
}

// getOrCreate must be called with the write lock held.
func (s *UserStore) getOrCreate(userID int64) *account {
	acc, ok := s.accounts[userID]
	if !ok {
		acc = &account{
			wallets: make(map[models.ChainKey][]string),
		}
		s.accounts[userID] = acc
	}
	return acc
}

// AddWallet appends a wallet to the chain's list, preserving insertion
// order. Returns ErrDuplicateWallet if the address is already tracked
// under that chain; the list is left unchanged in that case.
func (s *UserStore) AddWallet(userID int64, chain models.ChainKey, wallet string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.getOrCreate(userID)

	for _, existing := range acc.wallets[chain] {
		if existing == wallet {
			return ErrDuplicateWallet
		}
	}

	if _, ok := acc.wallets[chain]; !ok {
		acc.chainOrder = append(acc.chainOrder, chain)
	}
	acc.wallets[chain] = append(acc.wallets[chain], wallet)

	return nil
}

// RemoveWallet removes the wallet at the given zero-based position from
// the chain's live list, preserving the relative order of the rest.
// Returns the removed address.
func (s *UserStore) RemoveWallet(userID int64, chain models.ChainKey, index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return "", ErrWalletNotFound
	}

	list := acc.wallets[chain]
	if index < 0 || index >= len(list) {
		return "", ErrWalletNotFound
	}

	removed := list[index]
	acc.wallets[chain] = append(list[:index], list[index+1:]...)

	if len(acc.wallets[chain]) == 0 {
		delete(acc.wallets, chain)
		for i, key := range acc.chainOrder {
			if key == chain {
				acc.chainOrder = append(acc.chainOrder[:i], acc.chainOrder[i+1:]...)
				break
			}
		}
	}

	return removed, nil
}

// Wallets returns a deep-copied, ordered snapshot of the user's tracked
// wallets: chains in insertion order, addresses in insertion order.
func (s *UserStore) Wallets(userID int64) []ChainWallets {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return nil
	}

	snapshot := make([]ChainWallets, 0, len(acc.chainOrder))
	for _, chain := range acc.chainOrder {
		addresses := make([]string, len(acc.wallets[chain]))
		copy(addresses, acc.wallets[chain])
		snapshot = append(snapshot, ChainWallets{Chain: chain, Addresses: addresses})
	}

	return snapshot
}

// ChainWallets returns a copy of one chain's wallet list.
func (s *UserStore) ChainWallets(userID int64, chain models.ChainKey) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return nil
	}

	addresses := make([]string, len(acc.wallets[chain]))
	copy(addresses, acc.wallets[chain])
	return addresses
}

// HasWallets reports whether the user tracks at least one wallet.
func (s *UserStore) HasWallets(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[userID]
	return ok && len(acc.wallets) > 0
}

// ClearWallets empties the user's wallet map. Subscriptions are kept and
// the account survives. Returns false when the user has no account.
func (s *UserStore) ClearWallets(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return false
	}

	acc.wallets = make(map[models.ChainKey][]string)
	acc.chainOrder = nil
	return true
}

// Subscribe adds a token identifier to the user's alert subscriptions.
// Returns ErrAlreadySubscribed on a duplicate; the set is unchanged.
func (s *UserStore) Subscribe(userID int64, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.getOrCreate(userID)

	for _, existing := range acc.notifications {
		if existing == tokenID {
			return ErrAlreadySubscribed
		}
	}

	acc.notifications = append(acc.notifications, tokenID)
	return nil
}

// Unsubscribe removes a token identifier from the user's subscriptions.
// Returns ErrNotSubscribed when it was never subscribed.
func (s *UserStore) Unsubscribe(userID int64, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return ErrNotSubscribed
	}

	for i, existing := range acc.notifications {
		if existing == tokenID {
			acc.notifications = append(acc.notifications[:i], acc.notifications[i+1:]...)
			return nil
		}
	}

	return ErrNotSubscribed
}

// Subscriptions returns a copy of the user's subscribed token identifiers.
func (s *UserStore) Subscriptions(userID int64) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return nil
	}

	tokens := make([]string, len(acc.notifications))
	copy(tokens, acc.notifications)
	return tokens
}

// Subscribers returns a snapshot of every user with a non-empty
// subscription set, for the alert scheduler.
func (s *UserStore) Subscribers() map[int64][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subscribers := make(map[int64][]string)
	for userID, acc := range s.accounts {
		if len(acc.notifications) == 0 {
			continue
		}
		tokens := make([]string, len(acc.notifications))
		copy(tokens, acc.notifications)
		subscribers[userID] = tokens
	}

	return subscribers
}
