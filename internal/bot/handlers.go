package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"crypto-tracker/internal/config"
	"crypto-tracker/internal/interfaces"
	"crypto-tracker/internal/models"
	"crypto-tracker/internal/portfolio"
	"crypto-tracker/internal/store"

	"github.com/rs/zerolog"
)

const noWalletsMessage = "❌ No wallets found. Use /addwallet to track wallets."

// Handler dispatches inbound text for one chat transport. Commands are
// recognized case-sensitively on their leading token; while a multi-step
// session is pending, the next inbound message feeds the session
// regardless of its shape, except that a fresh /addwallet or
// /removewallet supersedes the pending flow.
type Handler struct {
	cfg        *config.Config
	store      *store.UserStore
	sessions   *SessionManager
	aggregator *portfolio.Aggregator
	price      interfaces.PriceOracle
	messenger  interfaces.Messenger
	emitter    interfaces.EventEmitter
	logger     *zerolog.Logger
}

func NewHandler(
	cfg *config.Config,
	userStore *store.UserStore,
	aggregator *portfolio.Aggregator,
	price interfaces.PriceOracle,
	messenger interfaces.Messenger,
	emitter interfaces.EventEmitter,
	logger *zerolog.Logger,
) *Handler {
	return &Handler{
		cfg:        cfg,
		store:      userStore,
		sessions:   NewSessionManager(),
		aggregator: aggregator,
		price:      price,
		messenger:  messenger,
		emitter:    emitter,
		logger:     logger,
	}
}

// HandleText processes one inbound message from a user.
func (h *Handler) HandleText(ctx context.Context, userID int64, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	command := leadingToken(text)

	if session, ok := h.sessions.Active(userID); ok {
		if command == "/addwallet" || command == "/removewallet" {
			// Superseding multi-step command: the prior session is
			// reset, never left dangling.
			h.sessions.End(userID)
		} else {
			h.advance(ctx, userID, session, text)
			return
		}
	}

	switch command {
	case "/start":
		h.send(ctx, userID, welcomeMessage)
	case "/help":
		h.send(ctx, userID, helpMessage)
	case "/addwallet":
		h.startAddWallet(ctx, userID)
	case "/removewallet":
		h.startRemoveWallet(ctx, userID)
	case "/listwallets":
		h.listWallets(ctx, userID)
	case "/checkwallets":
		h.checkWallets(ctx, userID)
	case "/gettokenprice":
		h.getTokenPrice(ctx, userID, argument(text))
	case "/subscribeprice":
		h.subscribePrice(ctx, userID, argument(text))
	case "/unsubscribeprice":
		h.unsubscribePrice(ctx, userID, argument(text))
	case "/portfolio":
		h.showPortfolio(ctx, userID)
	case "/clearwallets":
		h.clearWallets(ctx, userID)
	}
}

// advance feeds the next raw inbound message into the pending session.
func (h *Handler) advance(ctx context.Context, userID int64, session Session, text string) {
	switch session.State {
	case StateAwaitingChain:
		chain, ok := h.cfg.ResolveChain(text)
		if !ok {
			h.sessions.End(userID)
			h.send(ctx, userID, "❌ Unsupported chain. Please try again.")
			return
		}
		session.State = StateAwaitingWalletAddress
		session.PendingChain = chain.Key
		h.sessions.Put(userID, session)
		h.send(ctx, userID, "Enter your wallet address:")

	case StateAwaitingWalletAddress:
		h.sessions.End(userID)
		wallet := text

		if err := h.store.AddWallet(userID, session.PendingChain, wallet); err != nil {
			if errors.Is(err, store.ErrDuplicateWallet) {
				h.send(ctx, userID, "❌ Wallet already added.")
			}
			return
		}

		chain := h.cfg.Chains[session.PendingChain]
		h.send(ctx, userID, fmt.Sprintf("✅ Wallet added successfully to %s!", chain.Name))
		h.emit(models.TrackerEvent{
			Type:   models.EventWalletAdded,
			UserID: userID,
			Chain:  session.PendingChain,
			Wallet: wallet,
		})

	case StateAwaitingRemoveChain:
		chain, ok := h.cfg.ResolveChain(text)
		if !ok {
			h.sessions.End(userID)
			h.send(ctx, userID, "❌ Unsupported chain. Please try again.")
			return
		}

		candidates := h.store.ChainWallets(userID, chain.Key)
		if len(candidates) == 0 {
			h.sessions.End(userID)
			h.send(ctx, userID, fmt.Sprintf("❌ No wallets tracked on %s.", chain.Name))
			return
		}

		session.State = StateAwaitingRemoveIndex
		session.PendingChain = chain.Key
		session.Candidates = candidates
		h.sessions.Put(userID, session)

		var b strings.Builder
		fmt.Fprintf(&b, "Your %s wallets:\n", chain.Name)
		for i, wallet := range candidates {
			fmt.Fprintf(&b, "%d. %s\n", i+1, wallet)
		}
		b.WriteString("Reply with the number of the wallet to remove:")
		h.send(ctx, userID, b.String())

	case StateAwaitingRemoveIndex:
		h.sessions.End(userID)

		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || n < 1 || n > len(session.Candidates) {
			h.send(ctx, userID, "❌ Invalid selection.")
			return
		}

		removed, err := h.store.RemoveWallet(userID, session.PendingChain, n-1)
		if err != nil {
			h.send(ctx, userID, "❌ Invalid selection.")
			return
		}

		chain := h.cfg.Chains[session.PendingChain]
		h.send(ctx, userID, fmt.Sprintf("✅ Removed %s from %s.", removed, chain.Name))
		h.emit(models.TrackerEvent{
			Type:   models.EventWalletRemoved,
			UserID: userID,
			Chain:  session.PendingChain,
			Wallet: removed,
		})
	}
}

func (h *Handler) startAddWallet(ctx context.Context, userID int64) {
	h.sessions.Put(userID, Session{State: StateAwaitingChain})
	h.send(ctx, userID, fmt.Sprintf("Which chain? (%s)", h.cfg.ChainList()))
}

func (h *Handler) startRemoveWallet(ctx context.Context, userID int64) {
	if !h.store.HasWallets(userID) {
		h.send(ctx, userID, noWalletsMessage)
		return
	}
	h.sessions.Put(userID, Session{State: StateAwaitingRemoveChain})
	h.send(ctx, userID, fmt.Sprintf("Which chain? (%s)", h.cfg.ChainList()))
}

func (h *Handler) listWallets(ctx context.Context, userID int64) {
	wallets := h.store.Wallets(userID)
	if len(wallets) == 0 {
		h.send(ctx, userID, noWalletsMessage)
		return
	}

	var b strings.Builder
	b.WriteString("📜 Your tracked wallets:\n")
	for _, cw := range wallets {
		chain := h.cfg.Chains[cw.Chain]
		fmt.Fprintf(&b, "\nChain: %s\n", chain.Name)
		for i, wallet := range cw.Addresses {
			fmt.Fprintf(&b, "%d. %s\n", i+1, wallet)
		}
	}
	h.send(ctx, userID, b.String())
}

func (h *Handler) checkWallets(ctx context.Context, userID int64) {
	wallets := h.store.Wallets(userID)
	if len(wallets) == 0 {
		h.send(ctx, userID, noWalletsMessage)
		return
	}

	report := h.aggregator.Report(ctx, wallets)
	h.send(ctx, userID, portfolio.RenderBalances(report))
}

func (h *Handler) showPortfolio(ctx context.Context, userID int64) {
	wallets := h.store.Wallets(userID)
	if len(wallets) == 0 {
		h.send(ctx, userID, noWalletsMessage)
		return
	}

	report := h.aggregator.Report(ctx, wallets)
	h.send(ctx, userID, portfolio.RenderPortfolio(report))
}

func (h *Handler) getTokenPrice(ctx context.Context, userID int64, tokenID string) {
	if tokenID == "" {
		h.send(ctx, userID, "Usage: /gettokenprice <token_id>")
		return
	}
	tokenID = strings.ToLower(tokenID)

	price, err := h.price.Resolve(ctx, tokenID)
	if err != nil {
		h.send(ctx, userID, fmt.Sprintf("❌ Could not fetch the price of %s.", tokenID))
		return
	}

	h.send(ctx, userID, fmt.Sprintf("💰 %s: $%s", strings.ToUpper(tokenID), price.String()))
}

func (h *Handler) subscribePrice(ctx context.Context, userID int64, tokenID string) {
	if tokenID == "" {
		h.send(ctx, userID, "Usage: /subscribeprice <token_id>")
		return
	}
	tokenID = strings.ToLower(tokenID)

	// Chain-table token ids are accepted without probing; anything else
	// must be resolvable by the price service.
	if !h.cfg.IsChainToken(tokenID) {
		if _, err := h.price.Resolve(ctx, tokenID); err != nil {
			h.send(ctx, userID, "❌ Invalid token. Make sure the token exists on CoinGecko.")
			return
		}
	}

	if err := h.store.Subscribe(userID, tokenID); err != nil {
		if errors.Is(err, store.ErrAlreadySubscribed) {
			h.send(ctx, userID, fmt.Sprintf("❌ You are already subscribed to %s price alerts.", tokenID))
		}
		return
	}

	h.send(ctx, userID, fmt.Sprintf("✅ Subscribed to %s price alerts!", strings.ToUpper(tokenID)))
	h.emit(models.TrackerEvent{
		Type:   models.EventSubscribed,
		UserID: userID,
		Token:  tokenID,
	})
}

func (h *Handler) unsubscribePrice(ctx context.Context, userID int64, tokenID string) {
	if tokenID == "" {
		h.send(ctx, userID, "Usage: /unsubscribeprice <token_id>")
		return
	}
	tokenID = strings.ToLower(tokenID)

	if err := h.store.Unsubscribe(userID, tokenID); err != nil {
		if errors.Is(err, store.ErrNotSubscribed) {
			h.send(ctx, userID, "❌ You are not subscribed to this token's price alerts.")
		}
		return
	}

	h.send(ctx, userID, fmt.Sprintf("✅ Unsubscribed from %s price alerts.", strings.ToUpper(tokenID)))
	h.emit(models.TrackerEvent{
		Type:   models.EventUnsubscribed,
		UserID: userID,
		Token:  tokenID,
	})
}

func (h *Handler) clearWallets(ctx context.Context, userID int64) {
	if !h.store.ClearWallets(userID) {
		h.send(ctx, userID, "❌ No wallets to clear.")
		return
	}

	h.send(ctx, userID, "✅ All tracked wallets cleared.")
	h.emit(models.TrackerEvent{
		Type:   models.EventWalletsCleared,
		UserID: userID,
	})
}

func (h *Handler) send(ctx context.Context, userID int64, text string) {
	if err := h.messenger.Send(ctx, userID, text); err != nil {
		h.logger.Error().
			Err(err).
			Int64("user", userID).
			Msg("Failed to send message")
	}
}

func (h *Handler) emit(event models.TrackerEvent) {
	event.Timestamp = time.Now()
	if err := h.emitter.EmitEvent(event); err != nil {
		h.logger.Error().
			Err(err).
			Str("type", string(event.Type)).
			Int64("user", event.UserID).
			Msg("Failed to emit event")
	}
}

func leadingToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func argument(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
