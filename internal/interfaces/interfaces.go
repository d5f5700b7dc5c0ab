package interfaces

import (
	"context"

	"crypto-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// BalanceOracle resolves a wallet address to its native-unit balance on
// one chain. Any transport or parse failure is returned as an error and
// must be treated by callers as "balance unknown", never as zero.
type BalanceOracle interface {
	// Chain returns the chain this oracle serves.
	Chain() models.ChainKey

	// Resolve fetches the current balance for the wallet in native units
	// (minor units already divided out).
	Resolve(ctx context.Context, wallet string) (decimal.Decimal, error)
}

// PriceOracle resolves a token identifier to its current USD price.
type PriceOracle interface {
	Resolve(ctx context.Context, tokenID string) (decimal.Decimal, error)
}

// Messenger delivers outbound text to a user through the chat transport.
type Messenger interface {
	Send(ctx context.Context, userID int64, text string) error
}
