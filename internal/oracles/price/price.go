package price

import (
	"context"
	"fmt"
	"net/url"

	"crypto-tracker/internal/interfaces"
	"crypto-tracker/internal/oracles"

	"github.com/shopspring/decimal"
)

// Oracle resolves token identifiers to USD prices through the price
// service's simple/price endpoint. Every call is a live fetch; call
// volume is bounded by active users and chains, not wallets.
type Oracle struct {
	*oracles.Client
	apiURL string
}

var _ interfaces.PriceOracle = (*Oracle)(nil)

type quote struct {
	USD decimal.Decimal `json:"usd"`
}

func New(apiURL string, client *oracles.Client) *Oracle {
	return &Oracle{
		Client: client,
		apiURL: apiURL,
	}
}

func (o *Oracle) Resolve(ctx context.Context, tokenID string) (decimal.Decimal, error) {
	query := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		o.apiURL, url.QueryEscape(tokenID))

	var prices map[string]quote
	if err := o.GetJSON(ctx, query, &prices); err != nil {
		o.Logger.Error().
			Err(err).
			Str("token", tokenID).
			Msg("Price query failed")
		return decimal.Zero, err
	}

	q, ok := prices[tokenID]
	if !ok {
		err := fmt.Errorf("token %q not recognized by price service", tokenID)
		o.Logger.Warn().
			Str("token", tokenID).
			Msg("Token not recognized by price service")
		return decimal.Zero, err
	}

	return q.USD, nil
}
