package bitcoin

import (
	"context"
	"fmt"

	"crypto-tracker/internal/config"
	"crypto-tracker/internal/interfaces"
	"crypto-tracker/internal/models"
	"crypto-tracker/internal/oracles"

	"github.com/shopspring/decimal"
)

// Oracle queries a blockchair-style native-coin explorer. The balance
// comes back as a nested minor-unit integer (satoshis) inside a
// per-address envelope.
type Oracle struct {
	*oracles.Client
	cfg config.ChainConfig
}

var _ interfaces.BalanceOracle = (*Oracle)(nil)

type dashboardResponse struct {
	Data map[string]addressEntry `json:"data"`
}

type addressEntry struct {
	Address addressInfo `json:"address"`
}

type addressInfo struct {
	Balance int64 `json:"balance"`
}

func New(cfg config.ChainConfig, client *oracles.Client) *Oracle {
	return &Oracle{
		Client: client,
		cfg:    cfg,
	}
}

func (o *Oracle) Chain() models.ChainKey {
	return o.cfg.Key
}

func (o *Oracle) Resolve(ctx context.Context, wallet string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/dashboards/address/%s", o.cfg.APIURL, wallet)

	var envelope dashboardResponse
	if err := o.GetJSON(ctx, url, &envelope); err != nil {
		o.Logger.Error().
			Err(err).
			Str("chain", o.cfg.Key.String()).
			Str("wallet", wallet).
			Msg("Balance query failed")
		return decimal.Zero, err
	}

	entry, ok := envelope.Data[wallet]
	if !ok {
		err := fmt.Errorf("address %s missing from explorer response", wallet)
		o.Logger.Error().
			Err(err).
			Str("chain", o.cfg.Key.String()).
			Msg("Malformed balance response")
		return decimal.Zero, err
	}

	minor := decimal.NewFromInt(entry.Address.Balance)
	return minor.Shift(-o.cfg.Decimals), nil
}
