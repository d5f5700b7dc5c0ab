package evm

import (
	"context"
	"fmt"
	"net/url"

	"crypto-tracker/internal/config"
	"crypto-tracker/internal/interfaces"
	"crypto-tracker/internal/models"
	"crypto-tracker/internal/oracles"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Oracle queries an etherscan-style account-model explorer. The balance
// comes back as a flat minor-unit integer string (wei).
type Oracle struct {
	*oracles.Client
	cfg config.ChainConfig
}

var _ interfaces.BalanceOracle = (*Oracle)(nil)

type balanceResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
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
	addr := wallet
	if common.IsHexAddress(wallet) {
		addr = common.HexToAddress(wallet).Hex()
	}

	query := fmt.Sprintf("%s?module=account&action=balance&address=%s&tag=latest&apikey=%s",
		o.cfg.APIURL, url.QueryEscape(addr), url.QueryEscape(o.cfg.ApiKey))

	var resp balanceResponse
	if err := o.GetJSON(ctx, query, &resp); err != nil {
		o.Logger.Error().
			Err(err).
			Str("chain", o.cfg.Key.String()).
			Str("wallet", wallet).
			Msg("Balance query failed")
		return decimal.Zero, err
	}

	if resp.Status != "1" {
		err := fmt.Errorf("explorer error: %s", resp.Message)
		o.Logger.Error().
			Err(err).
			Str("chain", o.cfg.Key.String()).
			Str("wallet", wallet).
			Msg("Explorer rejected balance query")
		return decimal.Zero, err
	}

	minor, err := decimal.NewFromString(resp.Result)
	if err != nil {
		o.Logger.Error().
			Err(err).
			Str("chain", o.cfg.Key.String()).
			Str("result", resp.Result).
			Msg("Failed to parse balance")
		return decimal.Zero, fmt.Errorf("failed to parse balance %q: %w", resp.Result, err)
	}

	return minor.Shift(-o.cfg.Decimals), nil
}
