package portfolio

import (
	"context"

	"crypto-tracker/internal/config"
	"crypto-tracker/internal/interfaces"
	"crypto-tracker/internal/models"
	"crypto-tracker/internal/store"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Aggregator turns a user's tracked wallet set into per-wallet and total
// valuations. The token price is resolved once per chain, never per
// wallet; a failed balance lookup degrades into a zero-valued line item
// and never aborts the report.
type Aggregator struct {
	price    interfaces.PriceOracle
	balances map[models.ChainKey]interfaces.BalanceOracle
	chains   map[models.ChainKey]config.ChainConfig
	logger   *zerolog.Logger
}

// LineItem is one wallet's row in a report, in stored order.
type LineItem struct {
	Chain            models.ChainKey
	ChainName        string
	Wallet           string
	Balance          decimal.Decimal
	BalanceAvailable bool
	Value            decimal.Decimal
	DisplayDecimals  int32
}

// Report is an ordered valuation of a wallet set: chains in account
// order, wallets in stored order within each chain.
type Report struct {
	Items []LineItem
	Total decimal.Decimal
}

func NewAggregator(
	price interfaces.PriceOracle,
	balances map[models.ChainKey]interfaces.BalanceOracle,
	chains map[models.ChainKey]config.ChainConfig,
	logger *zerolog.Logger,
) *Aggregator {
	return &Aggregator{
		price:    price,
		balances: balances,
		chains:   chains,
		logger:   logger,
	}
}

// Report values every wallet in the snapshot sequentially. Oracle
// failures are logged and contribute zero to the total; the wallet is
// still listed.
func (a *Aggregator) Report(ctx context.Context, wallets []store.ChainWallets) Report {
	report := Report{Total: decimal.Zero}

	for _, cw := range wallets {
		chain := a.chains[cw.Chain]

		// One price resolution per chain, regardless of wallet count.
		price, priceErr := a.price.Resolve(ctx, chain.TokenID)
		if priceErr != nil {
			a.logger.Error().
				Err(priceErr).
				Str("chain", cw.Chain.String()).
				Str("token", chain.TokenID).
				Msg("Price unavailable; chain valued at zero")
		}

		oracle := a.balances[cw.Chain]

		for _, wallet := range cw.Addresses {
			item := LineItem{
				Chain:           cw.Chain,
				ChainName:       chain.Name,
				Wallet:          wallet,
				Value:           decimal.Zero,
				DisplayDecimals: chain.DisplayDecimals,
			}

			if oracle != nil {
				balance, err := oracle.Resolve(ctx, wallet)
				if err != nil {
					a.logger.Error().
						Err(err).
						Str("chain", cw.Chain.String()).
						Str("wallet", wallet).
						Msg("Balance unavailable; wallet valued at zero")
				} else {
					item.Balance = balance
					item.BalanceAvailable = true
				}
			}

			if item.BalanceAvailable && priceErr == nil {
				item.Value = item.Balance.Mul(price)
				report.Total = report.Total.Add(item.Value)
			}

			report.Items = append(report.Items, item)
		}
	}

	return report
}
