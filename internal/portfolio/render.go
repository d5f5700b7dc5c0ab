package portfolio

import (
	"fmt"
	"strings"
)

// RenderBalances formats a report as the /checkwallets reply.
func RenderBalances(r Report) string {
	var b strings.Builder
	b.WriteString("📊 Wallet Balances:\n")

	for _, item := range r.Items {
		balance := "N/A"
		if item.BalanceAvailable {
			balance = item.Balance.StringFixed(item.DisplayDecimals)
		}
		fmt.Fprintf(&b, "Chain: %s\nWallet: %s\nBalance: %s\nValue: $%s\n\n",
			item.ChainName, item.Wallet, balance, item.Value.StringFixed(2))
	}

	return b.String()
}

// RenderPortfolio formats a report as the /portfolio reply, one line per
// wallet plus the running total to two decimal places.
func RenderPortfolio(r Report) string {
	var b strings.Builder
	b.WriteString("💼 Your Portfolio Value:\n")

	for _, item := range r.Items {
		fmt.Fprintf(&b, "Chain: %s Wallet: %s Value: $%s\n",
			item.ChainName, item.Wallet, item.Value.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTotal Portfolio Value: $%s", r.Total.StringFixed(2))
	return b.String()
}
