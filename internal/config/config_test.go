package config

import (
	"errors"
	"testing"

	"crypto-tracker/internal/models"
)

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	if _, err := Load(); !errors.Is(err, ErrMissingToken) {
		t.Errorf("Load() error = %v, want ErrMissingToken", err)
	}
}

func TestLoad_ChainTable(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Chains) != 4 {
		t.Fatalf("chains = %d, want 4", len(cfg.Chains))
	}

	eth := cfg.Chains[models.Ethereum]
	if eth.Kind != models.KindAccount || eth.Decimals != 18 {
		t.Errorf("ethereum chain = %+v", eth)
	}

	btc := cfg.Chains[models.Bitcoin]
	if btc.Kind != models.KindNativeCoin || btc.Decimals != 8 {
		t.Errorf("bitcoin chain = %+v", btc)
	}
}

func TestResolveChain_CaseInsensitive(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		input string
		want  models.ChainKey
		ok    bool
	}{
		{"ethereum", models.Ethereum, true},
		{"Ethereum", models.Ethereum, true},
		{"  BSC  ", models.BSC, true},
		{"BITCOIN", models.Bitcoin, true},
		{"dogecoin", "", false},
	}

	for _, tt := range tests {
		chain, ok := cfg.ResolveChain(tt.input)
		if ok != tt.ok {
			t.Errorf("ResolveChain(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && chain.Key != tt.want {
			t.Errorf("ResolveChain(%q) = %v, want %v", tt.input, chain.Key, tt.want)
		}
	}
}

func TestChainList_FollowsOrder(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.ChainList(); got != "ethereum, bsc, polygon, bitcoin" {
		t.Errorf("ChainList() = %q", got)
	}
}

func TestIsChainToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.IsChainToken("binancecoin") {
		t.Error("IsChainToken(binancecoin) = false, want true")
	}
	if cfg.IsChainToken("notacoin") {
		t.Error("IsChainToken(notacoin) = true, want false")
	}
}
