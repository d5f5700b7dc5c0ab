package bitcoin

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crypto-tracker/internal/config"
	"crypto-tracker/internal/models"
	"crypto-tracker/internal/oracles"

	"github.com/rs/zerolog"
)

func setupTestOracle(handler http.HandlerFunc) (*Oracle, *httptest.Server) {
	logger := zerolog.New(nil)
	server := httptest.NewServer(handler)

	cfg := config.ChainConfig{
		Key:             models.Bitcoin,
		Name:            "Bitcoin",
		Kind:            models.KindNativeCoin,
		APIURL:          server.URL,
		TokenID:         "bitcoin",
		Decimals:        8,
		DisplayDecimals: 8,
	}

	client := oracles.NewClient(5*time.Second, 100, &logger)
	return New(cfg, client), server
}

func TestResolve_SatoshiConversion(t *testing.T) {
	wallet := "bc1qxyz"
	oracle, server := setupTestOracle(func(w http.ResponseWriter, r *http.Request) {
		want := "/dashboards/address/" + wallet
		if r.URL.Path != want {
			t.Errorf("Request path = %v, want %v", r.URL.Path, want)
		}
		fmt.Fprintf(w, `{"data":{"%s":{"address":{"balance":150000000}}}}`, wallet)
	})
	defer server.Close()

	balance, err := oracle.Resolve(context.Background(), wallet)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := balance.String(); got != "1.5" {
		t.Errorf("Resolve() = %v, want 1.5", got)
	}
}

func TestResolve_MissingAddressEntry(t *testing.T) {
	oracle, server := setupTestOracle(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":{}}`)
	})
	defer server.Close()

	if _, err := oracle.Resolve(context.Background(), "bc1qxyz"); err == nil {
		t.Error("Resolve() error = nil, want error for missing address entry")
	}
}

func TestResolve_HTTPError(t *testing.T) {
	oracle, server := setupTestOracle(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	defer server.Close()

	if _, err := oracle.Resolve(context.Background(), "bc1qxyz"); err == nil {
		t.Error("Resolve() error = nil, want error for HTTP failure")
	}
}

func TestResolve_MalformedBody(t *testing.T) {
	oracle, server := setupTestOracle(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `not json`)
	})
	defer server.Close()

	if _, err := oracle.Resolve(context.Background(), "bc1qxyz"); err == nil {
		t.Error("Resolve() error = nil, want error for malformed body")
	}
}

func TestChain(t *testing.T) {
	oracle, server := setupTestOracle(func(http.ResponseWriter, *http.Request) {})
	defer server.Close()

	if oracle.Chain() != models.Bitcoin {
		t.Errorf("Chain() = %v, want bitcoin", oracle.Chain())
	}
}
