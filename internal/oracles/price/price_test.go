package price

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crypto-tracker/internal/oracles"

	"github.com/rs/zerolog"
)

func setupTestOracle(handler http.HandlerFunc) (*Oracle, *httptest.Server) {
	logger := zerolog.New(nil)
	server := httptest.NewServer(handler)
	client := oracles.NewClient(5*time.Second, 100, &logger)
	return New(server.URL, client), server
}

func TestResolve_USDQuote(t *testing.T) {
	oracle, server := setupTestOracle(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("path = %v, want /simple/price", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("ids") != "bitcoin" || query.Get("vs_currencies") != "usd" {
			t.Errorf("Unexpected query: %v", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"bitcoin":{"usd":64231.55}}`)
	})
	defer server.Close()

	price, err := oracle.Resolve(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := price.String(); got != "64231.55" {
		t.Errorf("Resolve() = %v, want 64231.55", got)
	}
}

func TestResolve_UnknownToken(t *testing.T) {
	oracle, server := setupTestOracle(func(w http.ResponseWriter, _ *http.Request) {
		// The price service answers unknown ids with an empty object.
		fmt.Fprint(w, `{}`)
	})
	defer server.Close()

	if _, err := oracle.Resolve(context.Background(), "notacoin"); err == nil {
		t.Error("Resolve() error = nil, want error for unknown token")
	}
}

func TestResolve_HTTPError(t *testing.T) {
	oracle, server := setupTestOracle(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	defer server.Close()

	if _, err := oracle.Resolve(context.Background(), "bitcoin"); err == nil {
		t.Error("Resolve() error = nil, want error for HTTP failure")
	}
}

func TestResolve_MalformedBody(t *testing.T) {
	oracle, server := setupTestOracle(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `not json`)
	})
	defer server.Close()

	if _, err := oracle.Resolve(context.Background(), "bitcoin"); err == nil {
		t.Error("Resolve() error = nil, want error for malformed body")
	}
}
