package health

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"crypto-tracker/internal/config"
	"crypto-tracker/internal/logger"
)

type ChainStatus struct {
	Name     string `json:"name"`
	Explorer string `json:"explorer"`
}

var (
	isReady       int32
	chainStatuses = make(map[string]*ChainStatus)
	statusMutex   sync.RWMutex
)

func SetReady(ready bool) {
	if ready {
		atomic.StoreInt32(&isReady, 1)
	} else {
		atomic.StoreInt32(&isReady, 0)
	}
}

// RegisterChains records the configured chain table for readiness output.
func RegisterChains(chains map[string]config.ChainConfig) {
	statusMutex.Lock()
	defer statusMutex.Unlock()

	for key, chain := range chains {
		chainStatuses[key] = &ChainStatus{
			Name:     chain.Name,
			Explorer: chain.APIURL,
		}
	}
}

func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func ReadinessHandler(w http.ResponseWriter, _ *http.Request) {
	statusMutex.RLock()
	defer statusMutex.RUnlock()

	if len(chainStatuses) == 0 || atomic.LoadInt32(&isReady) == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("Not Ready"))

		return
	}

	response := make(map[string]interface{})
	response["status"] = "Ready"
	response["chains"] = chainStatuses

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// Serve starts the health endpoint on the given port. Blocks; run in a
// goroutine.
func Serve(port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", LivenessHandler)
	mux.HandleFunc("/health/ready", ReadinessHandler)

	addr := fmt.Sprintf(":%d", port)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.GetLogger().Error().Err(err).Msg("Health server stopped")
	}
}
