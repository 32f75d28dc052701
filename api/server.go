package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/sproutly-tech/sproutly-bridging/api/handlers"
)

type Handlers struct {
	Bridge   *handlers.BridgeHandler
	Stake    *handlers.StakeHandler
	Locks    *handlers.LocksHandler
	Release  *handlers.ReleaseHandler
	Estimate *handlers.EstimateHandler
	Wizard   *handlers.WizardHandler
}

func Serve(
	ctx context.Context,
	addr string,
	h Handlers,
) {
	r := mux.NewRouter()
	r.HandleFunc("/v1/bridge", h.Bridge.HandleBridge).Methods("POST")
	r.HandleFunc("/v1/bridge/state", h.Bridge.HandleState).Methods("GET")
	r.HandleFunc("/v1/bridge/reset", h.Bridge.HandleReset).Methods("POST")
	r.HandleFunc("/v1/stake", h.Stake.HandleStake).Methods("POST")
	r.HandleFunc("/v1/locks/{address}", h.Locks.HandleLocks).Methods("GET")
	r.HandleFunc("/v1/locks/{id}/release", h.Release.HandleRelease).Methods("POST")
	r.HandleFunc("/v1/estimate", h.Estimate.HandleEstimate).Methods("GET")
	r.HandleFunc("/v1/wizard", h.Wizard.HandleStep).Methods("GET")
	r.HandleFunc("/v1/wizard/next", h.Wizard.HandleNext).Methods("POST")
	r.HandleFunc("/v1/wizard/terms", h.Wizard.HandleTerms).Methods("POST")
	r.HandleFunc("/v1/wizard/close", h.Wizard.HandleClose).Methods("POST")

	server := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: time.Second * 10,
	}
	go func() {
		log.Info().Msgf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Err(err).Msgf("Error shutting down server")
	} else {
		log.Info().Msgf("Server shut down gracefully.")
	}
}
