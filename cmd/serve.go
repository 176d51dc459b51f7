package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crewcast-studio/enrich-cli/internal/enrich"
	"github.com/crewcast-studio/enrich-cli/internal/store"
)

var servePort int

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP enrichment server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc := buildService(cfg)
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		mux := newServeMux(svc, st)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		go awaitShutdown(ctx, srv)

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// awaitShutdown drains srv once ctx is canceled. The drain needs its own
// deadline because the signal context is already done by then.
func awaitShutdown(ctx context.Context, srv *http.Server) {
	<-ctx.Done()
	zap.L().Info("shutting down server")

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		zap.L().Warn("server shutdown", zap.Error(err))
	}
}

// newServeMux wires the HTTP routes over the enrichment service and the
// lookup ledger.
func newServeMux(svc *enrich.Service, st store.Store) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"providers": svc.AvailableProviders(),
		})
	})

	mux.HandleFunc("POST /enrich", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Domain         string `json:"domain"`
			PersonName     string `json:"person_name"`
			Email          string `json:"email"`
			LinkedInURL    string `json:"linkedin_url"`
			TargetLanguage string `json:"target_language"`
			Provider       string `json:"provider"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Domain == "" {
			http.Error(w, `{"error":"domain is required"}`, http.StatusBadRequest)
			return
		}

		lookup := enrich.Request{
			Domain:         req.Domain,
			PersonName:     req.PersonName,
			Email:          req.Email,
			LinkedInURL:    req.LinkedInURL,
			TargetLanguage: req.TargetLanguage,
		}

		var resp enrich.Response
		if req.Provider != "" {
			resp = svc.FindEmailWith(r.Context(), req.Provider, lookup)
		} else {
			resp = svc.FindEmail(r.Context(), lookup)
		}

		entry := store.Lookup{
			Domain:   enrich.CleanDomain(req.Domain),
			Provider: resp.Provider,
			Found:    resp.Found,
			Email:    resp.Email,
			Error:    resp.Error,
			CostUSD:  resp.CostEstimate,
		}
		if err := st.RecordLookup(r.Context(), &entry); err != nil {
			zap.L().Warn("ledger write failed", zap.Error(err))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	})

	return mux
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
