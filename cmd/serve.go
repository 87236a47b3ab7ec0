package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jingjai/verifier/internal/analysis"
	"github.com/jingjai/verifier/internal/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var catalogPath string
	var backendURL string
	var provider string
	var model string
	var uploadsDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the verification API server",
		Long: `Starts the Verifier API on the specified port.

The API lets the mobile client create verification sessions, upload the
required photos slot by slot, and submit completed photo sets for
authenticity analysis.`,
		Example: `  # Start server on default port 8888 with the builtin catalog
  verifier serve

  # Start server with a custom catalog and a real analysis provider
  verifier serve --port 3000 --catalog catalog.yaml --provider openai`,
		RunE: func(cmd *cobra.Command, args []string) error {
			productCatalog, err := loadCatalog(catalogPath, backendURL)
			if err != nil {
				return err
			}
			sink := analysis.NewService(provider, model)
			handler := handlers.New(productCatalog, sink, uploadsDir)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/brands", handler.HandleBrands)
			mux.HandleFunc("/api/products", handler.HandleProducts)
			mux.HandleFunc("/api/products/", handler.HandleProductDetail)
			mux.HandleFunc("/api/sessions", handler.HandleSessions)
			mux.HandleFunc("/api/sessions/", handler.HandleSessionDetail)
			mux.Handle("/static/uploads/", http.StripPrefix("/static/uploads/",
				http.FileServer(http.Dir(handler.UploadsDir()))))
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Verifier API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to a YAML catalog file (default: builtin catalog)")
	cmd.Flags().StringVar(&backendURL, "backend-url", "", "Base URL of a remote catalog backend")
	cmd.Flags().StringVar(&provider, "provider", "", "Analysis provider: mock, ollama, openai, or gemini (default: VERIFIER_PROVIDER or mock)")
	cmd.Flags().StringVar(&model, "model", "", "Analysis model override")
	cmd.Flags().StringVar(&uploadsDir, "uploads-dir", "uploads", "Directory for uploaded photos")

	return cmd
}
