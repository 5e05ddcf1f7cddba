package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/meridian-group/intake-cli/internal/confidence"
	"github.com/meridian-group/intake-cli/internal/extractor"
	"github.com/meridian-group/intake-cli/internal/fieldlib"
	"github.com/meridian-group/intake-cli/internal/technique"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the extraction HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		lib := fieldlib.Default()
		api := &apiServer{
			engine: extractor.New(lib),
			scorer: confidence.NewScorer(lib),
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           api.routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("server listening", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (defaults to server.port)")
	rootCmd.AddCommand(serveCmd)
}

// apiServer holds the shared engine and scorer for all handlers.
type apiServer struct {
	engine *extractor.Engine
	scorer *confidence.Scorer
}

func (s *apiServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(rateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/techniques", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, technique.Catalog())
	})
	r.Post("/extract", s.handleExtract)
	r.Post("/score", s.handleScore)

	return r
}

type extractRequest struct {
	Text       string   `json:"text"`
	Fields     []string `json:"fields"`
	Techniques []string `json:"techniques"`
}

func (s *apiServer) handleExtract(w http.ResponseWriter, req *http.Request) {
	var body extractRequest
	if err := decodeBody(w, req, &body); err != nil {
		return
	}
	if body.Text == "" || len(body.Fields) == 0 {
		writeError(w, http.StatusBadRequest, "text and fields are required")
		return
	}

	out := s.engine.Extract(body.Text, body.Fields, body.Techniques...)
	report := s.scorer.Score(confidence.Flat(out.Consolidated), nil, nil)

	writeJSON(w, http.StatusOK, map[string]any{
		"extraction": out,
		"confidence": report,
	})
}

type scoreRequest struct {
	ExtractedData          map[string]any                     `json:"extracted_data"`
	TemplateClassification *confidence.TemplateClassification `json:"template_classification"`
}

func (s *apiServer) handleScore(w http.ResponseWriter, req *http.Request) {
	var body scoreRequest
	if err := decodeBody(w, req, &body); err != nil {
		return
	}
	if body.ExtractedData == nil {
		writeError(w, http.StatusBadRequest, "extracted_data is required")
		return
	}

	report := s.scorer.Score(confidence.FromJSON(body.ExtractedData), body.TemplateClassification, nil)
	writeJSON(w, http.StatusOK, report)
}

func decodeBody(w http.ResponseWriter, req *http.Request, v any) error {
	req.Body = http.MaxBytesReader(w, req.Body, cfg.Server.MaxBodyBytes)
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestID tags each request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		zap.L().Debug("request",
			zap.String("request_id", id),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
		)
		next.ServeHTTP(w, req)
	})
}

// rateLimit enforces a per-client token bucket keyed by remote IP.
func rateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = map[string]*rate.Limiter{}
	)
	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[ip]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[ip] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ip, _, err := net.SplitHostPort(req.RemoteAddr)
			if err != nil {
				ip = req.RemoteAddr
			}
			if !limiterFor(ip).Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
