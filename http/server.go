package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/furnex"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before shutdown.
const ShutdownTimeout = 5 * time.Second

// Number of scrapes shown on the index and recent endpoints.
const (
	indexRecentLimit = furnex.DefaultRecentLimit
	recentLimit      = 10
)

// maxRequestBody caps JSON request bodies.
const maxRequestBody = 1 << 20

// Server serves the extraction JSON API.
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	// ctx is canceled on Close and stops background jobs.
	ctx    context.Context
	cancel context.CancelFunc
	jobs   sync.WaitGroup

	// Addr is the bind address, e.g. ":5000".
	Addr string

	// BatchSize is used when a batch request gives none.
	BatchSize int

	Pages     furnex.PageProcessor
	Products  furnex.ProductService
	Batches   furnex.BatchProcessor
	TestSets  furnex.TestSetStore
	Evaluator furnex.Evaluator

	Logger *slog.Logger
}

// NewServer returns a new Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		BatchSize: 50,
		Logger:    slog.New(slog.DiscardHandler),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.server = &http.Server{Handler: s.mux, ReadHeaderTimeout: 10 * time.Second}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /extract", s.handleExtract)
	s.mux.HandleFunc("GET /stats", s.handleStats)
	s.mux.HandleFunc("GET /recent", s.handleRecent)
	s.mux.HandleFunc("GET /products", s.handleProducts)
	s.mux.HandleFunc("POST /batch", s.handleBatch)
	s.mux.HandleFunc("GET /metrics", s.handleMetrics)
	s.mux.HandleFunc("POST /create_test_set", s.handleCreateTestSet)

	return s
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go s.server.Serve(s.ln)
	return nil
}

// URL returns the base URL of a running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close stops the server and waits for background jobs to stop.
func (s *Server) Close() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.jobs.Wait()
	return err
}

// ServeHTTP lets tests drive the router without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	recent, err := s.Products.RecentScrapes(r.Context(), indexRecentLimit)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	stats, err := s.Products.ProductStats(r.Context(), furnex.DefaultStatsLimit)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"recent":  recent,
		"stats":   stats,
	})
}

type extractRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		s.Error(w, r, furnex.Errorf(furnex.EINVALID, "URL required"))
		return
	}

	ext, err := s.Pages.Process(r.Context(), req.URL)
	if err == nil {
		err = s.Products.SaveExtraction(r.Context(), ext)
	}
	if err != nil {
		if furnex.ErrorCode(err) != furnex.EINVALID {
			if saveErr := s.Products.SaveError(r.Context(), req.URL, err.Error()); saveErr != nil {
				s.Logger.Error("saving scrape error", "url", req.URL, "err", saveErr)
			}
		}
		s.Logger.Info("extract failed", "url", req.URL, "err", err)
		writeJSON(w, errorStatus(err), map[string]any{
			"success": false,
			"error":   FriendlyError(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"url":      ext.URL,
		"products": nonNil(ext.Candidates),
		"count":    len(ext.Candidates),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Products.ProductStats(r.Context(), furnex.DefaultStatsLimit)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	recent, err := s.Products.RecentScrapes(r.Context(), recentLimit)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "recent": recent})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	pageURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if pageURL == "" {
		s.Error(w, r, furnex.Errorf(furnex.EINVALID, "url query parameter required"))
		return
	}
	products, err := s.Products.FindProducts(r.Context(), pageURL)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"url":      pageURL,
		"products": nonNil(products),
	})
}

type batchRequest struct {
	BatchSize  int `json:"batch_size"`
	StartIndex int `json:"start_index"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	if req.BatchSize <= 0 {
		req.BatchSize = s.BatchSize
	}
	if req.StartIndex < 0 {
		s.Error(w, r, furnex.Errorf(furnex.EINVALID, "start_index must not be negative"))
		return
	}

	total, err := s.Batches.CountURLs(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}

	opts := furnex.BatchOptions{Start: req.StartIndex, Size: req.BatchSize}
	s.background("batch", func(ctx context.Context) error {
		_, err := s.Batches.ProcessBatch(ctx, opts)
		return err
	})

	writeJSON(w, http.StatusAccepted, map[string]any{
		"success":    true,
		"message":    fmt.Sprintf("Started processing %d URLs from index %d", req.BatchSize, req.StartIndex),
		"total_urls": total,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	cases, err := s.TestSets.LoadTestSet()
	if furnex.ErrorCode(err) == furnex.ENOTFOUND {
		s.Error(w, r, furnex.Errorf(furnex.ENOTFOUND, "Test set not found. Create one first."))
		return
	}
	if err != nil {
		s.Error(w, r, err)
		return
	}

	result, err := s.Evaluator.Evaluate(r.Context(), cases)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if err := s.TestSets.SaveSummary(&result.Metrics); err != nil {
		s.Logger.Error("saving evaluation summary", "err", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "metrics": result})
}

type testSetRequest struct {
	SampleSize int    `json:"sample_size"`
	Seed       uint64 `json:"seed"`
}

func (s *Server) handleCreateTestSet(w http.ResponseWriter, r *http.Request) {
	var req testSetRequest
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	if req.SampleSize <= 0 {
		req.SampleSize = furnex.DefaultSampleSize
	}

	opts := furnex.TestSetOptions{SampleSize: req.SampleSize, Seed: req.Seed}
	s.background("create test set", func(ctx context.Context) error {
		_, err := s.Batches.CreateTestSet(ctx, opts)
		return err
	})

	writeJSON(w, http.StatusAccepted, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Started building a test set from %d URLs", req.SampleSize),
	})
}

// background runs job until it returns or the server closes.
func (s *Server) background(name string, job func(ctx context.Context) error) {
	s.jobs.Add(1)
	go func() {
		defer s.jobs.Done()
		begin := time.Now()
		err := job(s.ctx)
		s.Logger.Info(name, "duration", time.Since(begin), "err", err)
	}()
}

// Error writes err as a JSON error response. Internal errors are logged
// and their details hidden.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := furnex.ErrorCode(err), furnex.ErrorMessage(err)
	if code == furnex.EINTERNAL {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, errorStatus(err), map[string]any{"success": false, "error": message})
}

// FriendlyError explains an extraction failure to a person.
func FriendlyError(err error) string {
	if isTimeout(err) {
		return "Request timed out. The site is not responding."
	}
	if isConnection(err) {
		return "Could not connect to the site. Check the URL."
	}
	var e *furnex.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Processing failed: " + err.Error()
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

func isConnection(err error) bool {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection")
}

// errorStatus maps application error codes to HTTP status codes.
func errorStatus(err error) int {
	switch furnex.ErrorCode(err) {
	case furnex.EINVALID:
		return http.StatusBadRequest
	case furnex.ENOTFOUND:
		return http.StatusNotFound
	case furnex.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON request body into v. An empty body leaves v
// unchanged.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return furnex.Errorf(furnex.EINVALID, "invalid JSON body: %v", err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
