package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/furnex"
)

var (
	_ furnex.CandidateSource = (*LoggingCandidateSource)(nil)
	_ furnex.PageProcessor   = (*LoggingPageProcessor)(nil)
)

// LoggingCandidateSource wraps a CandidateSource with logging.
type LoggingCandidateSource struct {
	next   furnex.CandidateSource
	logger *slog.Logger
}

// NewLoggingCandidateSource creates a new LoggingCandidateSource.
func NewLoggingCandidateSource(next furnex.CandidateSource, logger *slog.Logger) *LoggingCandidateSource {
	return &LoggingCandidateSource{next: next, logger: logger}
}

// Candidates logs the number of candidates found on url.
func (s *LoggingCandidateSource) Candidates(ctx context.Context, url string) (candidates []furnex.Candidate, err error) {
	defer func(begin time.Time) {
		s.logger.Info("candidates",
			"url", url,
			"count", len(candidates),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Candidates(ctx, url)
}

// LoggingPageProcessor wraps a PageProcessor with logging.
type LoggingPageProcessor struct {
	next   furnex.PageProcessor
	logger *slog.Logger
}

// NewLoggingPageProcessor creates a new LoggingPageProcessor.
func NewLoggingPageProcessor(next furnex.PageProcessor, logger *slog.Logger) *LoggingPageProcessor {
	return &LoggingPageProcessor{next: next, logger: logger}
}

// Process logs the outcome of processing url.
func (p *LoggingPageProcessor) Process(ctx context.Context, url string) (ext *furnex.Extraction, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin), "err", err}
		if ext != nil {
			attrs = append(attrs, "count", len(ext.Candidates), "bytes", ext.Bytes, "hash", ext.ContentHash)
		}
		p.logger.Info("process", attrs...)
	}(time.Now())
	return p.next.Process(ctx, url)
}
