package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gi8lino/jiraview/internal/config"
	"github.com/gi8lino/jiraview/internal/jira"
	"github.com/gi8lino/jiraview/internal/metrics"
	"github.com/gi8lino/jiraview/internal/utils"
)

const (
	msgMethodNotAllowed = "Method Not Allowed. Use POST."
	msgBodyTooLarge     = "Request body too large"
)

// Proxy translates inbound search requests into one authenticated Jira search
// and maps the answer onto a uniform JSON contract. It holds no per-request state.
type Proxy struct {
	searcher jira.Searcher
	cors     corsPolicy
	maxBody  int64
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New returns a Proxy using searcher for upstream calls. logger and m may be nil.
func New(searcher jira.Searcher, cfg config.ProxyConfig, logger *slog.Logger, m *metrics.Metrics) *Proxy {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Proxy{
		searcher: searcher,
		cors:     newCORSPolicy(cfg.CORS),
		maxBody:  cfg.Server.MaxBodyBytes,
		logger:   logger,
		metrics:  m,
	}
}

// ServeHTTP applies the CORS policy, reads the body and writes the result of Handle.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.cors.apply(w.Header(), r.Header.Get("Origin"))

	var body []byte
	if r.Method == http.MethodPost {
		var err error
		body, err = p.readBody(w, r)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				p.metrics.RecordOutcome(metrics.OutcomeBadRequest)
				errorResponse(http.StatusRequestEntityTooLarge, msgBodyTooLarge, nil).write(w)
				return
			}
			p.metrics.RecordOutcome(metrics.OutcomeBadRequest)
			errorResponse(http.StatusBadRequest, msgInvalidJSON, nil).write(w)
			return
		}
	}

	p.Handle(r.Context(), r.Method, body).write(w)
}

// readBody reads the request body, capped at maxBody when set.
func (p *Proxy) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	var rd io.Reader = r.Body
	if p.maxBody > 0 {
		rd = http.MaxBytesReader(w, r.Body, p.maxBody)
	}
	return io.ReadAll(rd)
}

// Handle runs one proxy invocation. Every path, including a panic, ends in
// exactly one Response.
func (p *Proxy) Handle(ctx context.Context, method string, body []byte) (resp Response) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("proxy panic recovered", "panic", rec)
			p.metrics.RecordOutcome(metrics.OutcomeServerError)
			resp = errorResponse(http.StatusInternalServerError, panicMessage(rec), nil)
		}
	}()

	switch method {
	case http.MethodOptions:
		p.metrics.RecordOutcome(metrics.OutcomePreflight)
		return Response{StatusCode: http.StatusNoContent}
	case http.MethodPost:
	default:
		p.metrics.RecordOutcome(metrics.OutcomeMethodNotAllowed)
		return errorResponse(http.StatusMethodNotAllowed, msgMethodNotAllowed, nil)
	}

	in, err := parseSearchInput(body)
	if err != nil {
		p.metrics.RecordOutcome(metrics.OutcomeBadRequest)
		return errorResponse(http.StatusBadRequest, err.Error(), nil)
	}

	return p.search(ctx, in)
}

// search performs the single upstream call and maps its answer.
func (p *Proxy) search(ctx context.Context, in searchInput) Response {
	auth := jira.NewBasicAuth(in.Email, in.Token)
	req := jira.NewSearchRequest(in.JQL, in.MaxResults)

	start := time.Now()
	up, err := p.searcher.Search(ctx, in.Domain, auth, req)
	elapsed := time.Since(start)

	if err != nil {
		p.metrics.RecordUpstream(0, elapsed)
		p.metrics.RecordOutcome(metrics.OutcomeServerError)
		p.logger.Warn("jira search failed",
			"domain", in.Domain,
			"email", utils.ObfuscateEmail(in.Email),
			"duration", elapsed,
			"error", err,
		)
		return errorResponse(http.StatusInternalServerError, err.Error(), nil)
	}

	p.metrics.RecordUpstream(up.StatusCode, elapsed)
	p.logger.Debug("jira search",
		"domain", in.Domain,
		"email", utils.ObfuscateEmail(in.Email),
		"jqlLength", len(in.JQL),
		"maxResults", in.MaxResults,
		"status", up.StatusCode,
		"duration", elapsed,
	)

	return p.mapUpstream(up)
}

// mapUpstream converts the upstream answer into the outward contract.
func (p *Proxy) mapUpstream(up *jira.Response) Response {
	payload := upstreamPayload(up.Body)

	if !up.OK() {
		p.metrics.RecordOutcome(metrics.OutcomeUpstreamError)
		return errorResponse(up.StatusCode, upstreamErrorMessage(up.StatusCode, payload), payload)
	}

	p.metrics.RecordOutcome(metrics.OutcomeOK)
	return Response{StatusCode: http.StatusOK, Body: payload}
}

// panicMessage extracts a message from a recovered value.
func panicMessage(rec any) string {
	switch v := rec.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
