package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nitanshu99/job-application-agent-sub000/pkg/types"
)

const (
	healthTimeout  = 5 * time.Second
	connectTimeout = 10 * time.Second
)

// service is the shared HTTP plumbing behind every adapter: one model server
// reachable at baseURL, speaking GET /health and POST /generate.
type service struct {
	id      types.BackendID
	baseURL string
	timeout time.Duration
	log     zerolog.Logger

	mu     sync.Mutex
	client *http.Client
}

func newService(id types.BackendID, baseURL string, timeout time.Duration, log zerolog.Logger) service {
	return service{
		id:      id,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		log:     log.With().Str("backend", string(id)).Logger(),
	}
}

// newHTTPClient mirrors the transport settings used for the model runtime:
// connect timeout on the dialer, no client-level timeout, deadlines carried
// by each request context instead.
func newHTTPClient() *http.Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: tr, Timeout: 0}
}

// ID returns the backend this adapter serves.
func (s *service) ID() types.BackendID { return s.id }

// Initialize creates the HTTP client and verifies the server answers one
// health check. Idempotent: an initialized adapter returns nil immediately.
func (s *service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.client != nil {
		s.mu.Unlock()
		return nil
	}
	cli := newHTTPClient()
	s.client = cli
	s.mu.Unlock()

	if !s.healthCheckWith(ctx, cli) {
		s.mu.Lock()
		s.client = nil
		s.mu.Unlock()
		return fmt.Errorf("backend %s: health check failed during initialize", s.id)
	}
	s.log.Info().Str("url", s.baseURL).Msg("adapter initialized")
	return nil
}

// HealthCheck performs one GET /health round trip. False when the adapter is
// not initialized or the server does not answer 200.
func (s *service) HealthCheck(ctx context.Context) bool {
	s.mu.Lock()
	cli := s.client
	s.mu.Unlock()
	if cli == nil {
		return false
	}
	return s.healthCheckWith(ctx, cli)
}

func (s *service) healthCheckWith(ctx context.Context, cli *http.Client) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := cli.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Msg("health check failed")
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// Cleanup drops the network client. Safe to call repeatedly or before
// Initialize.
func (s *service) Cleanup() {
	s.mu.Lock()
	cli := s.client
	s.client = nil
	s.mu.Unlock()
	if cli != nil {
		cli.CloseIdleConnections()
		s.log.Info().Msg("adapter cleaned up")
	}
}

// generateRequest is the envelope POSTed to the model server. The server owns
// prompt construction; the orchestrator side only names the task and relays
// the caller's payloads.
type generateRequest struct {
	Task  string                     `json:"task"`
	Input map[string]json.RawMessage `json:"input"`
}

// generate runs one domain operation against POST /generate with the
// adapter's configured timeout. Every failure mode is folded into the result;
// nothing propagates as a fault past this boundary.
func (s *service) generate(ctx context.Context, task string, input map[string]json.RawMessage) types.OpResult {
	s.mu.Lock()
	cli := s.client
	s.mu.Unlock()
	if cli == nil {
		return types.OpResult{Error: fmt.Sprintf("backend %s not initialized", s.id)}
	}

	body, err := json.Marshal(generateRequest{Task: task, Input: input})
	if err != nil {
		return types.OpResult{Error: fmt.Sprintf("encode request: %v", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return types.OpResult{Error: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := cli.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Str("task", task).Msg("operation failed")
		return types.OpResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return types.OpResult{Error: fmt.Sprintf("read response: %v", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return types.OpResult{Error: fmt.Sprintf("backend %s returned %d: %s", s.id, resp.StatusCode, strings.TrimSpace(string(payload)))}
	}
	s.log.Debug().Str("task", task).Dur("dur", time.Since(start)).Msg("operation completed")
	return types.OpResult{Success: true, Payload: payload}
}
