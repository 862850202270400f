package index

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/kbindex/internal/credentials"
	"github.com/kailas-cloud/kbindex/internal/domain"
	"github.com/kailas-cloud/kbindex/internal/logger"
)

// DefaultTimeout bounds the create request.
const DefaultTimeout = 30 * time.Second

// Service creates the Knowledge Base vector index.
type Service struct {
	creds          CredentialSource
	repo           Repository
	index          string
	timeout        time.Duration
	acceptExisting bool
	recorder       Recorder
}

// New creates an index service for the named index.
func New(creds CredentialSource, repo Repository, index string) *Service {
	return &Service{creds: creds, repo: repo, index: index, timeout: DefaultTimeout}
}

// WithTimeout overrides the request timeout.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// WithAcceptExisting makes an already existing index count as success.
func (s *Service) WithAcceptExisting(accept bool) *Service {
	s.acceptExisting = accept
	return s
}

// WithRecorder attaches an outcome recorder. nil disables recording.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// CreateVectorIndex resolves credentials, then creates the index with one
// request. Every failure is returned inside the Result, never as a panic.
func (s *Service) CreateVectorIndex(ctx context.Context) (res domain.Result) {
	log := logger.FromContext(ctx).With(zap.String("index", s.index))
	start := time.Now()

	defer func() {
		if rvr := recover(); rvr != nil {
			log.Error("panic recovered", zap.Any("panic", rvr), zap.Stack("stacktrace"))
			res = domain.Failed(s.index, fmt.Errorf("%w: panic: %v", domain.ErrTransport, rvr), false)
		}
		if s.recorder != nil {
			s.recorder.Observe(res.Outcome, time.Since(start))
		}
	}()

	if _, err := credentials.Retrieve(ctx, s.creds); err != nil {
		log.Error("Failed to resolve credentials", zap.Error(err))
		return domain.Failed(s.index, fmt.Errorf("%w: %w", domain.ErrCredentials, err), false)
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ack, err := s.repo.Create(reqCtx, s.index)
	if err != nil {
		res = domain.Failed(s.index, fmt.Errorf("create index: %w", err), s.acceptExisting)
		if res.Success() {
			log.Info("Index already exists", zap.Int("status", res.StatusCode))
			return res
		}
		log.Error("Failed to create index",
			zap.String("outcome", string(res.Outcome)),
			zap.Int("status", res.StatusCode),
			zap.Error(err),
		)
		return res
	}

	log.Info("Index created",
		zap.Int("status", ack.StatusCode),
		zap.Bool("acknowledged", ack.Acknowledged),
		zap.Duration("latency", time.Since(start)),
	)
	return domain.Created(s.index, ack.StatusCode, ack.Body)
}
