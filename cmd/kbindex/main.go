package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"go.uber.org/zap"

	"github.com/kailas-cloud/kbindex/internal/config"
	"github.com/kailas-cloud/kbindex/internal/credentials"
	"github.com/kailas-cloud/kbindex/internal/db/opensearch"
	"github.com/kailas-cloud/kbindex/internal/domain"
	logpkg "github.com/kailas-cloud/kbindex/internal/logger"
	"github.com/kailas-cloud/kbindex/internal/metrics"
	"github.com/kailas-cloud/kbindex/internal/report"
	"github.com/kailas-cloud/kbindex/internal/repository/knowledgebase"
	indexuc "github.com/kailas-cloud/kbindex/internal/usecase/index"
	"github.com/kailas-cloud/kbindex/internal/version"
)

const pushTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting kbindex",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("endpoint", cfg.Collection.Endpoint),
		zap.String("region", cfg.Collection.Region),
		zap.String("index", cfg.Index.Name),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	rep := report.New(os.Stdout)
	rep.Start()

	awsCfg, err := credentials.Load(ctx, credentials.Config{
		Profile:      cfg.AWS.Profile,
		Region:       cfg.Collection.Region,
		AccessKey:    cfg.AWS.AccessKey,
		SecretKey:    cfg.AWS.SecretKey,
		SessionToken: cfg.AWS.SessionToken,
	})
	if err != nil {
		// The service retrieves again and classifies this as a credential failure.
		awsCfg = aws.Config{Region: cfg.Collection.Region, Credentials: unresolved(err)}
	}

	recorder := metrics.NewRecorder(cfg.Index.Name)

	store, err := opensearch.NewStore(opensearch.Config{
		Endpoint:  cfg.Collection.Endpoint,
		Service:   cfg.Collection.Service,
		AWS:       awsCfg,
		Transport: recorder.Transport(nil),
		Logger:    logger,
	})
	if err != nil {
		res := domain.Failed(cfg.Index.Name, fmt.Errorf("%w: %w", domain.ErrTransport, err), false)
		rep.Result(res)
		return res.ExitCode()
	}

	repo := knowledgebase.New(store, cfg.VectorSchema())
	svc := indexuc.New(awsCfg.Credentials, repo, cfg.Index.Name).
		WithTimeout(time.Duration(cfg.HTTP.TimeoutSec) * time.Second).
		WithAcceptExisting(cfg.Index.AcceptExisting).
		WithRecorder(recorder)

	res := svc.CreateVectorIndex(ctx)
	rep.Result(res)

	if cfg.Metrics.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		if err := recorder.Push(pushCtx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
			logger.Warn("Failed to push metrics", zap.String("url", cfg.Metrics.PushgatewayURL), zap.Error(err))
		}
		cancel()
	}

	logger.Info("Finished",
		zap.String("outcome", string(res.Outcome)),
		zap.Int("exit_code", res.ExitCode()),
	)
	return res.ExitCode()
}

// unresolved returns a provider that always fails with err.
func unresolved(err error) aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{}, err
	})
}
