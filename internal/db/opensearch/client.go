// Package opensearch implements db.IndexManager on top of a SigV4-signed
// opensearch-go client, for both managed domains and Serverless collections.
package opensearch

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	opensearchgo "github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/signer/awsv2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/kbindex/internal/db"
)

// Compile-time check: Store implements db.IndexManager.
var _ db.IndexManager = (*Store)(nil)

// Service namespaces used in the SigV4 credential scope.
const (
	ServiceServerless = "aoss"
	ServiceManaged    = "es"
)

// Config holds connection parameters for an OpenSearch store.
type Config struct {
	Endpoint  string     // https://<id>.<region>.aoss.amazonaws.com
	Service   string     // signing namespace, default aoss
	AWS       aws.Config // region and credentials used to sign requests
	Transport http.RoundTripper
	Logger    *zap.Logger
}

// Store implements db.IndexManager via opensearch-go.
type Store struct {
	client *opensearchgo.Client
	logger *zap.Logger
}

// NewStore creates a signed OpenSearch store. No request is sent.
func NewStore(cfg Config) (*Store, error) {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	if cfg.AWS.Region == "" {
		return nil, errors.New("region is required")
	}
	if cfg.AWS.Credentials == nil {
		return nil, errors.New("credentials provider is required")
	}

	service := cfg.Service
	if service == "" {
		service = ServiceServerless
	}

	signer, err := awsv2.NewSignerWithService(cfg.AWS, service)
	if err != nil {
		return nil, fmt.Errorf("failed to create signer: %w", err)
	}

	client, err := opensearchgo.NewClient(opensearchgo.Config{
		Addresses:    []string{endpoint},
		Signer:       signer,
		Transport:    cfg.Transport,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{client: client, logger: logger}, nil
}
