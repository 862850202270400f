package index

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/kailas-cloud/kbindex/internal/domain"
)

// CredentialSource resolves signing credentials. aws.CredentialsProvider satisfies it.
type CredentialSource interface {
	Retrieve(ctx context.Context) (aws.Credentials, error)
}

// Repository creates the vector index.
type Repository interface {
	Create(ctx context.Context, name string) (domain.Acknowledgement, error)
}

// Recorder observes the outcome of a creation attempt.
type Recorder interface {
	Observe(outcome domain.Outcome, duration time.Duration)
}
