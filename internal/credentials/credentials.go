// Package credentials resolves AWS signing credentials from a named shared
// config profile, optionally overridden by static keys.
package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
)

// Config selects where credentials come from.
type Config struct {
	Profile string // shared config profile name, e.g. aidlc_main
	Region  string

	// Static keys take precedence over the profile when set.
	AccessKey    string
	SecretKey    string
	SessionToken string

	// Overrides for the shared config/credentials file locations. Empty means SDK defaults.
	ConfigFiles      []string
	CredentialsFiles []string
}

// Load builds an aws.Config for the given profile and region. It retrieves
// credentials once so a missing or broken profile fails here, before any
// request is signed. The returned config carries a caching provider.
func Load(ctx context.Context, cfg Config) (aws.Config, error) {
	if cfg.Region == "" {
		return aws.Config{}, errors.New("load credentials, region is required")
	}

	var (
		hasAccessKey = cfg.AccessKey != ""
		hasSecretKey = cfg.SecretKey != ""
	)
	if hasAccessKey != hasSecretKey {
		return aws.Config{}, errors.New("load credentials, access key and secret key must be set together")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" && !hasAccessKey {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	if len(cfg.ConfigFiles) > 0 {
		opts = append(opts, config.WithSharedConfigFiles(cfg.ConfigFiles))
	}
	if len(cfg.CredentialsFiles) > 0 {
		opts = append(opts, config.WithSharedCredentialsFiles(cfg.CredentialsFiles))
	}
	if hasAccessKey {
		opts = append(opts, config.WithCredentialsProvider(
			awscreds.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load credentials, profile %q: %w", cfg.Profile, err)
	}
	if awsCfg.Credentials == nil {
		return aws.Config{}, fmt.Errorf("load credentials, profile %q: no credentials provider", cfg.Profile)
	}

	awsCfg.Credentials = aws.NewCredentialsCache(awsCfg.Credentials)
	if _, err := Retrieve(ctx, awsCfg.Credentials); err != nil {
		return aws.Config{}, fmt.Errorf("load credentials, profile %q: %w", cfg.Profile, err)
	}

	return awsCfg, nil
}

// Retrieve fetches credentials from p and checks that both keys are present.
func Retrieve(ctx context.Context, p aws.CredentialsProvider) (aws.Credentials, error) {
	if p == nil {
		return aws.Credentials{}, errors.New("no credentials provider")
	}
	creds, err := p.Retrieve(ctx)
	if err != nil {
		return aws.Credentials{}, fmt.Errorf("retrieve credentials: %w", err)
	}
	if !creds.HasKeys() {
		return aws.Credentials{}, errors.New("retrieve credentials: access key or secret key is empty")
	}
	return creds, nil
}
