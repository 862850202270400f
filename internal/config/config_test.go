package config

import (
	"strings"
	"testing"
)

func TestDefault_MatchesBuiltins(t *testing.T) {
	cfg := Default()

	if cfg.Collection.Endpoint != "https://bhp9z0d7dyxdo1yik5ej.us-west-2.aoss.amazonaws.com" {
		t.Errorf("endpoint = %q", cfg.Collection.Endpoint)
	}
	if cfg.Collection.Region != "us-west-2" {
		t.Errorf("region = %q", cfg.Collection.Region)
	}
	if cfg.Collection.Service != "aoss" {
		t.Errorf("service = %q", cfg.Collection.Service)
	}
	if cfg.AWS.Profile != "aidlc_main" {
		t.Errorf("profile = %q", cfg.AWS.Profile)
	}
	if cfg.Index.Name != "ai-assistant-index" {
		t.Errorf("index = %q", cfg.Index.Name)
	}
	if cfg.HTTP.TimeoutSec != 30 {
		t.Errorf("timeout = %d, want 30", cfg.HTTP.TimeoutSec)
	}
	if cfg.Index.AcceptExisting {
		t.Error("accept_existing must default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestApplyDefaults_Schema(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	s := cfg.VectorSchema()

	if s.VectorField != "bedrock-knowledge-base-default-vector" {
		t.Errorf("vector field = %q", s.VectorField)
	}
	if s.TextField != "AMAZON_BEDROCK_TEXT_CHUNK" || s.MetadataField != "AMAZON_BEDROCK_METADATA" {
		t.Errorf("text fields = %q, %q", s.TextField, s.MetadataField)
	}
	if s.Dimensions != 1024 {
		t.Errorf("dimensions = %d, want 1024", s.Dimensions)
	}
	if s.SpaceType != "l2" || s.Engine != "nmslib" {
		t.Errorf("space/engine = %q/%q", s.SpaceType, s.Engine)
	}
	if s.HNSWM != 16 || s.HNSWEFConstruction != 512 {
		t.Errorf("hnsw = m:%d ef:%d", s.HNSWM, s.HNSWEFConstruction)
	}
	if s.KNNEFSearch != 512 || s.KNNEFConstruction != 512 {
		t.Errorf("knn = ef_search:%d ef_construction:%d", s.KNNEFSearch, s.KNNEFConstruction)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Collection: CollectionConfig{Endpoint: "https://abc.eu-west-1.aoss.amazonaws.com", Region: "eu-west-1"},
		AWS:        AWSConfig{Profile: "other"},
		Index:      IndexConfig{Name: "custom", Dimensions: 256, HNSWM: 32},
		HTTP:       HTTPConfig{TimeoutSec: 5},
	}
	cfg.ApplyDefaults()

	if cfg.Collection.Region != "eu-west-1" {
		t.Errorf("region = %q", cfg.Collection.Region)
	}
	if cfg.AWS.Profile != "other" {
		t.Errorf("profile = %q", cfg.AWS.Profile)
	}
	if cfg.Index.Name != "custom" || cfg.Index.Dimensions != 256 || cfg.Index.HNSWM != 32 {
		t.Errorf("index = %+v", cfg.Index)
	}
	if cfg.HTTP.TimeoutSec != 5 {
		t.Errorf("timeout = %d", cfg.HTTP.TimeoutSec)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad endpoint", func(c *Config) { c.Collection.Endpoint = "not a url" }, "collection.endpoint"},
		{"ftp endpoint", func(c *Config) { c.Collection.Endpoint = "ftp://host" }, "collection.endpoint"},
		{"endpoint with path", func(c *Config) { c.Collection.Endpoint = "https://host/idx" }, "path or query"},
		{"endpoint with query", func(c *Config) { c.Collection.Endpoint = "https://host?x=1" }, "path or query"},
		{"bad service", func(c *Config) { c.Collection.Service = "s3" }, "collection.service"},
		{"access key alone", func(c *Config) { c.AWS.AccessKey = "ak" }, "set together"},
		{"bad space", func(c *Config) { c.Index.SpaceType = "hamming" }, "index.space_type"},
		{"bad engine", func(c *Config) { c.Index.Engine = "annoy" }, "index.engine"},
		{"too many dims", func(c *Config) { c.Index.Dimensions = 20000 }, "index.dimensions"},
		{"bad pushgateway", func(c *Config) { c.Metrics.PushgatewayURL = "::" }, "metrics.pushgateway_url"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestValidate_TrailingSlashEndpoint(t *testing.T) {
	cfg := Default()
	cfg.Collection.Endpoint = "https://host.us-west-2.aoss.amazonaws.com/"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("KB_INDEX", "team-index")
	t.Setenv("KB_PROFILE", "")

	data := []byte(`
collection:
  endpoint: https://xyz.us-east-1.aoss.amazonaws.com
  region: us-east-1
aws:
  profile: ${KB_PROFILE:-fallback}
index:
  name: ${KB_INDEX}
  accept_existing: true
http:
  timeout_sec: 10
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Index.Name != "team-index" {
		t.Errorf("index = %q, want team-index", cfg.Index.Name)
	}
	if cfg.AWS.Profile != "fallback" {
		t.Errorf("profile = %q, want fallback", cfg.AWS.Profile)
	}
	if !cfg.Index.AcceptExisting {
		t.Error("expected accept_existing=true")
	}
	if cfg.HTTP.TimeoutSec != 10 {
		t.Errorf("timeout = %d", cfg.HTTP.TimeoutSec)
	}
	// untouched sections still get defaults
	if cfg.Index.Dimensions != 1024 {
		t.Errorf("dimensions = %d, want 1024", cfg.Index.Dimensions)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("collection: [unclosed")); err == nil {
		t.Error("expected YAML error")
	}
	if _, err := Parse([]byte("collection:\n  service: lambda\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("no-such-environment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Index.Name != DefaultIndexName {
		t.Errorf("index = %q", cfg.Index.Name)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}

func TestLoad_ShippedFilesIgnoreAmbientAWSEnv(t *testing.T) {
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_DEFAULT_REGION", "us-east-1")
	t.Setenv("AWS_PROFILE", "default")
	t.Setenv("KBINDEX_ENDPOINT", "https://other.us-east-1.aoss.amazonaws.com")
	t.Setenv("KBINDEX_INDEX", "other-index")

	for _, env := range []string{"local", "prod"} {
		t.Run(env, func(t *testing.T) {
			cfg, err := Load(env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Collection.Endpoint != DefaultEndpoint {
				t.Errorf("endpoint = %q, want %q", cfg.Collection.Endpoint, DefaultEndpoint)
			}
			if cfg.Collection.Region != DefaultRegion {
				t.Errorf("region = %q, want %q", cfg.Collection.Region, DefaultRegion)
			}
			if cfg.AWS.Profile != DefaultProfile {
				t.Errorf("profile = %q, want %q", cfg.AWS.Profile, DefaultProfile)
			}
			if cfg.Index.Name != DefaultIndexName {
				t.Errorf("index = %q, want %q", cfg.Index.Name, DefaultIndexName)
			}
		})
	}
}
