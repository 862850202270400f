package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/kbindex/internal/domain"
)

// Built-in defaults for the Bedrock Knowledge Base collection.
const (
	DefaultEndpoint  = "https://bhp9z0d7dyxdo1yik5ej.us-west-2.aoss.amazonaws.com"
	DefaultIndexName = "ai-assistant-index"
	DefaultRegion    = "us-west-2"
	DefaultProfile   = "aidlc_main"
	DefaultService   = "aoss"
	DefaultTimeout   = 30
)

// Config holds the kbindex configuration.
type Config struct {
	Collection CollectionConfig `yaml:"collection"`
	AWS        AWSConfig        `yaml:"aws"`
	Index      IndexConfig      `yaml:"index"`
	HTTP       HTTPConfig       `yaml:"http"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CollectionConfig locates the OpenSearch collection.
type CollectionConfig struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Service  string `yaml:"service"` // aoss (Serverless) or es (managed domain)
}

// AWSConfig selects the credential source. Static keys override the profile.
type AWSConfig struct {
	Profile      string `yaml:"profile"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	SessionToken string `yaml:"session_token"`
}

// IndexConfig holds the index name and its vector schema.
type IndexConfig struct {
	Name               string `yaml:"name"`
	VectorField        string `yaml:"vector_field"`
	TextField          string `yaml:"text_field"`
	MetadataField      string `yaml:"metadata_field"`
	Dimensions         int    `yaml:"dimensions"`
	SpaceType          string `yaml:"space_type"`
	Engine             string `yaml:"engine"`
	HNSWM              int    `yaml:"hnsw_m"`
	HNSWEFConstruction int    `yaml:"hnsw_ef_construction"`
	KNNEFSearch        int    `yaml:"knn_ef_search"`
	KNNEFConstruction  int    `yaml:"knn_ef_construction"`
	AcceptExisting     bool   `yaml:"accept_existing"` // treat "already exists" as success
}

// HTTPConfig holds request settings.
type HTTPConfig struct {
	TimeoutSec int `yaml:"timeout_sec"`
}

// MetricsConfig holds the optional Pushgateway target.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"` // empty disables pushing
	Job            string `yaml:"job"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: determined by env)
	Format string `yaml:"format"` // console, json (default: determined by env)
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A missing file is not an error: the built-in defaults are used.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML (after ${VAR} expansion), applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Collection.Endpoint == "" {
		c.Collection.Endpoint = DefaultEndpoint
	}
	if c.Collection.Region == "" {
		c.Collection.Region = DefaultRegion
	}
	if c.Collection.Service == "" {
		c.Collection.Service = DefaultService
	}
	if c.AWS.Profile == "" {
		c.AWS.Profile = DefaultProfile
	}
	if c.Index.Name == "" {
		c.Index.Name = DefaultIndexName
	}

	schema := domain.DefaultVectorSchema()
	if c.Index.VectorField == "" {
		c.Index.VectorField = schema.VectorField
	}
	if c.Index.TextField == "" {
		c.Index.TextField = schema.TextField
	}
	if c.Index.MetadataField == "" {
		c.Index.MetadataField = schema.MetadataField
	}
	if c.Index.Dimensions <= 0 {
		c.Index.Dimensions = schema.Dimensions
	}
	if c.Index.SpaceType == "" {
		c.Index.SpaceType = schema.SpaceType
	}
	if c.Index.Engine == "" {
		c.Index.Engine = schema.Engine
	}
	if c.Index.HNSWM <= 0 {
		c.Index.HNSWM = schema.HNSWM
	}
	if c.Index.HNSWEFConstruction <= 0 {
		c.Index.HNSWEFConstruction = schema.HNSWEFConstruction
	}
	if c.Index.KNNEFSearch <= 0 {
		c.Index.KNNEFSearch = schema.KNNEFSearch
	}
	if c.Index.KNNEFConstruction <= 0 {
		c.Index.KNNEFConstruction = schema.KNNEFConstruction
	}
	if c.HTTP.TimeoutSec <= 0 {
		c.HTTP.TimeoutSec = DefaultTimeout
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = "kbindex"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Collection.Endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return fmt.Errorf("collection.endpoint must be an http(s) URL, got %q", c.Collection.Endpoint)
	}
	if u.RawQuery != "" || (u.Path != "" && u.Path != "/") {
		return fmt.Errorf("collection.endpoint must not carry a path or query, got %q", c.Collection.Endpoint)
	}
	switch c.Collection.Service {
	case "aoss", "es":
		// ok
	default:
		return fmt.Errorf("collection.service must be \"aoss\" or \"es\", got %q", c.Collection.Service)
	}
	if (c.AWS.AccessKey == "") != (c.AWS.SecretKey == "") {
		return fmt.Errorf("aws.access_key and aws.secret_key must be set together")
	}
	switch c.Index.SpaceType {
	case "l2", "innerproduct", "cosinesimil":
		// ok
	default:
		return fmt.Errorf("index.space_type must be one of l2, innerproduct, cosinesimil, got %q", c.Index.SpaceType)
	}
	switch c.Index.Engine {
	case "nmslib", "faiss", "lucene":
		// ok
	default:
		return fmt.Errorf("index.engine must be one of nmslib, faiss, lucene, got %q", c.Index.Engine)
	}
	if c.Index.Dimensions > 16000 {
		return fmt.Errorf("index.dimensions must be at most 16000, got %d", c.Index.Dimensions)
	}
	if c.Metrics.PushgatewayURL != "" {
		if u, err := url.Parse(c.Metrics.PushgatewayURL); err != nil || u.Host == "" {
			return fmt.Errorf("metrics.pushgateway_url is not a valid URL: %q", c.Metrics.PushgatewayURL)
		}
	}
	return nil
}

// VectorSchema converts the index section to the domain schema.
func (c *Config) VectorSchema() domain.VectorSchema {
	return domain.VectorSchema{
		VectorField:        c.Index.VectorField,
		TextField:          c.Index.TextField,
		MetadataField:      c.Index.MetadataField,
		Dimensions:         c.Index.Dimensions,
		SpaceType:          c.Index.SpaceType,
		Engine:             c.Index.Engine,
		HNSWM:              c.Index.HNSWM,
		HNSWEFConstruction: c.Index.HNSWEFConstruction,
		KNNEFSearch:        c.Index.KNNEFSearch,
		KNNEFConstruction:  c.Index.KNNEFConstruction,
	}
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
