package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	neturl "net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at configPath, falling back to defaults when the
// file does not exist, then applies environment overrides.
func Load(configPath string) (*AppConfig, error) {
	return load(configPath, os.Getenv)
}

func load(configPath string, getenv func(string) string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		raw := rawAppConfig{}
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		applyRawAppConfig(&cfg, raw)
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnv(&cfg, getenv)
	normalizeAppConfig(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.MaxUploadMB < 1 {
		return nil, fmt.Errorf("invalid max_upload_mb %d in %q, expected >= 1", cfg.MaxUploadMB, path)
	}
	switch cfg.History.Backend {
	case HistoryBackendFile, HistoryBackendRedis, HistoryBackendSQL, HistoryBackendMongo:
	default:
		return nil, fmt.Errorf("unknown history.backend %q in %q", cfg.History.Backend, path)
	}
	if cfg.History.Backend == HistoryBackendSQL {
		switch cfg.History.SQL.Driver {
		case "mysql", "postgres", "sqlite":
		default:
			return nil, fmt.Errorf("unknown history.sql.driver %q in %q", cfg.History.SQL.Driver, path)
		}
	}
	if cfg.History.Redis.Port < 1 || cfg.History.Redis.Port > 65535 {
		return nil, fmt.Errorf("invalid history.redis.port %d in %q, expected 1-65535", cfg.History.Redis.Port, path)
	}
	switch cfg.Summarizer.Provider {
	case SummarizerGeneric, SummarizerOpenAI, SummarizerAnthropic:
	default:
		return nil, fmt.Errorf("unknown summarizer.provider %q in %q", cfg.Summarizer.Provider, path)
	}
	if cfg.Archive.Enable && (cfg.Archive.Bucket == "" || cfg.Archive.AccessKeyID == "" || cfg.Archive.SecretAccessKey == "") {
		return nil, fmt.Errorf("incomplete archive config in %q: bucket/access_key_id/secret_access_key are required", path)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:        defaultPort,
		Env:         defaultEnv,
		MaxUploadMB: defaultMaxUpload,
		History: HistoryConfig{
			Backend: defaultHistoryBackend,
			File:    defaultHistoryFile,
			Redis: RedisConfig{
				Host:   defaultRedisHost,
				Port:   defaultRedisPort,
				DB:     defaultRedisDB,
				Prefix: defaultRedisPrefix,
			},
			SQL: SQLConfig{Driver: defaultSQLDriver, DSN: defaultSQLiteDSN},
			Mongo: MongoConfig{
				URI:        defaultMongoURI,
				Database:   defaultMongoDatabase,
				Collection: defaultMongoCollection,
			},
		},
		Summarizer: SummarizerConfig{
			Provider:    defaultSummarizerProvider,
			Model:       DefaultSummarizerModel,
			TimeoutSecs: defaultSummarizerTimeout,
		},
		Archive: ArchiveConfig{Prefix: defaultArchivePrefix},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	} else if v := strings.TrimSpace(raw.NodeEnv); v != "" {
		cfg.Env = v
	}
	switch {
	case raw.AllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	case raw.CORSAllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeOrigins(raw.CORSAllowedOrigins)
	}
	if raw.MaxUploadMB != 0 {
		cfg.MaxUploadMB = raw.MaxUploadMB
	}

	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.Paths.Data); v != "" {
		cfg.Paths.Data = v
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.Paths.Data = v
	}

	cfg.History = mergeHistoryConfig(cfg.History, raw.History)
	cfg.Summarizer = mergeSummarizerConfig(cfg.Summarizer, raw.Summarizer)
	cfg.Archive = mergeArchiveConfig(cfg.Archive, raw.Archive)
}

func mergeHistoryConfig(current, raw HistoryConfig) HistoryConfig {
	if v := strings.TrimSpace(raw.Backend); v != "" {
		current.Backend = v
	}
	if v := strings.TrimSpace(raw.File); v != "" {
		current.File = v
	}

	r := raw.Redis
	if v := strings.TrimSpace(r.URL); v != "" {
		current.Redis.URL = v
	}
	if v := strings.TrimSpace(r.Host); v != "" {
		current.Redis.Host = v
	}
	if r.Port != 0 {
		current.Redis.Port = r.Port
	}
	if v := strings.TrimSpace(r.Username); v != "" {
		current.Redis.Username = v
	}
	if r.Password != "" {
		current.Redis.Password = r.Password
	}
	if r.DB != 0 {
		current.Redis.DB = r.DB
	}
	if r.TLS {
		current.Redis.TLS = true
	}
	if v := strings.TrimSpace(r.Prefix); v != "" {
		current.Redis.Prefix = v
	}

	if v := strings.TrimSpace(raw.SQL.Driver); v != "" {
		current.SQL.Driver = v
	}
	if v := strings.TrimSpace(raw.SQL.DSN); v != "" {
		current.SQL.DSN = v
	}

	if v := strings.TrimSpace(raw.Mongo.URI); v != "" {
		current.Mongo.URI = v
	}
	if v := strings.TrimSpace(raw.Mongo.Database); v != "" {
		current.Mongo.Database = v
	}
	if v := strings.TrimSpace(raw.Mongo.Collection); v != "" {
		current.Mongo.Collection = v
	}
	return current
}

func mergeSummarizerConfig(current, raw SummarizerConfig) SummarizerConfig {
	if v := strings.TrimSpace(raw.Provider); v != "" {
		current.Provider = v
	}
	if v := strings.TrimSpace(raw.APIKey); v != "" {
		current.APIKey = v
	}
	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		current.BaseURL = v
	}
	if v := strings.TrimSpace(raw.Model); v != "" {
		current.Model = v
	}
	if raw.TimeoutSecs != 0 {
		current.TimeoutSecs = raw.TimeoutSecs
	}
	return current
}

func mergeArchiveConfig(current, raw ArchiveConfig) ArchiveConfig {
	next := raw
	if strings.TrimSpace(next.Prefix) == "" {
		next.Prefix = current.Prefix
	}
	return next
}

func applyEnv(cfg *AppConfig, getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := strings.TrimSpace(getenv(EnvSummarizerAPIKey)); v != "" {
		cfg.Summarizer.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvSummarizerBaseURL)); v != "" {
		cfg.Summarizer.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvSummarizerModel)); v != "" {
		cfg.Summarizer.Model = v
	}
	if v := strings.TrimSpace(getenv(EnvSummarizerProvider)); v != "" {
		cfg.Summarizer.Provider = v
	}
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := strings.TrimSpace(getenv(EnvHistoryFile)); v != "" {
		cfg.History.File = v
	}
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

func (c *AppConfig) LogDir() string {
	if c == nil {
		return ResolveRuntimePath("", "logs")
	}
	return ResolveRuntimePath(c.Paths.Logs, "logs")
}

// DataDir is where the file history backend and the sqlite database live.
// It defaults to the working directory.
func (c *AppConfig) DataDir() string {
	if c == nil {
		return ResolveRuntimePath("", ".")
	}
	return ResolveRuntimePath(c.Paths.Data, ".")
}

// HistoryFilePath resolves history.file against DataDir unless it is absolute.
func (c *AppConfig) HistoryFilePath() string {
	name := strings.TrimSpace(c.History.File)
	if name == "" {
		name = defaultHistoryFile
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(c.DataDir(), name)
}

// SQLDSN returns the configured DSN; a relative sqlite file is placed under DataDir.
func (c *AppConfig) SQLDSN() string {
	dsn := strings.TrimSpace(c.History.SQL.DSN)
	if c.History.SQL.Driver != "sqlite" {
		return dsn
	}
	if dsn == "" {
		dsn = defaultSQLiteDSN
	}
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") || filepath.IsAbs(dsn) {
		return dsn
	}
	return filepath.Join(c.DataDir(), dsn)
}

func (c *AppConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func (c SummarizerConfig) Timeout() time.Duration {
	if c.TimeoutSecs <= 0 {
		return defaultSummarizerTimeout * time.Second
	}
	return time.Duration(c.TimeoutSecs) * time.Second
}

func (c RedisConfig) URLValue() string {
	if u := strings.TrimSpace(c.URL); u != "" {
		if !strings.Contains(u, "://") {
			return "redis://" + u
		}
		return u
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultRedisHost
	}
	port := c.Port
	if port == 0 {
		port = defaultRedisPort
	}
	db := c.DB
	if db < 0 {
		db = defaultRedisDB
	}
	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}

	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + strconv.Itoa(db),
	}
	username := strings.TrimSpace(c.Username)
	if username != "" {
		if c.Password != "" {
			u.User = neturl.UserPassword(username, c.Password)
		} else {
			u.User = neturl.User(username)
		}
	} else if c.Password != "" {
		u.User = neturl.UserPassword("", c.Password)
	}
	return u.String()
}
