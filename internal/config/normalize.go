package config

import "strings"

func normalizeAppConfig(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Paths = normalizeRuntimePaths(cfg.Paths)
	cfg.History = normalizeHistoryConfig(cfg.History)
	cfg.Summarizer = normalizeSummarizerConfig(cfg.Summarizer)
	cfg.Archive = normalizeArchiveConfig(cfg.Archive)
}

func normalizeHistoryConfig(cfg HistoryConfig) HistoryConfig {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend == "" {
		cfg.Backend = defaultHistoryBackend
	}
	cfg.File = strings.TrimSpace(cfg.File)
	if cfg.File == "" {
		cfg.File = defaultHistoryFile
	}

	cfg.Redis.Host = strings.TrimSpace(cfg.Redis.Host)
	if cfg.Redis.Host == "" && cfg.Redis.URL == "" {
		cfg.Redis.Host = defaultRedisHost
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = defaultRedisPort
	}
	if cfg.Redis.DB < 0 {
		cfg.Redis.DB = defaultRedisDB
	}
	cfg.Redis.Prefix = strings.Trim(strings.TrimSpace(cfg.Redis.Prefix), ":")
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = defaultRedisPrefix
	}

	cfg.SQL.Driver = strings.ToLower(strings.TrimSpace(cfg.SQL.Driver))
	switch cfg.SQL.Driver {
	case "":
		cfg.SQL.Driver = defaultSQLDriver
	case "sqlite3":
		cfg.SQL.Driver = "sqlite"
	case "postgresql", "pg":
		cfg.SQL.Driver = "postgres"
	}

	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = defaultMongoURI
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = defaultMongoDatabase
	}
	if cfg.Mongo.Collection == "" {
		cfg.Mongo.Collection = defaultMongoCollection
	}
	return cfg
}

func normalizeSummarizerConfig(cfg SummarizerConfig) SummarizerConfig {
	t := strings.ToLower(strings.TrimSpace(cfg.Provider))
	t = strings.ReplaceAll(t, "_", "-")
	switch t {
	case "", "sarvam", "openai-compatible":
		t = SummarizerGeneric
	}
	cfg.Provider = t
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = DefaultSummarizerModel
	}
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = defaultSummarizerTimeout
	}
	return cfg
}

func normalizeArchiveConfig(cfg ArchiveConfig) ArchiveConfig {
	cfg.Bucket = strings.TrimSpace(cfg.Bucket)
	cfg.Region = strings.TrimSpace(cfg.Region)
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	cfg.AccessKeyID = strings.TrimSpace(cfg.AccessKeyID)
	cfg.SecretAccessKey = strings.TrimSpace(cfg.SecretAccessKey)
	cfg.Prefix = strings.Trim(strings.TrimSpace(cfg.Prefix), "/")
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	return cfg
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	switch trimmed {
	case "":
		return defaultEnv
	case "dev":
		return defaultEnv
	case "prod":
		return "production"
	}
	return trimmed
}

func normalizeRuntimePaths(paths RuntimePathsConfig) RuntimePathsConfig {
	paths.Logs = strings.TrimSpace(paths.Logs)
	paths.Data = strings.TrimSpace(paths.Data)
	return paths
}
