package config

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Port           int                `yaml:"port"`
	Env            string             `yaml:"env"` // "development" | "production"
	AllowedOrigins []string           `yaml:"allowed_origins"`
	MaxUploadMB    int                `yaml:"max_upload_mb"`
	Paths          RuntimePathsConfig `yaml:"paths"`
	History        HistoryConfig      `yaml:"history"`
	Summarizer     SummarizerConfig   `yaml:"summarizer"`
	Archive        ArchiveConfig      `yaml:"archive"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
	Data string `yaml:"data"`
}

// HistoryConfig selects the backend the insight history is kept in.
type HistoryConfig struct {
	Backend string      `yaml:"backend"` // file | redis | sql | mongo
	File    string      `yaml:"file"`
	Redis   RedisConfig `yaml:"redis"`
	SQL     SQLConfig   `yaml:"sql"`
	Mongo   MongoConfig `yaml:"mongo"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
	Prefix   string `yaml:"prefix"`
}

type SQLConfig struct {
	Driver string `yaml:"driver"` // mysql | postgres | sqlite
	DSN    string `yaml:"dsn"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// SummarizerConfig configures the remote summarization call. An empty API key
// or base URL disables it.
type SummarizerConfig struct {
	Provider    string `yaml:"provider"` // generic | openai | anthropic
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ArchiveConfig configures S3-compatible storage for uploaded source documents.
type ArchiveConfig struct {
	Enable          bool   `yaml:"enable"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Prefix          string `yaml:"prefix"`
	// PathStyle forces path-style (true) or virtual-hosted (false) bucket
	// addressing. Unset means path style with a custom endpoint only.
	PathStyle *bool `yaml:"path_style"`
}

type rawAppConfig struct {
	Port               int                `yaml:"port"`
	Env                string             `yaml:"env"`
	NodeEnv            string             `yaml:"node_env"`
	AllowedOrigins     []string           `yaml:"allowed_origins"`
	CORSAllowedOrigins []string           `yaml:"cors_allowed_origins"`
	MaxUploadMB        int                `yaml:"max_upload_mb"`
	Paths              RuntimePathsConfig `yaml:"paths"`
	LogDir             string             `yaml:"log_dir"`
	DataDir            string             `yaml:"data_dir"`
	History            HistoryConfig      `yaml:"history"`
	Summarizer         SummarizerConfig   `yaml:"summarizer"`
	Archive            ArchiveConfig      `yaml:"archive"`
}
