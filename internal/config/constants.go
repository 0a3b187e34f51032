package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8000
	defaultEnv        = "development"
	defaultMaxUpload  = 20

	defaultHistoryBackend  = HistoryBackendFile
	defaultHistoryFile     = "history.json"
	defaultRedisHost       = "localhost"
	defaultRedisPort       = 6379
	defaultRedisDB         = 0
	defaultRedisPrefix     = "insight"
	defaultSQLDriver       = "sqlite"
	defaultSQLiteDSN       = "insights.db"
	defaultMongoURI        = "mongodb://localhost:27017"
	defaultMongoDatabase   = "docinsight"
	defaultMongoCollection = "insights"

	defaultSummarizerProvider = SummarizerGeneric
	defaultSummarizerTimeout  = 30

	defaultArchivePrefix = "uploads"
)

// DefaultSummarizerModel is the model name sent to the generic endpoint when
// none is configured.
const DefaultSummarizerModel = "generic-summarizer"

// History backends.
const (
	HistoryBackendFile  = "file"
	HistoryBackendRedis = "redis"
	HistoryBackendSQL   = "sql"
	HistoryBackendMongo = "mongo"
)

// Summarizer providers.
const (
	SummarizerGeneric   = "generic"
	SummarizerOpenAI    = "openai"
	SummarizerAnthropic = "anthropic"
)

// Environment overrides, applied after the YAML file.
const (
	EnvSummarizerAPIKey   = "SARVAM_API_KEY"
	EnvSummarizerBaseURL  = "SARVAM_BASE_URL"
	EnvSummarizerModel    = "SARVAM_MODEL"
	EnvSummarizerProvider = "SUMMARIZER_PROVIDER"
	EnvPort               = "PORT"
	EnvHistoryFile        = "HISTORY_FILE"
)
