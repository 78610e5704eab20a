package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Input selection: a local directory of PDFs, or an S3 bucket/prefix.
	PapersDir string
	Bucket    string
	Prefix    string

	// Processed artifacts mirror the archive layout: extracted text, metadata
	// JSON, and (for the json sink) vector document dumps.
	TextOutDir   string
	MetaOutDir   string
	VectorOutDir string

	// Chunking.
	ChunkModel    string
	MaxTokens     int
	OverlapTokens int

	// Embedding.
	AIAPIKey   string
	EmbedModel string
	EmbedDim   int

	// Vector store sink: json | chromem | pgvector.
	Sink        string
	DatabaseURL string
	ChromemPath string

	// AWS (only needed when ingesting from a bucket).
	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string

	Workers int

	// Processing flags.
	AnalyzeContent    bool
	ExtractTextByPage bool
	GenerateHash      bool
	UseReadability    bool
}

// LoadConfig loads the environment variables and returns the config.
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		PapersDir:    getEnv("PAPERS_DIR", "data/raw/papers"),
		Bucket:       getEnv("BUCKET_NAME", ""),
		Prefix:       getEnv("BUCKET_PREFIX", ""),
		TextOutDir:   getEnv("TEXT_OUT_DIR", "data/processed/papers/text"),
		MetaOutDir:   getEnv("META_OUT_DIR", "data/processed/papers/metadata"),
		VectorOutDir: getEnv("VECTOR_OUT_DIR", "data/debug"),

		ChunkModel:    getEnv("CHUNK_MODEL", "gpt-3.5-turbo"),
		MaxTokens:     getEnvInt("MAX_TOKENS", 512),
		OverlapTokens: getEnvInt("OVERLAP_TOKENS", 100),

		AIAPIKey:   getEnv("GEMINI_API_KEY", ""),
		EmbedModel: getEnv("EMBED_MODEL", "text-embedding-004"),
		EmbedDim:   getEnvInt("EMBED_DIM", 768),

		Sink:        getEnv("SINK", "json"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		ChromemPath: getEnv("CHROMEM_PATH", "data/chromem"),

		AwsAccessKey: getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey: getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:    getEnv("AWS_REGION", "us-east-2"),

		Workers: getEnvInt("WORKERS", 2),

		AnalyzeContent:    getEnvBool("ANALYZE_CONTENT", true),
		ExtractTextByPage: getEnvBool("EXTRACT_TEXT_BY_PAGE", true),
		GenerateHash:      getEnvBool("GENERATE_HASH", true),
		UseReadability:    getEnvBool("USE_READABILITY", false),
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("WARN: %s=%q not a bool, using default %t", key, v, def)
		return def
	}
	return b
}
