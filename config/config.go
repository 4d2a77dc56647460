package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string              `mapstructure:"port"`
	UploadDir           string              `mapstructure:"upload_dir"`
	AIProvider          string              `mapstructure:"ai_provider"`
	AIEndpoint          string              `mapstructure:"ai_endpoint"`
	Model               string              `mapstructure:"model"`
	EmbeddingModel      string              `mapstructure:"embedding_model"`
	OpenAIAPIKey        string              `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey        string              `mapstructure:"GEMINI_API_KEY"`
	GeminiAPIKeys       []string            `mapstructure:"gemini_api_keys"`
	MongoURI            string              `mapstructure:"MONGODB_URI"`
	MongoDatabase       string              `mapstructure:"mongo_database"`
	AdminUsername       string              `mapstructure:"admin_username"`
	AdminPassword       string              `mapstructure:"ADMIN_PASSWORD"`
	FallbackSources     []string            `mapstructure:"fallback_sources"`
	Chunking            ChunkingConfig      `mapstructure:"chunking"`
	Retrieval           RetrievalConfig     `mapstructure:"retrieval"`
	WeaviateStoreConfig WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
}

type ChunkingConfig struct {
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`
}

type RetrievalConfig struct {
	DefaultK         int `mapstructure:"default_k"`
	ContextCharLimit int `mapstructure:"context_char_limit"`
}

type WeaviateStoreConfig struct {
	Host         string       `mapstructure:"host"`
	APIKey       string       `mapstructure:"WEAVIATE_APIKEY"` // Changed to match env var
	Text2Vec     string       `mapstructure:"text2vec"`
	ModuleConfig ModuleConfig `mapstructure:"module_config"`
}

type ModuleConfig map[string]interface{}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("WEAVIATE_APIKEY")
	v.BindEnv("MONGODB_URI")
	v.BindEnv("ADMIN_PASSWORD")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if config.GeminiAPIKey != "" {
		config.GeminiAPIKeys = append(config.GeminiAPIKeys, config.GeminiAPIKey)
	}
	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.AIProvider == "" {
		c.AIProvider = "openai"
	}
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = "text-embedding-3-small"
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = "docqa"
	}
	if c.Chunking.ChunkSize == 0 {
		c.Chunking.ChunkSize = 800
	}
	if c.Chunking.ChunkOverlap == 0 {
		c.Chunking.ChunkOverlap = 100
	}
	if c.Retrieval.DefaultK == 0 {
		c.Retrieval.DefaultK = 4
	}
	if c.Retrieval.ContextCharLimit == 0 {
		c.Retrieval.ContextCharLimit = 1000
	}
	if len(c.FallbackSources) == 0 {
		c.FallbackSources = []string{"manual"}
	}
}
