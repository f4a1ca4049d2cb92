package config

import (
	"time"

	"linkstash/utils"
)

// Backend selects the persistence implementation.
const (
	BackendMongo = "mongo"
	BackendFile  = "file"
)

type DatabaseConfig struct {
	Backend         string
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string

	// FilePath is the JSON document used by the file backend.
	FilePath string
}

func LoadDatabaseConfig() DatabaseConfig {
	cfg := DatabaseConfig{
		Backend:         utils.GetEnvAsString("DB_BACKEND", BackendMongo),
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "linkstash"),
		FilePath:        utils.GetEnvAsString("DB_FILE", "db.json"),
	}
	// No Mongo URI configured means the file backend.
	if utils.GetEnvAsString("MONGO_URI", "") == "" {
		cfg.Backend = BackendFile
	}
	return cfg
}
