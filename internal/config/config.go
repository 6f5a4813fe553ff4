// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment names the deployment profile. It is validated and carried in
// each config struct; it does not change how the Store connection is made,
// which always comes from DATABASE_URL.
type Environment string

const (
	Local      Environment = "LOCAL"
	Docker     Environment = "DOCKER"
	Production Environment = "PRODUCTION"
	Test       Environment = "TEST"
)

// Producer holds runtime configuration for cmd/producer.
type Producer struct {
	Environment    Environment
	Host           string
	Port           string
	DatabaseURL    string
	RedisURL       string
	Migrate        bool
	DispatchPeriod string // robfig/cron spec, e.g. "@every 3500ms"
}

// LoadProducer reads environment variables for the producer binary.
func LoadProducer() (*Producer, error) {
	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	dbURL, err := requireEnv("DATABASE_URL")
	if err != nil {
		return nil, err
	}
	redisURL, err := requireEnv("REDIS_URL")
	if err != nil {
		return nil, err
	}

	host := os.Getenv("HOST")
	if host == "" {
		host = "0.0.0.0"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	period := os.Getenv("DISPATCH_PERIOD")
	if period == "" {
		period = "@every 3500ms"
	}

	return &Producer{
		Environment:    env,
		Host:           host,
		Port:           port,
		DatabaseURL:    dbURL,
		RedisURL:       redisURL,
		Migrate:        boolEnv("MIGRATE"),
		DispatchPeriod: period,
	}, nil
}

// Consumer holds runtime configuration for cmd/consumer.
type Consumer struct {
	Environment Environment
	Host        string
	Port        string
	DatabaseURL string
	RedisURL    string
	Migrate     bool
	EuropePMC   string
}

// LoadConsumer reads environment variables for the consumer binary.
func LoadConsumer() (*Consumer, error) {
	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	dbURL, err := requireEnv("DATABASE_URL")
	if err != nil {
		return nil, err
	}
	redisURL, err := requireEnv("REDIS_URL")
	if err != nil {
		return nil, err
	}

	host := os.Getenv("HOST")
	if host == "" {
		host = "0.0.0.0"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	europePMC := os.Getenv("EUROPE_PMC")
	if europePMC == "" {
		europePMC = "https://www.ebi.ac.uk/europepmc/webservices/rest/"
	}

	return &Consumer{
		Environment: env,
		Host:        host,
		Port:        port,
		DatabaseURL: dbURL,
		RedisURL:    redisURL,
		Migrate:     boolEnv("MIGRATE"),
		EuropePMC:   europePMC,
	}, nil
}

// Classifier holds runtime configuration for cmd/classifier.
type Classifier struct {
	Environment Environment
	DatabaseURL string
	BatchSize   int
	ModelPath   string
}

// LoadClassifier reads environment variables for the classifier binary.
func LoadClassifier() (*Classifier, error) {
	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	dbURL, err := requireEnv("DATABASE_URL")
	if err != nil {
		return nil, err
	}

	batch := 100
	if s := os.Getenv("CLASSIFIER_BATCH_SIZE"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("CLASSIFIER_BATCH_SIZE must be a positive integer, got %q", s)
		}
		batch = v
	}

	return &Classifier{
		Environment: env,
		DatabaseURL: dbURL,
		BatchSize:   batch,
		ModelPath:   os.Getenv("CLASSIFIER_MODEL_PATH"),
	}, nil
}

// RetractionSweep holds runtime configuration for cmd/retraction-sweep.
type RetractionSweep struct {
	Environment Environment
	DatabaseURL string
	EuropePMC   string
}

// LoadRetractionSweep reads environment variables for the retraction-sweep binary.
func LoadRetractionSweep() (*RetractionSweep, error) {
	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	dbURL, err := requireEnv("DATABASE_URL")
	if err != nil {
		return nil, err
	}

	europePMC := os.Getenv("EUROPE_PMC")
	if europePMC == "" {
		europePMC = "https://www.ebi.ac.uk/europepmc/webservices/rest/"
	}

	return &RetractionSweep{
		Environment: env,
		DatabaseURL: dbURL,
		EuropePMC:   europePMC,
	}, nil
}

func loadEnvironment() (Environment, error) {
	raw := os.Getenv("ENVIRONMENT")
	if raw == "" {
		raw = string(Local)
	}
	switch Environment(raw) {
	case Local, Docker, Production, Test:
		return Environment(raw), nil
	default:
		return "", fmt.Errorf("ENVIRONMENT must be one of LOCAL, DOCKER, PRODUCTION, TEST, got %q", raw)
	}
}

func requireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func boolEnv(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return v
}
