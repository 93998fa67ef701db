// Package config loads typed configuration from environment variables.
//
// Structs declare their variables with caarlos0/env tags; Load parses them
// once per type and caches the result. A .env file (joho/godotenv) is read
// on first use; LoadEnv loads additional files explicitly.
//
//	type Config struct {
//		BasePath string `env:"OCL_BASE_PATH" envDefault:"/ocl"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config
