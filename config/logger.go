package config

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

func InitLogger() {
	var cfg zap.Config
	switch strings.ToLower(os.Getenv("APP_ENV")) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zl, err := cfg.Build()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	Log = zl.Sugar()
}
