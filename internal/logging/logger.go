package logging

import (
	"log"

	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap logger. Development mode uses the
// human-readable console encoder.
func NewLogger(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}

	return logger
}
