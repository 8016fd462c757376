package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds the global zap logger for the given environment and
// installs it with zap.ReplaceGlobals, so packages can log via zap.L().
func Init(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)

	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("logger.Init -> %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}
