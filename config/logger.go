package config

import (
	"os"

	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

// InitLogger sets up the process-wide logger. Development output is used
// unless GO_ENV is production.
func InitLogger() {
	var logger *zap.Logger
	if os.Getenv("GO_ENV") == "production" {
		logger = zap.Must(zap.NewProduction())
	} else {
		logger = zap.Must(zap.NewDevelopment())
	}
	Log = logger.Sugar()
}
