package logging

import "go.uber.org/zap"

// New builds the process logger. Production config (JSON, sampled) unless
// running in dev.
func New(goEnv string) (*zap.Logger, error) {
	if goEnv == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
