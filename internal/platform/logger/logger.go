// Package logger provides a configured zap logger.
package logger

import (
	"go.uber.org/zap"
)

// New returns a human-readable logger for development and a JSON logger otherwise.
func New(env, serviceName string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if env == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("service", serviceName)), nil
}
