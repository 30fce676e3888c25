package config

import (
	"github.com/TheZeroSlave/zapsentry"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hopworks/logostamp"
)

// attachSentry attaches a Sentry core to the logger when a DSN is set,
// forwarding error-level entries with info-level breadcrumbs
func attachSentry(logger *zap.Logger, dsn, environment string) *zap.Logger {
	if dsn == "" {
		return logger
	}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     "logostamp@" + logostamp.Version,
	})
	if err != nil {
		logger.Warn("sentry init", zap.Error(err))
		return logger
	}
	core, err := zapsentry.NewCore(zapsentry.Configuration{
		Level:             zapcore.ErrorLevel,
		EnableBreadcrumbs: true,
		BreadcrumbLevel:   zapcore.InfoLevel,
		Tags: map[string]string{
			"component": "logostamp",
		},
	}, zapsentry.NewSentryClientFromClient(client))
	if err != nil {
		logger.Warn("sentry core", zap.Error(err))
		return logger
	}
	return zapsentry.AttachCoreToLogger(core, logger)
}
