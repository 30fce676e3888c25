package config

import (
	"flag"
	"fmt"
	"runtime"
	"time"

	"github.com/peterbourgon/ff/v3"
	"go.uber.org/zap"

	"github.com/hopworks/logostamp"
	"github.com/hopworks/logostamp/metrics/instrumentation"
	"github.com/hopworks/logostamp/metrics/prometheusmetrics"
	"github.com/hopworks/logostamp/server"
)

type Callback func() (logger *zap.Logger, isDebug bool)

type Setter func(fs *flag.FlagSet, cb Callback) logostamp.Option

func Do(args []string, setters ...Setter) (srv *server.Server) {
	// base setters
	setters = append(setters, withCanvas, withAccent, withLogo, withUpload)

	var (
		fs      = flag.NewFlagSet("logostamp", flag.ExitOnError)
		logger  *zap.Logger
		err     error
		options []logostamp.Option

		debug        = fs.Bool("debug", false, "Debug mode")
		version      = fs.Bool("version", false, "logostamp version")
		port         = fs.Int("port", 8000, "Server port")
		goMaxProcess = fs.Int("gomaxprocs", 0, "GOMAXPROCS")

		_ = fs.String("config", ".env", "Retrieve configuration from the given file")

		processTimeout = fs.Duration("process-timeout",
			time.Second*20, "Timeout for processing one uploaded image")
		processConcurrency = fs.Int64("process-concurrency",
			-1, "Semaphore size for process concurrency control. Set -1 for no limit")
		disableErrorBody = fs.Bool("disable-error-body", false,
			"Disable response body on error")

		serverAddress = fs.String("server-address", "",
			"Server address")
		serverPathPrefix = fs.String("server-path-prefix", "",
			"Server path prefix")
		serverCORS = fs.Bool("server-cors", false,
			"Enable CORS")
		serverAccessLog = fs.Bool("server-access-log", false,
			"Enable server access log")
		serverCertFile = fs.String("server-cert-file", "",
			"TLS certificate file for HTTPS")
		serverKeyFile = fs.String("server-key-file", "",
			"TLS key file for HTTPS")

		prometheusPort = fs.Int("prometheus-port", 0,
			"Prometheus metrics server port. Set 0 to disable")
		prometheusPath = fs.String("prometheus-path", "/metrics",
			"Prometheus metrics path")

		sentryDSN = fs.String("sentry-dsn", "",
			"Sentry DSN for error reporting")
		sentryEnvironment = fs.String("sentry-environment", "",
			"Sentry environment name")
	)

	options = doSetters(fs, setters, func() (*zap.Logger, bool) {
		if err = ff.Parse(fs, args,
			ff.WithEnvVars(),
			ff.WithConfigFileFlag("config"),
			ff.WithIgnoreUndefined(true),
			ff.WithAllowMissingConfigFile(true),
			ff.WithConfigFileParser(ff.EnvParser),
		); err != nil {
			panic(err)
		}
		if *debug {
			if logger, err = zap.NewDevelopment(); err != nil {
				panic(err)
			}
		} else {
			if logger, err = zap.NewProduction(); err != nil {
				panic(err)
			}
		}
		logger = attachSentry(logger, *sentryDSN, *sentryEnvironment)
		return logger, *debug
	})

	if *version {
		fmt.Println(logostamp.Version)
		return
	}

	if *goMaxProcess > 0 {
		logger.Debug("GOMAXPROCS", zap.Int("count", *goMaxProcess))
		runtime.GOMAXPROCS(*goMaxProcess)
	}

	var metrics *prometheusmetrics.Server
	if *prometheusPort > 0 {
		metrics = prometheusmetrics.New(
			prometheusmetrics.WithPort(*prometheusPort),
			prometheusmetrics.WithPath(*prometheusPath),
			prometheusmetrics.WithLogger(logger),
		)
	}

	return server.New(
		logostamp.New(append(
			options,
			logostamp.WithProcessTimeout(*processTimeout),
			logostamp.WithProcessConcurrency(*processConcurrency),
			logostamp.WithDisableErrorBody(*disableErrorBody),
			logostamp.WithInstrumentation(instrumentation.New(logger)),
			logostamp.WithLogger(logger),
			logostamp.WithDebug(*debug),
		)...),
		server.WithAddress(*serverAddress),
		server.WithPort(*port),
		server.WithPathPrefix(*serverPathPrefix),
		server.WithCORS(*serverCORS),
		server.WithAccessLog(*serverAccessLog),
		server.WithTLS(*serverCertFile, *serverKeyFile),
		server.WithMetrics(metrics),
		server.WithLogger(logger),
		server.WithDebug(*debug),
	)
}

func doSetters(fs *flag.FlagSet, setters []Setter, cb Callback) (options []logostamp.Option) {
	var logger *zap.Logger
	var isDebug bool
	if len(setters) > 0 {
		var last = len(setters) - 1
		options = append(options, setters[last](fs, func() (*zap.Logger, bool) {
			options = append(options, doSetters(fs, setters[:last], cb)...)
			return logger, isDebug
		}))
		return
	}
	logger, isDebug = cb()
	return
}
