package server

import (
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/hopworks/logostamp/metrics/prometheusmetrics"
)

type Option func(s *Server)

func WithAddress(address string) Option {
	return func(s *Server) {
		s.Address = address
	}
}

func WithPort(port int) Option {
	return func(s *Server) {
		s.Port = port
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

func WithMiddleware(middleware Middleware) Option {
	return func(s *Server) {
		s.Handler = middleware(s.Handler)
	}
}

func WithPathPrefix(prefix string) Option {
	return func(s *Server) {
		s.PathPrefix = prefix
	}
}

func WithCORS(enabled bool) Option {
	return func(s *Server) {
		if enabled {
			s.Handler = cors.Default().Handler(s.Handler)
		}
	}
}

func WithAccessLog(enabled bool) Option {
	return func(s *Server) {
		s.AccessLog = enabled
	}
}

func WithTLS(certFile, keyFile string) Option {
	return func(s *Server) {
		s.CertFile = certFile
		s.KeyFile = keyFile
	}
}

func WithMetrics(metrics *prometheusmetrics.Server) Option {
	return func(s *Server) {
		s.Metrics = metrics
	}
}

func WithDebug(debug bool) Option {
	return func(s *Server) {
		s.Debug = debug
	}
}
