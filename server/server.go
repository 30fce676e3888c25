package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hopworks/logostamp"
	"github.com/hopworks/logostamp/metrics/prometheusmetrics"
)

type Server struct {
	http.Server
	App        *logostamp.App
	Logger     *zap.Logger
	Debug      bool
	Address    string
	Port       int
	CertFile   string
	KeyFile    string
	PathPrefix string
	AccessLog  bool
	Metrics    *prometheusmetrics.Server
}

func New(app *logostamp.App, options ...Option) *Server {
	s := &Server{}
	s.App = app
	s.Port = 8000
	s.ReadTimeout = time.Second * 30
	s.MaxHeaderBytes = 1 << 20
	s.Logger = zap.NewNop()

	s.Handler = route(
		handleGet("/favicon.ico", handleFavicon),
		handleGet("/health", handleHealth),
	)(s.App)

	for _, option := range options {
		option(s)
	}
	if s.PathPrefix != "" {
		s.Handler = http.StripPrefix(s.PathPrefix, s.Handler)
	}
	if s.AccessLog {
		s.Handler = s.accessLogHandler(s.Handler)
	}
	s.Handler = s.panicHandler(s.Handler)
	return s
}

func (s *Server) Run() {
	s.Addr = s.Address + ":" + strconv.Itoa(s.Port)

	if err := s.App.Startup(context.Background()); err != nil {
		s.Logger.Fatal("logostamp start", zap.Error(err))
	}
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	if s.Metrics != nil {
		s.Metrics.Run()
	}

	go func() {
		if err := s.listenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal("listen", zap.Error(err))
		}
	}()

	s.Logger.Info("server start", zap.String("address", s.Address), zap.Int("port", s.Port))
	<-done

	// graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		s.Logger.Error("server shutdown", zap.Error(err))
	}
	if err := s.App.Shutdown(ctx); err != nil {
		s.Logger.Error("logostamp shutdown", zap.Error(err))
	}
	s.Logger.Info("exit")
}

func (s *Server) listenAndServe() error {
	if s.CertFile != "" && s.KeyFile != "" {
		return s.ListenAndServeTLS(s.CertFile, s.KeyFile)
	}
	return s.ListenAndServe()
}
