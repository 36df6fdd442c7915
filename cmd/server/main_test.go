package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"gorm.io/gorm"

	"folio/internal/config"
	"folio/internal/contact"
	"folio/internal/content"
	"folio/internal/server"
)

type stubServer struct {
	startErr       error
	stopErr        error
	blockUntilStop bool

	startCalled bool
	stopCalled  bool

	startGate   chan struct{}
	startNotify chan struct{}
}

func newStubServer(startErr, stopErr error, block bool) *stubServer {
	s := &stubServer{
		startErr:       startErr,
		stopErr:        stopErr,
		blockUntilStop: block,
		startNotify:    make(chan struct{}),
	}
	if block {
		s.startGate = make(chan struct{})
	}
	return s
}

func (s *stubServer) Start() error {
	s.startCalled = true
	close(s.startNotify)
	if s.blockUntilStop {
		<-s.startGate
	}
	return s.startErr
}

func (s *stubServer) Stop() error {
	s.stopCalled = true
	if s.blockUntilStop {
		close(s.startGate)
	}
	return s.stopErr
}

func restoreGlobals(t *testing.T) {
	t.Helper()
	originalLoadConfig := loadConfigFunc
	originalSetLogLevel := setLogLevelFunc
	originalMock := newMockDatabaseFunc
	originalConfigure := configureDatabase
	originalContent := openContentFunc
	originalNewServer := newServerFunc
	originalSubscribe := subscribeShutdownSig

	t.Cleanup(func() {
		loadConfigFunc = originalLoadConfig
		setLogLevelFunc = originalSetLogLevel
		newMockDatabaseFunc = originalMock
		configureDatabase = originalConfigure
		openContentFunc = originalContent
		newServerFunc = originalNewServer
		subscribeShutdownSig = originalSubscribe
	})
}

func staticContent(context.Context, string) (*content.Store, error) {
	return content.NewStatic(&content.Portfolio{}), nil
}

func TestRunUsesMockDatabaseWhenConfigured(t *testing.T) {
	restoreGlobals(t)

	cfg := config.Config{
		Server: config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{
			UseMock: true,
		},
		Logging: config.LoggingConfig{Level: "debug"},
		Session: config.SessionConfig{
			Lifetime:     time.Hour,
			CookieName:   "test",
			CookieSecure: true,
		},
		Appearance: config.AppearanceConfig{Default: "dark"},
	}

	var mockCalled bool
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(level string) error { return nil }
	newMockDatabaseFunc = func(ctx context.Context) (*gorm.DB, error) {
		mockCalled = true
		return &gorm.DB{}, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		t.Fatal("configureDatabase should not be called when mock is enabled")
		return nil, nil
	}
	openContentFunc = staticContent

	var received server.Config
	serverStub := newStubServer(http.ErrServerClosed, nil, true)
	newServerFunc = func(cfg server.Config) (serverLifecycle, error) {
		received = cfg
		return serverStub, nil
	}

	shutdownCh := make(chan os.Signal, 1)
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return shutdownCh, func() {}
	}

	go func() {
		<-serverStub.startNotify
		shutdownCh <- syscall.SIGTERM
	}()

	code := run(context.Background())
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !mockCalled {
		t.Fatal("expected mock database to be used")
	}
	if !serverStub.startCalled || !serverStub.stopCalled {
		t.Fatal("expected server start and stop to be invoked")
	}
	if received.Session.CookieName != "test" || received.Appearance != "dark" {
		t.Fatalf("expected configuration to reach the server, got %+v", received)
	}
	if received.Database == nil || received.Content == nil || received.Static == nil {
		t.Fatal("expected database, content and assets to be wired")
	}
}

func TestRunReturnsErrorWhenServerStartFails(t *testing.T) {
	restoreGlobals(t)

	cfg := config.Config{
		Server: config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{
			UseMock: true,
		},
		Logging: config.LoggingConfig{Level: "info"},
		Session: config.SessionConfig{Lifetime: time.Hour},
	}

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil }
	openContentFunc = staticContent

	serverStub := newStubServer(errors.New("listener failure"), nil, false)
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		return serverStub, nil
	}

	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return make(chan os.Signal), func() {}
	}

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if serverStub.stopCalled {
		t.Fatal("server stop should not be called on start error")
	}
}

func TestRunHandlesDatabaseConfigurationError(t *testing.T) {
	restoreGlobals(t)

	cfg := config.Config{
		Server:   config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{URL: "postgres://example", UseMock: false},
		Logging:  config.LoggingConfig{Level: "info"},
	}

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) {
		t.Fatal("mock database should not be used when URL is configured")
		return nil, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		return nil, errors.New("db connection refused")
	}

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 on database configuration failure, got %d", code)
	}
}

func TestRunFailsWhenContentCannotLoad(t *testing.T) {
	restoreGlobals(t)

	cfg := config.Config{
		Server:  config.ServerConfig{Addr: ":8080"},
		Logging: config.LoggingConfig{Level: "info"},
		Content: config.ContentConfig{Path: "missing.json"},
	}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	openContentFunc = func(context.Context, string) (*content.Store, error) {
		return nil, errors.New("no such file")
	}
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		t.Fatal("server should not be built without content")
		return nil, nil
	}

	if code := run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1 when content fails, got %d", code)
	}
}

func TestRunReturnsErrorWhenLogLevelInvalid(t *testing.T) {
	restoreGlobals(t)

	cfg := config.Config{Logging: config.LoggingConfig{Level: "invalid"}}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return errors.New("invalid level") }

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 for invalid log level, got %d", code)
	}
}

func TestBuildSubmitterChainsConfiguredTargets(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Timing: config.TimingConfig{ContactDelay: time.Second}}
	stub, ok := buildSubmitter(cfg, nil).(contact.Delayed)
	if !ok || stub.Next != nil || stub.Delay != time.Second {
		t.Fatalf("expected delay-only stub, got %#v", stub)
	}

	cfg.SMTP = config.SMTPConfig{Host: "smtp.example.com", Port: 587, To: "me@example.com"}
	chained, ok := buildSubmitter(cfg, &gorm.DB{}).(contact.Delayed)
	if !ok {
		t.Fatal("expected delayed submitter")
	}
	targets, ok := chained.Next.(contact.Fanout)
	if !ok || len(targets) != 2 {
		t.Fatalf("expected recorder and mailer, got %#v", chained.Next)
	}
	if _, ok := targets[0].(contact.Recorder); !ok {
		t.Fatalf("expected recorder first, got %T", targets[0])
	}
	if _, ok := targets[1].(contact.Mailer); !ok {
		t.Fatalf("expected mailer second, got %T", targets[1])
	}
}
