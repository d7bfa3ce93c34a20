package testutil

import (
	"context"
	"time"

	"github.com/logiport/portal/internal/config"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/sentry"
	"github.com/logiport/portal/internal/types"
	"github.com/logiport/portal/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the in-memory repositories for testing
type Stores struct {
	UserRepo        *InMemoryUserStore
	ShipmentRepo    *InMemoryShipmentStore
	DocumentRepo    *InMemoryDocumentStore
	TradeRepo       *InMemoryTradeStore
	ActivityLogRepo *InMemoryActivityLogStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     *MockPostgresClient
	s3     *InMemoryS3
	mailer *RecordingEmailSender
	sentry *sentry.Service
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	// Initialize logger with test config
	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}

	// Sentry stays disabled so operational reports are dropped
	s.sentry = sentry.NewSentryService(cfg, s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		UserRepo:        NewInMemoryUserStore(),
		ShipmentRepo:    NewInMemoryShipmentStore(),
		DocumentRepo:    NewInMemoryDocumentStore(),
		TradeRepo:       NewInMemoryTradeStore(),
		ActivityLogRepo: NewInMemoryActivityLogStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	s.db.Track(
		s.stores.UserRepo,
		s.stores.ShipmentRepo,
		s.stores.DocumentRepo,
		s.stores.TradeRepo,
		s.stores.ActivityLogRepo,
	)
	s.s3 = NewInMemoryS3()
	s.mailer = NewRecordingEmailSender()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.UserRepo.Clear()
	s.stores.ShipmentRepo.Clear()
	s.stores.DocumentRepo.Clear()
	s.stores.TradeRepo.Clear()
	s.stores.ActivityLogRepo.Clear()
	s.mailer.Reset()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetS3 returns the test object store
func (s *BaseServiceTestSuite) GetS3() *InMemoryS3 {
	return s.s3
}

// GetMailer returns the recording mail sender
func (s *BaseServiceTestSuite) GetMailer() *RecordingEmailSender {
	return s.mailer
}

// GetSentry returns a disabled sentry service
func (s *BaseServiceTestSuite) GetSentry() *sentry.Service {
	return s.sentry
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
