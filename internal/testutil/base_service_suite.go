package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/techsolutions/billing-service/internal/cache"
	"github.com/techsolutions/billing-service/internal/config"
	"github.com/techsolutions/billing-service/internal/domain/invoice"
	"github.com/techsolutions/billing-service/internal/logger"
	"github.com/techsolutions/billing-service/internal/types"
	"github.com/techsolutions/billing-service/internal/validator"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	InvoiceRepo invoice.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	cache  cache.Cache
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	cfg := &config.Configuration{
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
		Cache: config.CacheConfig{
			Enabled: true,
		},
	}
	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.stores = Stores{
		InvoiceRepo: NewInMemoryInvoiceStore(),
	}
	s.cache = cache.NewInMemoryCache(s.config)
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

// ClearStores resets all in-memory stores
func (s *BaseServiceTestSuite) ClearStores() {
	if store, ok := s.stores.InvoiceRepo.(*InMemoryInvoiceStore); ok {
		store.Clear()
	}
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
