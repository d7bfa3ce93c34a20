package service

import (
	"github.com/logiport/portal/internal/config"
	"github.com/logiport/portal/internal/testutil"
)

// newTestServiceParams wires the in-memory stores of suite into ServiceParams.
// A nil cfg uses a copy of the suite configuration.
func newTestServiceParams(suite *testutil.BaseServiceTestSuite, cfg *config.Configuration) ServiceParams {
	if cfg == nil {
		c := *suite.GetConfig()
		cfg = &c
	}
	stores := suite.GetStores()
	return ServiceParams{
		Logger:          suite.GetLogger(),
		Config:          cfg,
		DB:              suite.GetDB(),
		S3:              suite.GetS3(),
		Sentry:          suite.GetSentry(),
		Email:           suite.GetMailer(),
		UserRepo:        stores.UserRepo,
		DocumentRepo:    stores.DocumentRepo,
		ShipmentRepo:    stores.ShipmentRepo,
		TradeRepo:       stores.TradeRepo,
		ActivityLogRepo: stores.ActivityLogRepo,
	}
}
