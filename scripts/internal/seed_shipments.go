package internal

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/logiport/portal/internal/domain/shipment"
	"github.com/logiport/portal/internal/repository"
	"github.com/logiport/portal/internal/types"
	"github.com/samber/lo"
)

const defaultSeedCount = 20

var seedRoutes = [][2]string{
	{"Mombasa", "Rotterdam"},
	{"Shanghai", "Mombasa"},
	{"Dar es Salaam", "Dubai"},
	{"Nairobi", "Kampala"},
	{"Antwerp", "Lagos"},
}

// SeedShipments creates SEED_COUNT shipments owned by USER_EMAIL with creation
// dates spread over the dashboard series window so the monthly charts have data
func SeedShipments() error {
	email := os.Getenv("USER_EMAIL")
	if email == "" {
		return fmt.Errorf("user email is required")
	}
	count := defaultSeedCount
	if v := os.Getenv("SEED_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid seed count %q", v)
		}
		count = n
	}

	env, err := newScriptEnv()
	if err != nil {
		return err
	}
	defer env.db.Close()

	ctx := context.Background()
	owner, err := repository.NewUserRepository(env.db, env.log).GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	shipmentRepo := repository.NewShipmentRepository(env.db, env.log)
	months := types.MonthWindow(time.Now(), env.cfg.Dashboard.SeriesMonths)
	if len(months) == 0 {
		months = types.MonthWindow(time.Now(), 1)
	}

	return env.db.WithTx(ctx, func(ctx context.Context) error {
		for i := 0; i < count; i++ {
			route := seedRoutes[i%len(seedRoutes)]
			createdAt := months[i%len(months)].Add(time.Duration(i) * time.Hour)
			s := &shipment.Shipment{
				ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SHIPMENT),
				TrackingNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_TRACKING_NUMBER),
				ShipmentType:   lo.Sample([]types.ShipmentType{types.ShipmentTypeImport, types.ShipmentTypeExport}),
				Status:         lo.Sample(types.AllShipmentStatuses),
				Origin:         route[0],
				Destination:    route[1],
				CreatedBy:      owner.ID,
				CreatedAt:      createdAt,
				UpdatedAt:      createdAt,
			}
			if err := shipmentRepo.Create(ctx, s); err != nil {
				return fmt.Errorf("failed to create shipment %d: %w", i, err)
			}
		}
		env.log.Infow("seeded shipments", "count", count, "created_by", owner.ID)
		return nil
	})
}
