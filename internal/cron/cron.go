package cron

import (
	"context"

	"uptown/config"
	"uptown/internal/service"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron)

// 預設每天凌晨三點補齊 startingPrice
const defaultReconcileSchedule = "0 0 3 * * *"

type Cron struct {
	logger          *zap.Logger
	conf            *config.Configuration
	server          *cron.Cron
	propertyService *service.PropertyService
}

// NewCron .
func NewCron(
	logger *zap.Logger,
	conf *config.Configuration,
	propertyService *service.PropertyService,
) *Cron {
	server := cron.New(
		cron.WithSeconds(),
	)

	return &Cron{
		logger:          logger,
		conf:            conf,
		server:          server,
		propertyService: propertyService,
	}
}

func (c *Cron) Run() error {
	schedule := c.conf.Cron.ReconcileSchedule
	if schedule == "" {
		schedule = defaultReconcileSchedule
	}
	if _, err := c.server.AddFunc(schedule, c.reconcileStartingPrices); err != nil {
		return err
	}

	c.server.Start()
	return nil
}

func (c *Cron) Stop(ctx context.Context) error {
	c.server.Stop()
	return nil
}

func (c *Cron) reconcileStartingPrices() {
	updated, err := c.propertyService.ReconcileStartingPrices(context.Background())
	if err != nil {
		c.logger.Error("reconcile starting prices failed", zap.Error(err))
		return
	}
	if updated > 0 {
		c.logger.Info("reconcile starting prices done", zap.Int("updated", updated))
	}
}
