package command

import (
	"context"
	"time"

	"uptown/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type ReconcileHandler struct {
	logger          *zap.Logger
	propertyService *service.PropertyService
}

func NewReconcileHandler(
	logger *zap.Logger,
	propertyService *service.PropertyService,
) *ReconcileHandler {
	return &ReconcileHandler{
		logger:          logger,
		propertyService: propertyService,
	}
}

// StartingPrices 手動補齊 startingPrice（同 cron job，供維運直接執行）
func (handler *ReconcileHandler) StartingPrices(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	updated, err := handler.propertyService.ReconcileStartingPrices(ctx)
	if err != nil {
		handler.logger.Error("reconcile starting prices failed", zap.Error(err))
		return
	}
	cmd.Printf("reconciled starting prices, updated %d properties\n", updated)
}
