package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"uptown/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// 預設對照表；可由參數覆寫（city=state）
var defaultCityStateMap = map[string]string{
	"gurgaon": "haryana",
	"mumbai":  "maharashtra",
	"delhi":   "delhi",
}

type BackfillHandler struct {
	logger      *zap.Logger
	cityService *service.CityService
}

func NewBackfillHandler(
	logger *zap.Logger,
	cityService *service.CityService,
) *BackfillHandler {
	return &BackfillHandler{
		logger:      logger,
		cityService: cityService,
	}
}

// CityStates 補齊城市文件的州別參照；參數形如 gurgaon=haryana，無參數用預設表
func (handler *BackfillHandler) CityStates(cmd *cobra.Command, args []string) {
	mapping, parseError := parseCityStatePairs(args)
	if parseError != nil {
		cmd.PrintErrln(parseError)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	modified, err := handler.cityService.BackfillStates(ctx, mapping)
	if err != nil {
		handler.logger.Error("backfill city states failed", zap.Error(err))
		return
	}
	cmd.Printf("backfilled city states, modified %d cities\n", modified)
}

// parseCityStatePairs 解析 city=state 參數；空參數回傳預設對照表
func parseCityStatePairs(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return defaultCityStateMap, nil
	}

	mapping := make(map[string]string, len(args))
	for _, arg := range args {
		citySlug, stateSlug, found := strings.Cut(arg, "=")
		if !found || citySlug == "" || stateSlug == "" {
			return nil, fmt.Errorf("invalid pair %q, expected city=state", arg)
		}
		mapping[citySlug] = stateSlug
	}
	return mapping, nil
}
