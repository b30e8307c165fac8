package command

import (
	commandHandler "uptown/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(
	NewCommand,
	commandHandler.NewReconcileHandler,
	commandHandler.NewBackfillHandler,
)

type Command struct {
	reconcileCommandHandler *commandHandler.ReconcileHandler
	backfillCommandHandler  *commandHandler.BackfillHandler
}

// NewCommand .
func NewCommand(
	reconcileCommandHandler *commandHandler.ReconcileHandler,
	backfillCommandHandler *commandHandler.BackfillHandler,
) *Command {
	return &Command{
		reconcileCommandHandler: reconcileCommandHandler,
		backfillCommandHandler:  backfillCommandHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "reconcile-prices",
			Short: "recompute missing startingPrice from coliving plans",
			Run: func(cmd *cobra.Command, args []string) {
				command, cleanup, err := newCmd()
				if err != nil {
					panic(err)
				}
				defer cleanup()

				command.reconcileCommandHandler.StartingPrices(cmd, args)
			},
		},
		&cobra.Command{
			Use:   "backfill-city-states [city=state ...]",
			Short: "stamp city documents with their state reference",
			Run: func(cmd *cobra.Command, args []string) {
				command, cleanup, err := newCmd()
				if err != nil {
					panic(err)
				}
				defer cleanup()

				command.backfillCommandHandler.CityStates(cmd, args)
			},
		},
	)
}
