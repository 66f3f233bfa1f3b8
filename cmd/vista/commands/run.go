package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/vista/internal/app"
	"go.trai.ch/vista/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [views...]",
		Short: "Run the configured views",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			awaitData, _ := cmd.Flags().GetBool("await-market-data")
			triggerOnData, _ := cmd.Flags().GetBool("trigger-on-data")
			triggerOnTime, _ := cmd.Flags().GetBool("trigger-on-time")
			maxSpeed, _ := cmd.Flags().GetBool("max-speed")
			compileOnly, _ := cmd.Flags().GetBool("compile-only")

			var flags domain.ExecutionFlags
			if awaitData {
				flags |= domain.FlagAwaitMarketData
			}
			if triggerOnData {
				flags |= domain.FlagTriggerCycleOnMarketDataChanged
			}
			if triggerOnTime {
				flags |= domain.FlagTriggerCycleOnTimeElapsed
			}
			if maxSpeed {
				flags |= domain.FlagRunAsFastAsPossible
			}
			if compileOnly {
				flags |= domain.FlagCompileOnly
			}

			return c.app.Run(cmd.Context(), app.RunOptions{
				Views: args,
				Flags: flags,
			})
		},
	}
	cmd.Flags().Bool("await-market-data", false, "Delay the first cycle until all market data subscriptions resolve")
	cmd.Flags().Bool("trigger-on-data", true, "Run a cycle when subscribed market data ticks")
	cmd.Flags().Bool("trigger-on-time", true, "Run a cycle when the maximum recomputation period elapses")
	cmd.Flags().Bool("max-speed", false, "Run cycles back to back with no trigger wait")
	cmd.Flags().Bool("compile-only", false, "Compile the views without executing cycles")
	return cmd
}
