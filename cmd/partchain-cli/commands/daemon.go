package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/statemachine"
	"github.com/spf13/cobra"
)

func NewDaemonCommand() *cobra.Command {
	daemon := cobra.Command{
		Use:   "daemon",
		Short: "daemon",
	}

	daemon.AddCommand(newTriggerCommand())
	return &daemon
}

func newTriggerCommand() *cobra.Command {
	trigger := &cobra.Command{
		Use:   "trigger",
		Short: "Runs the reconciliation jobs of the given statuses once for every organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, _ := cmd.Flags().GetStringSlice("status")
			statuses := make([]statemachine.RelationshipStatus, 0, len(names))
			for _, name := range names {
				status, err := statemachine.ParseRelationshipStatus(name)
				if err != nil {
					return err
				}
				statuses = append(statuses, status)
			}

			var runner shared.DaemonRunner
			cleanup, err := bootstrap(cmd, &runner)
			if err != nil {
				return err
			}
			defer cleanup()

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Status", "Duration", "Result"})
			for _, status := range statuses {
				start := time.Now()
				result := "ok"
				if err := runner.Trigger(cmd.Context(), status); err != nil {
					slog.Error("reconciliation job failed", "status", status, "err", err)
					result = err.Error()
				}
				tw.AppendRow(table.Row{status.String(), time.Since(start).Round(time.Millisecond), result})
			}
			tw.Render()
			return nil
		},
	}

	trigger.Flags().StringSliceP("status", "s", []string{
		statemachine.StatusUnknown.String(),
		statemachine.StatusNotInFabric.String(),
		statemachine.StatusParentShared.String(),
		statemachine.StatusRequestAssetNotAllowed.String(),
	}, "Statuses whose jobs are triggered")

	return trigger
}
