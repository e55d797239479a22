package commands

import (
	"log/slog"
	"net/http"

	"github.com/l3montree-dev/partchain/shared"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewEnrollCommand() *cobra.Command {
	enroll := &cobra.Command{
		Use:   "enroll",
		Short: "Enrolls the organizations in the access control of the ledger",
		Long:  `Enrolls the given organizations or every organization of the identities file. Organizations which are already enrolled are skipped.`,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgs, _ := cmd.Flags().GetStringSlice("org")

			var accessControl shared.AccessControlService
			cleanup, err := bootstrap(cmd, &accessControl)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(orgs) == 0 {
				return accessControl.EnrollAllOrgs(cmd.Context())
			}

			for _, org := range orgs {
				res, err := accessControl.EnrollOrg(cmd.Context(), org)
				if err != nil {
					return err
				}
				switch res.Status {
				case http.StatusOK:
					slog.Info("enrolled organization", "org", org)
				case http.StatusBadRequest:
					slog.Info("organization already enrolled", "org", org)
				default:
					return errors.Errorf("could not enroll %s: status %d: %v", org, res.Status, res.Error)
				}
			}
			return nil
		},
	}

	enroll.Flags().StringSlice("org", nil, "Organizations to enroll")
	return enroll
}
