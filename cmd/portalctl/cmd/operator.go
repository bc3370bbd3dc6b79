package cmd

import (
	"fmt"

	"github.com/rihla-travel/portal/internal/db"
	"github.com/rihla-travel/portal/internal/model"
	"github.com/rihla-travel/portal/internal/repository"
	"github.com/rihla-travel/portal/internal/service"
	"github.com/spf13/cobra"
)

// OperatorCmd manages who may open the owner dashboard. The role lives on
// the user row, so granting or revoking takes effect on the next request.
func OperatorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Grant or revoke dashboard access",
	}

	cmd.AddCommand(setRoleCmd("grant <email>", "Make an existing account an operator", model.RoleOperator))
	cmd.AddCommand(setRoleCmd("revoke <email>", "Turn an operator back into a customer", model.RoleCustomer))
	return cmd
}

func setRoleCmd(use, short, role string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, database, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			users := service.NewUserService(repository.NewUserRepository(database))
			if err := users.SetRole(args[0], role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], role)
			return nil
		},
	}
}
