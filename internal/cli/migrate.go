package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voidhawk/rconpanel/internal/config"
	"github.com/voidhawk/rconpanel/internal/factory"
	"github.com/voidhawk/rconpanel/internal/storage/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Long: `Applies pending postgres migrations. The serve command runs
migrations on startup as well; this exists for deploys that migrate as a
separate step.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if cfg.Storage.Type != factory.StorageTypePostgres {
				return fmt.Errorf("storage type is %q, migrations only apply to postgres", cfg.Storage.Type)
			}

			if err := postgres.RunMigrations(cmd.Context(), cfg.Storage.Postgres.DSN()); err != nil {
				return err
			}

			fmt.Println("migrations applied")
			return nil
		},
	}
}
