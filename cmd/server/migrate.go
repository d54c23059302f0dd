package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/infrastructure/persistence"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the design store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := stateFrom(cmd.Context())
			if st.cfg.Storage.Driver == "memory" {
				return fmt.Errorf("migrate requires --storage sqlite or postgres")
			}

			db, dialect, err := openStorage(st.cfg.Storage)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := persistence.Migrate(db, dialect); err != nil {
				return err
			}
			version, err := persistence.MigrationVersion(db, dialect)
			if err != nil {
				return err
			}
			st.logger.Info("migrations applied", zap.String("dialect", string(dialect)), zap.Int64("version", version))
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", dialect, version)
			return nil
		},
	}

	cmd.Flags().String("storage", "", "Design storage driver (sqlite|postgres)")
	cmd.Flags().String("dsn", "", "Database DSN")

	return cmd
}
