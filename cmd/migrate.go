package cmd

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	"inventory.GO/config"
	"inventory.GO/migrations"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply database schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := iofs.New(migrations.FS, ".")
		if err != nil {
			return fmt.Errorf("load migrations: %w", err)
		}

		m, err := migrate.NewWithSourceInstance("iofs", src, "mysql://"+config.MySQLDSN())
		if err != nil {
			return fmt.Errorf("init migrate: %w", err)
		}
		defer m.Close()

		if migrateDown {
			err = m.Down()
		} else {
			err = m.Up()
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("Schema already up to date")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println("Migrations applied")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "roll back all migrations")
	Register(migrateCmd)
}
