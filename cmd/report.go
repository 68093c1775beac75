package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"inventory.GO/config"
	report "inventory.GO/service/report"
)

var reportCmd = &cobra.Command{
	Use:   "report:generate",
	Short: "Generate the inventory PDF report once",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}

		rep, err := report.Build(db)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}

		config.LoadAppConfig()
		path, err := report.RenderPDF(rep, config.ReportsDir(), uuid.NewString())
		if err != nil {
			return fmt.Errorf("render pdf: %w", err)
		}
		fmt.Printf("Report written to %s/%s\n", config.AppConfig.MediaRoot, path)
		return nil
	},
}

func init() {
	Register(reportCmd)
}
