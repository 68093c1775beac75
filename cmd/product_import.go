package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inventory.GO/config"
	importer "inventory.GO/service/importer"
)

var importFile string

var productImportCmd = &cobra.Command{
	Use:   "products:import",
	Short: "Import products from a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open %s: %w", importFile, err)
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}

		res, err := importer.ImportProducts(db, f)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d imported, %d failed\n", res.Message, res.SuccessCount, res.ErrorCount)
		for _, re := range res.Errors {
			fmt.Printf("  row %v: %s\n", re.Row["name"], re.Error)
		}
		return nil
	},
}

func init() {
	productImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "path to the CSV file")
	productImportCmd.MarkFlagRequired("file")
	Register(productImportCmd)
}
