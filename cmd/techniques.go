package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-group/intake-cli/internal/technique"
)

var techniquesJSON bool

var techniquesCmd = &cobra.Command{
	Use:   "techniques",
	Short: "List the available extraction techniques",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := technique.Catalog()
		if techniquesJSON {
			return printResponse(catalog, "json")
		}
		for _, info := range catalog {
			fmt.Printf("%-32s %s\n", info.Name, info.Description)
		}
		return nil
	},
}

func init() {
	techniquesCmd.Flags().BoolVar(&techniquesJSON, "json", false, "print the catalog as JSON")
	rootCmd.AddCommand(techniquesCmd)
}
