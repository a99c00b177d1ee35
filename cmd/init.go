package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mblewuada/texfix/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize texfix configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure texfix for your project and generates a .texfix.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
