package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "texfix",
	Short: "Find and re-link missing scene textures",
	Long: `Texfix scans 3D scene and material files for texture references whose
paths no longer resolve on disk and repairs them by searching a
directory tree for files with matching names.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".texfix.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
