package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mblewuada/texfix/internal/report"
	"github.com/mblewuada/texfix/internal/scan"
	"github.com/mblewuada/texfix/internal/scene"
)

var scanCmd = &cobra.Command{
	Use:   "scan <scene file>...",
	Short: "List texture references whose paths no longer resolve",
	Long: `Scans each scene file's texture references and reports the ones whose
file paths do not exist on disk. Missing textures are a reported
condition, not an error; the command fails only when a scene file
cannot be read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("format", "", "force a scene format instead of detecting by extension (one of: "+strings.Join(scene.Formats(), ", ")+")")
	scanCmd.Flags().StringP("output", "o", "text", "output format: text or yaml")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	var reports []scan.Report
	for _, path := range args {
		doc, err := openDocument(path, format)
		if err != nil {
			return err
		}
		reports = append(reports, scan.Run(doc, scanOptions(cfg)))
	}

	switch output {
	case "yaml":
		return report.WriteYAML(os.Stdout, reports)
	case "text":
		for _, rep := range reports {
			report.RenderScan(os.Stdout, rep)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
