// cmd/root.go
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/osschedsim/osschedsim/sim"
)

var (
	inputPath    string
	outputDir    string
	logLevel     string
	defaultsPath string
)

var rootCmd = &cobra.Command{
	Use:   "osschedsim",
	Short: "Discrete-event simulator for a quantum-driven, memory/device-constrained OS scheduler",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation from a command-record input file",
	Run: func(cmd *cobra.Command, args []string) {
		if defaultsPath != "" {
			defaults := LoadDefaultsConfig(defaultsPath)
			if outputDir == "" {
				outputDir = defaults.OutputDir
			}
			if !cmd.Flags().Changed("log") && defaults.LogLevel != "" {
				logLevel = defaults.LogLevel
			}
		}

		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		in, err := os.Open(inputPath)
		if err != nil {
			logrus.Fatalf("could not find specified input file: %v", err)
		}
		defer in.Close()

		pathStem := stemFor(inputPath, outputDir)
		logrus.Infof("starting simulation from %s, snapshots written to %s_D<time>.json", inputPath, pathStem)

		driver := sim.NewDriver(pathStem)
		if err := driver.Run(in); err != nil {
			logrus.Fatalf("simulation error: %v", err)
		}
		logrus.Info("simulation complete")
	},
}

// stemFor mirrors main.cpp's filename.erase(find_last_of(".")) stem
// derivation, relocating the stem under outDir when one is given.
func stemFor(inputPath, outDir string) string {
	base := filepath.Base(inputPath)
	if idx := strings.LastIndex(base, "."); idx != -1 {
		base = base[:idx]
	}
	if outDir == "" {
		dir := filepath.Dir(inputPath)
		return filepath.Join(dir, base)
	}
	return filepath.Join(outDir, base)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&inputPath, "input", "", "Path to the command-record input file (required)")
	runCmd.Flags().StringVar(&outputDir, "out", "", "Directory to write structured snapshot files into (default: alongside the input file)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&defaultsPath, "defaults", "", "Path to a YAML file of fallback flag defaults")
	runCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(runCmd)
}
