package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mxzhao/niaoyu/internal/config"
	"github.com/mxzhao/niaoyu/internal/logging"
	"github.com/mxzhao/niaoyu/internal/tui"
)

var version = "dev"

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "niaoyu",
	Short: "你到底在说啥 - decode workplace doublespeak",
	Long: `niaoyu takes a message from your boss, a colleague, or a client,
sends it to a remote decoding workflow, and shows you what it actually
means, what to do next, and a ready-to-paste reply.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg *config.Config
		var err error
		if cfgPath != "" {
			cfg, err = config.LoadFile(cfgPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logPath, err := config.LogPath()
		if err != nil {
			logPath = "niaoyu.log"
		}
		logger := logging.New(logPath, verbose)
		defer logger.Sync()

		app := tui.NewApp(cfg, logger)
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("niaoyu " + version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ~/.config/niaoyu/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
