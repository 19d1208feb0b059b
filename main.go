package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "puzzlepack",
	Short: "Crosswords, word searches and scrambles from a vocabulary list",
	Long: `puzzlepack builds printable vocabulary activities: a crossword, a word
search and a scrambled-words exercise, from a word list or from an article
analyzed by Gemini.

Without a subcommand it starts the web server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("PUZZLEPACK_CONFIG"), "YAML configuration file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
