package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	addr       string
)

var rootCmd = &cobra.Command{
	Use:   "crystalstream",
	Short: "Inspect and manipulate server-side streams",
	Long: `crystalstream is a command line client for Redis-compatible streams:
adding entries, reading ranges, and inspecting consumer groups and
pending ledgers.`,
	SilenceUsage: true,
}

func init() {
	// A .env next to the binary may set defaults; missing is fine.
	godotenv.Load()

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a yaml config file")
	flags.StringVarP(&addr, "addr", "a", "", "Server address, overrides the config file")

	rootCmd.AddCommand(infoCmd, groupsCmd, consumersCmd, lenCmd, rangeCmd, pendingCmd, addCmd, readCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
