// Package command provides the root and sub-commands for the
// Minecraft mappings build tool. Commands are organized using the
// cobra library.
//
//	mcmap 1.8.8 srg2mcp mcp2obf --mcp snapshot_20180808
//	mcmap cache warm 1.8.8
//	mcmap cache clear 1.8.8
package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cacheRoot string
	mcpSpec   string
	outputDir string
)

var rootCmd = &cobra.Command{
	Use:   "mcmap <gameVersion> <target>...",
	Short: "Build Minecraft mapping files between naming systems",
	Long: `mcmap computes translations between the obfuscated, SRG,
MCP, and Spigot naming systems for a Minecraft game version and writes
one legacy-SRG file per requested target.

It caches upstream artifacts (normalized SRG tables, MCP dictionaries,
Spigot version info and the BuildData git repository) under a local
cache root so repeated invocations do not download them again. The
MCP version index is not cached and is fetched again by every run that
needs an MCP dictionary.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runBuild,
}

// Execute runs rootCmd, which parses CLI arguments and flags and
// dispatches to the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cacheRoot, "cache", defaultCacheRoot(), "cache root directory")
	rootCmd.Flags().StringVar(&mcpSpec, "mcp", "", "McpVersionSpec, required by targets involving mcp")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory to write <target>.srg files into")
	rootCmd.AddCommand(cacheCmd)
}

func defaultCacheRoot() string {
	if home, err := os.UserCacheDir(); err == nil {
		return home + "/mcmap"
	}
	return ".mcmap-cache"
}
