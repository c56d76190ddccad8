package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Techcable/minecraft-mappings/pkg/core/target"
	"github.com/Techcable/minecraft-mappings/pkg/core/version"
	"github.com/Techcable/minecraft-mappings/pkg/engine"
	"github.com/Techcable/minecraft-mappings/pkg/source/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local upstream-artifact cache",
}

var cacheWarmCmd = &cobra.Command{
	Use:   "warm <gameVersion>",
	Short: "Pre-fetch obf2srg and obf2spigot for a game version",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheWarm,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear <gameVersion>",
	Short: "Remove cached SRG and Spigot artifacts for a game version",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheWarmCmd, cacheClearCmd)
}

func runCacheWarm(_ *cobra.Command, args []string) error {
	gv, err := version.ParseGameVersion(args[0])
	if err != nil {
		return err
	}
	c, err := cache.New(cacheRoot)
	if err != nil {
		return err
	}
	eng := engine.New(c, gv, nil)
	if _, err := eng.ComputeTarget(target.New(target.Obf, target.Srg)); err != nil {
		return err
	}
	if _, err := eng.ComputeTarget(target.New(target.Obf, target.Spigot)); err != nil {
		return err
	}
	fmt.Printf("warmed cache for %s\n", gv)
	return nil
}

func runCacheClear(_ *cobra.Command, args []string) error {
	gv, err := version.ParseGameVersion(args[0])
	if err != nil {
		return err
	}
	srgDir := cacheRoot + "/mcp/versions/" + gv.String()
	spigotDir := cacheRoot + "/spigot/versions/" + gv.String()
	versionInfo := cacheRoot + "/spigot/version_info/" + gv.String() + ".json"
	for _, p := range []string{srgDir, spigotDir, versionInfo} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	fmt.Printf("cleared cached artifacts for %s\n", gv)
	return nil
}
