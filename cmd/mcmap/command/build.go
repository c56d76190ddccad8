package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/codec"
	"github.com/Techcable/minecraft-mappings/pkg/core/target"
	"github.com/Techcable/minecraft-mappings/pkg/core/version"
	"github.com/Techcable/minecraft-mappings/pkg/engine"
	"github.com/Techcable/minecraft-mappings/pkg/source/cache"
)

func runBuild(_ *cobra.Command, args []string) error {
	gv, err := version.ParseGameVersion(args[0])
	if err != nil {
		return err
	}
	targets := make([]target.TargetMapping, 0, len(args)-1)
	for _, raw := range args[1:] {
		tm, err := target.Parse(raw)
		if err != nil {
			return err
		}
		targets = append(targets, tm)
	}

	var mcpVersion *version.McpVersion
	if mcpSpec != "" {
		spec, err := version.ParseMcpVersionSpec(mcpSpec)
		if err != nil {
			return err
		}
		mcpVersion = &spec.Version
	}
	for _, tm := range targets {
		if tm.NeedsMcpVersion() && mcpVersion == nil {
			return fmt.Errorf("target %s needs --mcp", tm)
		}
	}

	c, err := cache.New(cacheRoot)
	if err != nil {
		return err
	}
	eng := engine.New(c, gv, mcpVersion)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	for _, tm := range targets {
		m, err := eng.ComputeTarget(tm)
		if err != nil {
			return err
		}
		outPath := filepath.Join(outputDir, tm.String()+".srg")
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		err = codec.EncodeLegacySRG(f, m)
		closeErr := f.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			return closeErr
		}
		fmt.Printf("wrote %s\n", outPath)
	}
	return nil
}
