// Package cache provides MinecraftMappingsCache, the single facade
// aggregating the SRG, MCP, and Spigot source caches under one
// directory root.
package cache

import (
	"net/http"
	"path/filepath"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/fetch"
	"github.com/Techcable/minecraft-mappings/pkg/adapter/gitrepo"
	"github.com/Techcable/minecraft-mappings/pkg/source/mcpsrc"
	"github.com/Techcable/minecraft-mappings/pkg/source/spigotsrc"
	"github.com/Techcable/minecraft-mappings/pkg/source/srgsrc"
)

const buildDataRemote = "https://hub.spigotmc.org/stash/scm/spigot/builddata.git"

// MinecraftMappingsCache aggregates the three L1 source caches under a
// single root directory: root/mcp holds the SRG+MCP layout, root/spigot
// holds the Spigot layout.
type MinecraftMappingsCache struct {
	SRG    *srgsrc.Source
	MCP    *mcpsrc.Source
	Spigot *spigotsrc.Source
}

// New builds a MinecraftMappingsCache rooted at root, using a real
// HTTP client and a go-git-backed BuildData clone.
func New(root string) (*MinecraftMappingsCache, error) {
	client := &fetch.Client{HTTP: http.DefaultClient}
	srg := srgsrc.New(filepath.Join(root, "mcp"), client, fetch.ExtractZipEntry)
	mcp := mcpsrc.New(filepath.Join(root, "mcp"), client, fetch.ExtractZipEntry, srg)
	repo, err := gitrepo.Open(filepath.Join(root, "spigot", "BuildData"), buildDataRemote)
	if err != nil {
		return nil, err
	}
	spigot := spigotsrc.New(filepath.Join(root, "spigot"), client, repo)
	return &MinecraftMappingsCache{SRG: srg, MCP: mcp, Spigot: spigot}, nil
}
