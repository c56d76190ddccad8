// Package srgsrc resolves the SRG mapping table for a given
// GameVersion, caching a normalized legacy-SRG copy on disk and a
// frozen Mappings value in memory.
package srgsrc

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/codec"
	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
	"github.com/Techcable/minecraft-mappings/pkg/core/log"
	"github.com/Techcable/minecraft-mappings/pkg/core/mappings"
	"github.com/Techcable/minecraft-mappings/pkg/core/version"
)

// legacySRGZipURL is used for game versions below 1.13.
const legacySRGZipURL = "http://files.minecraftforge.net/maven/de/oceanlabs/mcp/mcp/%s/mcp-%s-srg.zip"

// mcpConfigZipURL is used for game versions at or above 1.13.
const mcpConfigZipURL = "http://files.minecraftforge.net/maven/de/oceanlabs/mcp/mcp_config/%s/mcp_config-%s.zip"

var minMcpConfigVersion = version.GameVersion{Major: 1, Minor: 13, Patch: 0}

// Fetcher abstracts the HTTP+zip collaborator so tests can substitute
// a fake without touching the network.
type Fetcher interface {
	Get(url string) ([]byte, error)
}

// ZipExtractor abstracts zip-entry extraction, mirroring
// fetch.ExtractZipEntry, so tests can substitute a fake archive
// reader.
type ZipExtractor func(archive []byte, entryName string) ([]byte, error)

// Source resolves and memoizes SRG mappings under root, one entry per
// GameVersion.
type Source struct {
	root    string
	fetcher Fetcher
	extract ZipExtractor

	mu   sync.Mutex
	memo map[version.GameVersion]mappings.Mappings
}

// New returns a Source rooted at root (created if absent), using
// fetcher and extract for network/zip access.
func New(root string, fetcher Fetcher, extract ZipExtractor) *Source {
	return &Source{
		root:    root,
		fetcher: fetcher,
		extract: extract,
		memo:    make(map[version.GameVersion]mappings.Mappings),
	}
}

func (s *Source) snapshot() map[version.GameVersion]mappings.Mappings {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[version.GameVersion]mappings.Mappings, len(s.memo))
	for k, v := range s.memo {
		snap[k] = v
	}
	return snap
}

// Get resolves the SRG Mappings for v, from memory, then disk, then
// network, in that order.
func (s *Source) Get(v version.GameVersion) (mappings.Mappings, error) {
	if m, ok := s.snapshot()[v]; ok {
		return m, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.memo[v]; ok {
		return m, nil
	}
	m, err := s.load(v)
	if err != nil {
		return mappings.Mappings{}, err
	}
	s.memo[v] = m
	return m, nil
}

func (s *Source) targetPath(v version.GameVersion) string {
	return filepath.Join(s.root, "versions", v.String(), "joined-mcp.srg")
}

func (s *Source) load(v version.GameVersion) (mappings.Mappings, error) {
	path := s.targetPath(v)
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return mappings.Mappings{}, cerr.NewIOError("stat "+path, err)
		}
		if err := s.fetchAndNormalize(v, path); err != nil {
			return mappings.Mappings{}, err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return mappings.Mappings{}, cerr.NewIOError("open "+path, err)
	}
	defer f.Close()
	m, err := codec.DecodeLegacySRG(f)
	if err != nil {
		return mappings.Mappings{}, err
	}
	log.Debug(context.Background(), "loaded srg mappings",
		slog.String("gameVersion", v.String()), slog.Int("classCount", m.ClassCount()))
	return m, nil
}

func (s *Source) fetchAndNormalize(v version.GameVersion, targetPath string) error {
	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return cerr.NewIOError("mkdir "+filepath.Dir(targetPath), err)
	}
	vs := v.String()
	if v.AtLeast(minMcpConfigVersion) {
		return s.fetchFromMcpConfig(vs, targetPath)
	}
	return s.fetchLegacy(vs, targetPath)
}

func (s *Source) fetchLegacy(vs, targetPath string) error {
	archive, err := s.fetcher.Get(urlf(legacySRGZipURL, vs))
	if err != nil {
		return err
	}
	data, err := s.extract(archive, "joined.srg")
	if err != nil {
		return err
	}
	return writeFile(targetPath, data)
}

func (s *Source) fetchFromMcpConfig(vs, targetPath string) error {
	archive, err := s.fetcher.Get(urlf(mcpConfigZipURL, vs))
	if err != nil {
		return err
	}
	data, err := s.extract(archive, "config/joined.tsrg")
	if err != nil {
		return err
	}
	m, err := codec.DecodeTabSRG(newReader(data))
	if err != nil {
		return err
	}
	tmp := targetPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return cerr.NewIOError("create "+tmp, err)
	}
	if err := codec.EncodeLegacySRG(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return cerr.NewIOError("close "+tmp, err)
	}
	if err := os.Rename(tmp, targetPath); err != nil {
		return cerr.NewIOError("rename "+tmp, err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return cerr.NewIOError("write "+tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return cerr.NewIOError("rename "+tmp, err)
	}
	return nil
}
