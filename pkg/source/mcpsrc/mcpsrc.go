// Package mcpsrc resolves MCP field/method dictionaries by revision,
// and owns the SRG memo its consumers always need to interpret those
// dictionaries.
package mcpsrc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/codec"
	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
	"github.com/Techcable/minecraft-mappings/pkg/core/lru"
	"github.com/Techcable/minecraft-mappings/pkg/core/version"
	"github.com/Techcable/minecraft-mappings/pkg/source/srgsrc"
)

const versionIndexURL = "http://export.mcpbot.bspk.rs/versions.json"
const mcpDataURLFormat = "http://export.mcpbot.bspk.rs/mcp_%s_nodoc/%d-%s/mcp_%s_nodoc-%d-%s.zip"

// entryCacheCapacity is the FIFO bound on the in-memory McpVersion
// memo; on-disk copies persist forever regardless.
const entryCacheCapacity = 32

// Fetcher abstracts HTTP GET, shared with srgsrc.Fetcher.
type Fetcher interface {
	Get(url string) ([]byte, error)
}

// ZipExtractor abstracts zip-entry extraction.
type ZipExtractor func(archive []byte, entryName string) ([]byte, error)

// Entry is a resolved MCP revision: its hosting GameVersion plus the
// field and method dictionaries.
type Entry struct {
	GameVersion version.GameVersion
	Fields      *codec.Dictionary
	Methods     *codec.Dictionary
}

// versionIndex is the JSON shape of http://export.mcpbot.bspk.rs/versions.json:
// gameVersion -> {snapshot: [rev...], stable: [rev...]}.
type versionIndex map[string]struct {
	Snapshot []uint32 `json:"snapshot"`
	Stable   []uint32 `json:"stable"`
}

// Source resolves MCP dictionaries by McpVersion, backed by the SRG
// source for the GameVersion each dictionary was hosted on.
type Source struct {
	root    string
	fetcher Fetcher
	extract ZipExtractor
	srg     *srgsrc.Source

	mu    sync.Mutex
	cache *lru.Cache[version.McpVersion, *Entry]
}

// New returns a Source rooted at root, sharing srg for its SRG memo.
func New(root string, fetcher Fetcher, extract ZipExtractor, srg *srgsrc.Source) *Source {
	return &Source{
		root:    root,
		fetcher: fetcher,
		extract: extract,
		srg:     srg,
		cache:   lru.New[version.McpVersion, *Entry](entryCacheCapacity),
	}
}

// SRG exposes the shared SRG source, for callers building the
// (srg,mcp) primitive target.
func (s *Source) SRG() *srgsrc.Source { return s.srg }

// Get resolves the dictionary entry for rev. A memo hit is served
// without any fetch; on a memo miss the version index is fetched fresh
// from the network, since it is never cached to disk.
func (s *Source) Get(rev version.McpVersion) (*Entry, error) {
	if e, ok := s.cache.Get(rev); ok {
		return e, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.cache.Get(rev); ok {
		return e, nil
	}
	hostVersion, err := s.resolveHostVersion(rev)
	if err != nil {
		return nil, err
	}
	e, err := s.load(rev, hostVersion)
	if err != nil {
		return nil, err
	}
	s.cache.Insert(rev, e)
	return e, nil
}

func (s *Source) resolveHostVersion(rev version.McpVersion) (version.GameVersion, error) {
	raw, err := s.fetcher.Get(versionIndexURL)
	if err != nil {
		return version.GameVersion{}, err
	}
	var idx versionIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return version.GameVersion{}, cerr.NewParseError("mcp-versions.json", -1, err)
	}
	gameVersions := make([]string, 0, len(idx))
	for gv := range idx {
		gameVersions = append(gameVersions, gv)
	}
	sort.Strings(gameVersions)
	for _, gv := range gameVersions {
		revs := idx[gv]
		revisions := revs.Snapshot
		if rev.Channel == version.Stable {
			revisions = revs.Stable
		}
		for _, r := range revisions {
			if r == rev.Revision {
				parsed, err := version.ParseGameVersion(gv)
				if err != nil {
					continue
				}
				return parsed, nil
			}
		}
	}
	return version.GameVersion{}, cerr.NewUnknownMcpVersion(fmt.Sprintf("%d(%s)", rev.Revision, rev.Channel))
}

func (s *Source) entryDir(rev version.McpVersion) string {
	spec := version.McpVersionSpec{Version: rev, NoDoc: true}
	return filepath.Join(s.root, spec.String())
}

func (s *Source) load(rev version.McpVersion, host version.GameVersion) (*Entry, error) {
	dir := s.entryDir(rev)
	fieldsPath := filepath.Join(dir, "fields.csv")
	methodsPath := filepath.Join(dir, "methods.csv")
	if _, err := os.Stat(fieldsPath); err != nil {
		if !os.IsNotExist(err) {
			return nil, cerr.NewIOError("stat "+fieldsPath, err)
		}
		if err := s.fetchEntry(rev, host, dir); err != nil {
			return nil, err
		}
	}
	fields, err := readDict(fieldsPath)
	if err != nil {
		return nil, err
	}
	methods, err := readDict(methodsPath)
	if err != nil {
		return nil, err
	}
	return &Entry{GameVersion: host, Fields: fields, Methods: methods}, nil
}

func (s *Source) fetchEntry(rev version.McpVersion, host version.GameVersion, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return cerr.NewIOError("mkdir "+dir, err)
	}
	channel := rev.Channel.String()
	url := fmt.Sprintf(mcpDataURLFormat, channel, rev.Revision, host.String(), channel, rev.Revision, host.String())
	archive, err := s.fetcher.Get(url)
	if err != nil {
		return err
	}
	fieldsData, err := s.extract(archive, "fields.csv")
	if err != nil {
		return err
	}
	methodsData, err := s.extract(archive, "methods.csv")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "fields.csv"), fieldsData, 0o644); err != nil {
		return cerr.NewIOError("write fields.csv", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "methods.csv"), methodsData, 0o644); err != nil {
		return cerr.NewIOError("write methods.csv", err)
	}
	return nil
}

func readDict(path string) (*codec.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cerr.NewIOError("open "+path, err)
	}
	defer f.Close()
	return codec.DecodeMcpCSV(f)
}
