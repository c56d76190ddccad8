// Package spigotsrc resolves Spigot's BuildData class/member maps for
// a GameVersion: a JSON version-info lookup, a git-backed BuildData
// clone, sanitized compact-SRG parsing, and a chained+repackaged
// Mappings value.
package spigotsrc

import (
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/codec"
	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
	"github.com/Techcable/minecraft-mappings/pkg/core/mappings"
	"github.com/Techcable/minecraft-mappings/pkg/core/version"
)

const versionInfoURLFormat = "https://hub.spigotmc.org/versions/%s.json"
const buildDataRemote = "https://hub.spigotmc.org/stash/scm/spigot/builddata.git"

// Fetcher abstracts HTTP GET.
type Fetcher interface {
	Get(url string) ([]byte, error)
}

// GitRepo abstracts the narrow git operations BuildData needs,
// matching pkg/adapter/gitrepo.Repo's method set.
type GitRepo interface {
	EnsureCommit(remoteName, commitID string) error
	ReadFileAtCommit(commitID, path string) ([]byte, error)
}

// versionInfo is the JSON shape of hub.spigotmc.org/versions/<V>.json.
type versionInfo struct {
	Name string `json:"name"`
	Refs struct {
		BuildData  string `json:"BuildData"`
		Bukkit     string `json:"Bukkit"`
		CraftBukkit string `json:"CraftBukkit"`
		Spigot     string `json:"Spigot"`
	} `json:"refs"`
}

// buildDataInfo is the JSON shape of info.json at a BuildData commit.
type buildDataInfo struct {
	MinecraftVersion string `json:"minecraftVersion"`
	MinecraftHash    string `json:"minecraftHash"`
	AccessTransforms string `json:"accessTransforms"`
	ClassMappings    string `json:"classMappings"`
	MemberMappings   string `json:"memberMappings"`
	PackageMappings  string `json:"packageMappings"`
}

// Entry is a resolved Spigot mapping set for one GameVersion.
type Entry struct {
	GameVersion    version.GameVersion
	ClassMappings  mappings.Mappings
	MemberMappings mappings.Mappings
	Chained        mappings.Mappings
}

// Source resolves and memoizes Spigot entries. Memoization is
// unbounded: Spigot has few versions.
type Source struct {
	root    string
	fetcher Fetcher
	repo    GitRepo

	mu   sync.Mutex
	memo map[version.GameVersion]*Entry
}

// New returns a Source rooted at root, using fetcher for HTTP and repo
// for the BuildData git clone.
func New(root string, fetcher Fetcher, repo GitRepo) *Source {
	return &Source{
		root:    root,
		fetcher: fetcher,
		repo:    repo,
		memo:    make(map[version.GameVersion]*Entry),
	}
}

func (s *Source) snapshot() map[version.GameVersion]*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[version.GameVersion]*Entry, len(s.memo))
	for k, v := range s.memo {
		snap[k] = v
	}
	return snap
}

// Get resolves the Spigot entry for v.
func (s *Source) Get(v version.GameVersion) (*Entry, error) {
	if e, ok := s.snapshot()[v]; ok {
		return e, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.memo[v]; ok {
		return e, nil
	}
	e, err := s.load(v)
	if err != nil {
		return nil, err
	}
	s.memo[v] = e
	return e, nil
}

func (s *Source) versionDir(v version.GameVersion) string {
	return filepath.Join(s.root, "versions", v.String())
}

func (s *Source) load(v version.GameVersion) (*Entry, error) {
	classPath := filepath.Join(s.versionDir(v), "class.srg")
	membersPath := filepath.Join(s.versionDir(v), "members.srg")
	chainedPath := filepath.Join(s.versionDir(v), "chained.srg")

	if _, err := os.Stat(chainedPath); err == nil {
		class, err := decodeCompactFile(classPath)
		if err != nil {
			return nil, err
		}
		members, err := decodeCompactFile(membersPath)
		if err != nil {
			return nil, err
		}
		chained, err := decodeLegacyFile(chainedPath)
		if err != nil {
			return nil, err
		}
		return &Entry{GameVersion: v, ClassMappings: class, MemberMappings: members, Chained: chained}, nil
	} else if !os.IsNotExist(err) {
		return nil, cerr.NewIOError("stat "+chainedPath, err)
	}

	info, err := s.loadVersionInfo(v)
	if err != nil {
		return nil, err
	}
	if err := s.repo.EnsureCommit("origin", info.Refs.BuildData); err != nil {
		return nil, err
	}
	bdInfoRaw, err := s.repo.ReadFileAtCommit(info.Refs.BuildData, "info.json")
	if err != nil {
		return nil, err
	}
	var bdInfo buildDataInfo
	if err := json.Unmarshal(bdInfoRaw, &bdInfo); err != nil {
		return nil, cerr.NewParseError("BuildData info.json", -1, err)
	}

	classRaw, err := s.repo.ReadFileAtCommit(info.Refs.BuildData, filepath.Join("mappings", bdInfo.ClassMappings))
	if err != nil {
		return nil, err
	}
	sanitized := codec.SanitizeCompactSRG(string(classRaw))
	class, err := codec.DecodeCompactSRG(stringsReader(sanitized))
	if err != nil {
		return nil, err
	}

	membersRaw, err := s.repo.ReadFileAtCommit(info.Refs.BuildData, filepath.Join("mappings", bdInfo.MemberMappings))
	if err != nil {
		return nil, err
	}
	members, err := codec.DecodeCompactSRG(bytesReader(membersRaw))
	if err != nil {
		return nil, err
	}

	chained := class.Chain(members).TransformPackages(func(pkg string) (string, bool) {
		if pkg == "" {
			return "net/minecraft/server", true
		}
		return "", false
	})

	if err := os.MkdirAll(s.versionDir(v), 0o755); err != nil {
		return nil, cerr.NewIOError("mkdir "+s.versionDir(v), err)
	}
	if err := persistCompact(classPath, class); err != nil {
		return nil, err
	}
	if err := persistCompact(membersPath, members); err != nil {
		return nil, err
	}
	if err := persistLegacy(chainedPath, chained); err != nil {
		return nil, err
	}

	return &Entry{GameVersion: v, ClassMappings: class, MemberMappings: members, Chained: chained}, nil
}

func (s *Source) loadVersionInfo(v version.GameVersion) (versionInfo, error) {
	path := filepath.Join(s.root, "version_info", v.String()+".json")
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return versionInfo{}, cerr.NewIOError("stat "+path, err)
		}
		raw, err := s.fetcher.Get(urlf(versionInfoURLFormat, v.String()))
		if err != nil {
			if _, ok := err.(*cerr.HTTPNotFound); ok {
				return versionInfo{}, cerr.NewUnknownGameVersion(v.String())
			}
			return versionInfo{}, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return versionInfo{}, cerr.NewIOError("mkdir "+filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return versionInfo{}, cerr.NewIOError("write "+path, err)
		}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return versionInfo{}, cerr.NewIOError("read "+path, err)
	}
	var info versionInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return versionInfo{}, cerr.NewParseError("spigot version-info", -1, err)
	}
	return info, nil
}

func decodeCompactFile(path string) (mappings.Mappings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return mappings.Mappings{}, cerr.NewIOError("read "+path, err)
	}
	return codec.DecodeCompactSRG(bytesReader(raw))
}

func decodeLegacyFile(path string) (mappings.Mappings, error) {
	f, err := os.Open(path)
	if err != nil {
		return mappings.Mappings{}, cerr.NewIOError("open "+path, err)
	}
	defer f.Close()
	return codec.DecodeLegacySRG(f)
}

// persistCompact writes m back out in the same whitespace-token form
// DecodeCompactSRG accepts, so a later process restart can re-parse it
// without touching git.
func persistCompact(path string, m mappings.Mappings) error {
	var b []byte
	m.EachClass(func(orig, renamed mappings.InternalClassName) {
		b = append(b, []byte(string(orig)+" "+string(renamed)+"\n")...)
	})
	m.EachField(func(orig, renamed mappings.FieldRef) {
		b = append(b, []byte(string(orig.DeclaringClass)+" "+orig.Name+" "+renamed.Name+"\n")...)
	})
	m.EachMethod(func(orig, renamed mappings.MethodRef) {
		b = append(b, []byte(string(orig.DeclaringClass)+" "+orig.Name+" "+string(orig.Signature)+" "+renamed.Name+"\n")...)
	})
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return cerr.NewIOError("write "+path, err)
	}
	return nil
}

func persistLegacy(path string, m mappings.Mappings) error {
	f, err := os.Create(path)
	if err != nil {
		return cerr.NewIOError("create "+path, err)
	}
	if err := codec.EncodeLegacySRG(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return cerr.NewIOError("close "+path, err)
	}
	return nil
}
