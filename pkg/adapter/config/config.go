// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which allows users to write a yaml
// configuration file and instantiate the cache, engine, HTTP front-end,
// and SQL loader components from those settings.
// The parsed and validated configuration is passed to its ultimate
// components as a series of individual params, so they may be
// accumulated and validated in their own (possibly non-exported) option
// structs rather than depending on this package's types directly.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/db/postgres"
	"github.com/Techcable/minecraft-mappings/pkg/adapter/restful/gin"
	"gopkg.in/yaml.v3"
)

// Config contains all settings required by mcmap's collaborators: the
// on-disk cache, the HTTP front-end, and the SQL loader. It is
// preferred to keep Config built from primitive fields or other
// structs defined in this package, not types from other layers, so the
// configuration format can evolve independently of them.
type Config struct {
	CacheRoot string   `yaml:"cache-root"`
	Upstream  Upstream `yaml:"upstream"`
	Gin       Gin      `yaml:"gin"`
	Database  Database `yaml:"database"`
}

// Upstream holds base URLs for the SRG zips, the MCP version index and
// dictionaries, and the Spigot version-info feed and BuildData git
// remote, as read from the config file. No component reads these
// fields: the source packages always use their hard-coded upstream
// URLs, whatever the config file says.
type Upstream struct {
	LegacySRGZipURL    string `yaml:"legacy-srg-zip-url"`
	McpConfigZipURL    string `yaml:"mcp-config-zip-url"`
	McpVersionIndexURL string `yaml:"mcp-version-index-url"`
	McpDataURL         string `yaml:"mcp-data-url"`
	SpigotVersionInfo  string `yaml:"spigot-version-info-url"`
	BuildDataRemote    string `yaml:"build-data-remote"`
}

// Database contains the Postgres connection settings for the SQL
// loader collaborator.
type Database struct {
	Host     string // domain name or IP address of the DBMS server
	Port     int    // port number of the DBMS server
	Name     string // database name, like mcmap
	Role     string // role/username for connecting to the database
	PassFile string `yaml:"pass-file"` // path of the password file
}

// NewPool instantiates a new database connection pool based on the
// connection information stored in d.
func (d Database) NewPool(ctx context.Context) (*postgres.Pool, error) {
	pass, err := os.ReadFile(d.PassFile)
	if err != nil {
		return nil, fmt.Errorf("reading pass-file: %w", err)
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.Role, string(pass)),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	p, err := postgres.NewPool(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("pool creation: %w", err)
	}
	return p, nil
}

// Gin contains the gin-gonic related configuration settings for the
// HTTP front-end.
type Gin struct {
	Addr     string `yaml:"addr"` // bind address, e.g. ":8080"
	Logger   bool   // Whether to register the gin.Logger() middleware
	Recovery bool   // Whether to register the gin.Recovery() middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the g settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c := &Config{}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err = c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It also replaces a few
// zero values with their expected defaults.
func (c *Config) ValidateAndNormalize() error {
	if c.CacheRoot == "" {
		home, err := os.UserCacheDir()
		if err != nil {
			return fmt.Errorf("no cache-root given and no user cache dir: %w", err)
		}
		c.CacheRoot = home + "/mcmap"
	}
	if c.Gin.Addr == "" {
		c.Gin.Addr = ":8080"
	}
	return nil
}
