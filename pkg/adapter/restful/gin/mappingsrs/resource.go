// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package mappingsrs realizes the mappings resource, allowing a build
// request to be accepted over HTTP and delegated to the composition
// engine, matching the synchronous build performed by cmd/mcmap.
package mappingsrs

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	json "github.com/goccy/go-json"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/codec"
	"github.com/Techcable/minecraft-mappings/pkg/adapter/restful/gin/serdser"
	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
	"github.com/Techcable/minecraft-mappings/pkg/core/target"
	"github.com/Techcable/minecraft-mappings/pkg/core/version"
	"github.com/Techcable/minecraft-mappings/pkg/engine"
	"github.com/Techcable/minecraft-mappings/pkg/source/cache"
)

type resource struct {
	cache *cache.MinecraftMappingsCache
}

// Register instantiates a resource adapting the mapping cache with the
// relevant REST API:
//  1. POST request to /mappings in order to compute one or more
//     targets for a game version, returning each as legacy-SRG text.
func Register(r *gin.RouterGroup, c *cache.MinecraftMappingsCache) {
	rs := &resource{cache: c}
	r.POST("mappings", rs.Build)
}

// BuildReq is the request body for POST /mappings.
type BuildReq struct {
	MinecraftVersion string   `json:"minecraftVersion" binding:"required"`
	McpVersion       string   `json:"mcpVersion"`
	Targets          []string `json:"targets" binding:"required,min=1"`
}

// BuildResp is the response body for POST /mappings. SerializedMappings
// maps each requested target string to its legacy-SRG text.
type BuildResp struct {
	SerializedMappings map[string]string `json:"serializedMappings"`
	ResponseTimeMs     int64             `json:"responseTime"`
}

func (rs *resource) Build(c *gin.Context) {
	start := time.Now()
	req := &BuildReq{}
	if !serdser.Bind(c, req, binding.JSON) {
		return
	}

	gv, err := version.ParseGameVersion(req.MinecraftVersion)
	if err != nil {
		serdser.SerErr(c, cerr.Classify(err))
		return
	}
	targets := make([]target.TargetMapping, len(req.Targets))
	for i, raw := range req.Targets {
		tm, err := target.Parse(raw)
		if err != nil {
			serdser.SerErr(c, cerr.Classify(err))
			return
		}
		targets[i] = tm
	}
	var mcpVersion *version.McpVersion
	if req.McpVersion != "" {
		spec, err := version.ParseMcpVersionSpec(req.McpVersion)
		if err != nil {
			serdser.SerErr(c, cerr.Classify(err))
			return
		}
		mcpVersion = &spec.Version
	}
	for _, tm := range targets {
		if tm.NeedsMcpVersion() && mcpVersion == nil {
			serdser.SerErr(c, cerr.Classify(cerr.NewMissingMcpVersion()))
			return
		}
	}

	eng := engine.New(rs.cache, gv, mcpVersion)
	out := make(map[string]string, len(targets))
	for i, tm := range targets {
		m, err := eng.ComputeTarget(tm)
		if err != nil {
			serdser.SerErr(c, cerr.Classify(err))
			return
		}
		var buf bytes.Buffer
		if err := codec.EncodeLegacySRG(&buf, m); err != nil {
			serdser.SerErr(c, cerr.Classify(err))
			return
		}
		out[req.Targets[i]] = buf.String()
	}

	body, err := json.Marshal(BuildResp{
		SerializedMappings: out,
		ResponseTimeMs:     time.Since(start).Milliseconds(),
	})
	if err != nil {
		serdser.SerErr(c, cerr.Classify(err))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
