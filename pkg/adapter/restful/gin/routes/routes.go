// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes facilitates registration of all resource packages
// based on the user provided configuration settings.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/restful/gin/mappingsrs"
	"github.com/Techcable/minecraft-mappings/pkg/source/cache"
)

// Register instantiates a series of "resource" structs, from packages
// which are named like mappingsrs, in order to adapt the mapping cache
// with the REST APIs. These resources are registered as request
// handlers using the e gin-gonic engine instance.
func Register(e *gin.Engine, c *cache.MinecraftMappingsCache) {
	r := e.Group("/api/mcmap/v1")
	mappingsrs.Register(r, c)
}
