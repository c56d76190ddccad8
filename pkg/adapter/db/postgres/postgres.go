// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import "fmt"

// These constants represent the major, minor, and patch components of
// the mapping-rows schema version which mappingsrp migrates to. Unlike
// a settings schema with several historical major versions, the
// mapping-rows schema has had exactly one shape so far, so there is no
// settle/migration-chain package to source these from. They only label
// that shape: mappingsrp.Migrate does not read them.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the mapping-rows schema semantic version as "M.m.p".
var Version = fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
