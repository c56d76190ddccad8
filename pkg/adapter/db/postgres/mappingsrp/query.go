// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package mappingsrp

import (
	"context"
	"fmt"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/db/postgres"
	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
	"github.com/Techcable/minecraft-mappings/pkg/core/mappings"
	"github.com/google/uuid"
)

// Snapshot is a flattened, storage-friendly view of a computed
// mappings.Mappings value, tagged with the game/MCP version and target
// it was computed for.
type Snapshot struct {
	GameVersion string
	McpVersion  string // empty when the target did not need one
	Target      string
	Mappings    mappings.Mappings
}

type gSnapshot struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;column:id"`
	GameVersion string
	McpVersion  string
	Target      string
}

func (gSnapshot) TableName() string { return "mapping_snapshots" }

type gEntry struct {
	SnapshotID uuid.UUID `gorm:"type:uuid;index"`
	Kind       int16     // 0 = class, 1 = field, 2 = method
	OrigClass  string
	OrigName   string
	OrigSig    string
	NewClass   string
	NewName    string
	NewSig     string
}

func (gEntry) TableName() string { return "mapping_entries" }

const (
	kindClass  int16 = 0
	kindField  int16 = 1
	kindMethod int16 = 2
)

func flatten(id uuid.UUID, m mappings.Mappings) []gEntry {
	entries := make([]gEntry, 0, m.ClassCount()+m.FieldCount()+m.MethodCount())
	m.EachClass(func(orig, renamed mappings.InternalClassName) {
		entries = append(entries, gEntry{
			SnapshotID: id, Kind: kindClass,
			OrigClass: string(orig), NewClass: string(renamed),
		})
	})
	m.EachField(func(orig, renamed mappings.FieldRef) {
		entries = append(entries, gEntry{
			SnapshotID: id, Kind: kindField,
			OrigClass: string(orig.DeclaringClass), OrigName: orig.Name,
			NewClass: string(renamed.DeclaringClass), NewName: renamed.Name,
		})
	})
	m.EachMethod(func(orig, renamed mappings.MethodRef) {
		entries = append(entries, gEntry{
			SnapshotID: id, Kind: kindMethod,
			OrigClass: string(orig.DeclaringClass), OrigName: orig.Name,
			OrigSig: string(orig.Signature),
			NewClass: string(renamed.DeclaringClass), NewName: renamed.Name,
			NewSig: string(renamed.Signature),
		})
	})
	return entries
}

// Save persists snap under a freshly generated ID, bulk-inserting its
// flattened class/field/method rows in batches. This generic function
// allows a unified implementation to be used for both of the
// connection and transaction receiving methods.
func Save[Q postgres.Queryer](ctx context.Context, q Q, snap Snapshot) (uuid.UUID, error) {
	id := uuid.New()
	gdb := q.GORM(ctx)
	row := gSnapshot{
		ID: id, GameVersion: snap.GameVersion,
		McpVersion: snap.McpVersion, Target: snap.Target,
	}
	if err := gdb.Create(&row).Error; err != nil {
		return uuid.Nil, fmt.Errorf("insert snapshot: %w", err)
	}
	entries := flatten(id, snap.Mappings)
	if len(entries) > 0 {
		if err := gdb.CreateInBatches(entries, 500).Error; err != nil {
			return uuid.Nil, fmt.Errorf("insert entries: %w", err)
		}
	}
	return id, nil
}

// Load reads back a previously persisted snapshot, rebuilding its
// Mappings value through the SimpleMappings builder.
func Load[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*Snapshot, error) {
	gdb := q.GORM(ctx)
	var row gSnapshot
	if err := gdb.First(&row, "id = ?", id).Error; err != nil {
		return nil, cerr.NewIOError("load snapshot "+id.String(), err)
	}
	var entries []gEntry
	if err := gdb.Where("snapshot_id = ?", id).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	b := mappings.NewSimpleMappings()
	for _, e := range entries {
		switch e.Kind {
		case kindClass:
			b.SetClassName(
				mappings.InternalClassName(e.OrigClass),
				mappings.InternalClassName(e.NewClass),
			)
		case kindField:
			b.SetFieldName(
				mappings.FieldRef{DeclaringClass: mappings.InternalClassName(e.OrigClass), Name: e.OrigName},
				mappings.FieldRef{DeclaringClass: mappings.InternalClassName(e.NewClass), Name: e.NewName},
			)
		case kindMethod:
			b.SetMethodName(
				mappings.MethodRef{
					DeclaringClass: mappings.InternalClassName(e.OrigClass),
					Name:           e.OrigName, Signature: mappings.MethodSignature(e.OrigSig),
				},
				mappings.MethodRef{
					DeclaringClass: mappings.InternalClassName(e.NewClass),
					Name:           e.NewName, Signature: mappings.MethodSignature(e.NewSig),
				},
			)
		}
	}
	return &Snapshot{
		GameVersion: row.GameVersion, McpVersion: row.McpVersion,
		Target: row.Target, Mappings: b.Freeze(),
	}, nil
}

// Migrate creates the mapping_snapshots and mapping_entries tables if
// they do not already exist. There is only ever one schema shape for
// this repository, so this runs the v1 DDL directly rather than going
// through a versioned migration chain.
func Migrate(ctx context.Context, q *postgres.Conn) error {
	gdb := q.GORM(ctx)
	const ddl = `
CREATE TABLE IF NOT EXISTS mapping_snapshots (
	id uuid PRIMARY KEY,
	game_version text NOT NULL,
	mcp_version text NOT NULL DEFAULT '',
	target text NOT NULL
);
CREATE TABLE IF NOT EXISTS mapping_entries (
	snapshot_id uuid NOT NULL REFERENCES mapping_snapshots(id),
	kind smallint NOT NULL,
	orig_class text NOT NULL,
	orig_name text NOT NULL DEFAULT '',
	orig_sig text NOT NULL DEFAULT '',
	new_class text NOT NULL,
	new_name text NOT NULL DEFAULT '',
	new_sig text NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS mapping_entries_snapshot_id_idx
	ON mapping_entries (snapshot_id);`
	if err := gdb.Exec(ddl).Error; err != nil {
		return fmt.Errorf("migrate mapping-rows schema: %w", err)
	}
	return nil
}
