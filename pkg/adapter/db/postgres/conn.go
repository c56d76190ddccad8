// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/Techcable/minecraft-mappings/pkg/core/repo"
	"gorm.io/gorm"
)

// Conn represents a database connection acquired from a Pool.
// It is unsafe to be used concurrently. Conn embeds *gorm.DB, hence,
// may be used like GORM from within the repository packages.
type Conn struct {
	*gorm.DB
}

// TxHandler is a handler function which takes a context and an ongoing
// transaction. If an error is returned, caller will rollback the
// transaction and in absence of errors, it will be committed.
type TxHandler = repo.TxHandler

// Tx begins a new transaction on this connection, calls f with it,
// and commits the transaction when f returns nil, rolling back
// otherwise (including on panic).
func (c *Conn) Tx(ctx context.Context, f TxHandler) (err error) {
	gdb := c.DB.WithContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panicked: %v", r)
		}
	}()
	return gdb.Transaction(func(tx *gorm.DB) error {
		return f(ctx, &Tx{DB: tx})
	})
}

// Exec runs sql with args using this connection. See Tx.Exec for the
// placeholder and statement-count rules.
func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tt := c.DB.WithContext(ctx).Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, err
	}
	return tt.RowsAffected, nil
}

// Query runs sql with args using this connection, returning the
// result set as the repo.Rows interface.
func (c *Conn) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	rows, err := c.DB.WithContext(ctx).Raw(sql, args...).Rows()
	return rowsAdapter{rows}, err
}

// IsConn method prevents a non-Conn object to mistakenly implement
// the Conn interface.
func (c *Conn) IsConn() {
}

// GORM returns the embedded *gorm.DB instance, configuring it
// to operate on the given ctx context (in a gorm.Session).
func (c *Conn) GORM(ctx context.Context) *gorm.DB {
	return c.DB.WithContext(ctx)
}
