// Package mappingsrp is the adapter for the mapping-snapshot
// repository. It persists a computed mappings.Mappings value, flattened
// into class/field/method rows, so that the SQL loader collaborator can
// bulk-write a build result for later querying without recomputing it
// through the engine.
package mappingsrp

import (
	"context"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/db/postgres"
	"github.com/Techcable/minecraft-mappings/pkg/core/repo"
	"github.com/google/uuid"
)

// Repo represents the mapping-snapshot repository instance.
type Repo struct {
}

// New instantiates a mapping-snapshot Repo. Users may use
// &mappingsrp.Repo{} directly too; New exists so the package reads
// like a data type, matching the repository packages' convention.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn adapts a repo.Conn into the connection-bound operations this
// repository supports.
func (mr *Repo) Conn(c repo.Conn) ConnQueryer {
	return connQueryer{Conn: c.(*postgres.Conn)}
}

// Save persists snap under a freshly generated snapshot ID and returns
// it. See the package-level Save function for the query logic shared
// with the transaction-bound variant.
func (cq connQueryer) Save(ctx context.Context, snap Snapshot) (uuid.UUID, error) {
	return Save(ctx, cq.Conn, snap)
}

// Load reads back a previously persisted snapshot by ID.
func (cq connQueryer) Load(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	return Load(ctx, cq.Conn, id)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx adapts a repo.Tx into the transaction-bound operations this
// repository supports.
func (mr *Repo) Tx(tx repo.Tx) TxQueryer {
	return txQueryer{Tx: tx.(*postgres.Tx)}
}

// Save persists snap under a freshly generated snapshot ID and returns
// it.
func (tq txQueryer) Save(ctx context.Context, snap Snapshot) (uuid.UUID, error) {
	return Save(ctx, tq.Tx, snap)
}

// Load reads back a previously persisted snapshot by ID.
func (tq txQueryer) Load(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	return Load(ctx, tq.Tx, id)
}

// ConnQueryer is the set of mapping-snapshot operations available on a
// plain connection.
type ConnQueryer interface {
	Save(ctx context.Context, snap Snapshot) (uuid.UUID, error)
	Load(ctx context.Context, id uuid.UUID) (*Snapshot, error)
}

// TxQueryer is the set of mapping-snapshot operations available inside
// a transaction.
type TxQueryer interface {
	Save(ctx context.Context, snap Snapshot) (uuid.UUID, error)
	Load(ctx context.Context, id uuid.UUID) (*Snapshot, error)
}
