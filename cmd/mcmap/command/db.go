package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/db/postgres"
	"github.com/Techcable/minecraft-mappings/pkg/adapter/db/postgres/mappingsrp"
	"github.com/Techcable/minecraft-mappings/pkg/core/repo"
	"github.com/Techcable/minecraft-mappings/pkg/core/target"
	"github.com/Techcable/minecraft-mappings/pkg/core/version"
	"github.com/Techcable/minecraft-mappings/pkg/engine"
	"github.com/Techcable/minecraft-mappings/pkg/source/cache"
)

var dbURL string

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Postgres mapping-rows loader actions",
	Long: `db sub-commands write computed mapping snapshots into a
Postgres database, so they can be queried with SQL instead of being
recomputed through the engine on every request.`,
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the mapping-rows tables if they do not already exist",
	Args:  cobra.NoArgs,
	RunE:  runDBMigrate,
}

var dbSaveCmd = &cobra.Command{
	Use:   "save <gameVersion> <target>",
	Short: "Compute one target and persist it as a mapping snapshot row",
	Args:  cobra.ExactArgs(2),
	RunE:  runDBSave,
}

func init() {
	dbCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "postgres connection string")
	dbCmd.AddCommand(dbMigrateCmd, dbSaveCmd)
	rootCmd.AddCommand(dbCmd)
}

func openPool(ctx context.Context) (*postgres.Pool, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("--db-url is required")
	}
	return postgres.NewPool(ctx, dbURL)
}

func runDBMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return mappingsrp.Migrate(ctx, c.(*postgres.Conn))
	})
	if err != nil {
		return err
	}
	fmt.Println("mapping-rows schema is up to date")
	return nil
}

func runDBSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	gv, err := version.ParseGameVersion(args[0])
	if err != nil {
		return err
	}
	tm, err := target.Parse(args[1])
	if err != nil {
		return err
	}
	var mcpVersion *version.McpVersion
	if mcpSpec != "" {
		spec, err := version.ParseMcpVersionSpec(mcpSpec)
		if err != nil {
			return err
		}
		mcpVersion = &spec.Version
	}

	c, err := cache.New(cacheRoot)
	if err != nil {
		return err
	}
	eng := engine.New(c, gv, mcpVersion)
	m, err := eng.ComputeTarget(tm)
	if err != nil {
		return err
	}

	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	snap := mappingsrp.Snapshot{GameVersion: gv.String(), Target: tm.String(), Mappings: m}
	if mcpSpec != "" {
		snap.McpVersion = mcpSpec
	}

	var id string
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		savedID, err := mappingsrp.Save(ctx, c.(*postgres.Conn), snap)
		if err != nil {
			return err
		}
		id = savedID.String()
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("saved snapshot %s\n", id)
	return nil
}
