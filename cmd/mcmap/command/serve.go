package command

import (
	"github.com/spf13/cobra"

	"github.com/Techcable/minecraft-mappings/pkg/adapter/config"
	"github.com/Techcable/minecraft-mappings/pkg/adapter/restful/gin/routes"
	"github.com/Techcable/minecraft-mappings/pkg/source/cache"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the POST /mappings HTTP front-end",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "mcmap.yaml", "path to the yaml config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	c, err := cache.New(cfg.CacheRoot)
	if err != nil {
		return err
	}
	e := cfg.Gin.NewEngine()
	routes.Register(e, c)
	return e.Run(cfg.Gin.Addr)
}
