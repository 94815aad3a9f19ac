package main

import (
	"fmt"

	"bookshelf/internal/config"
	"bookshelf/internal/logger"
	"bookshelf/internal/repository/db"

	"github.com/spf13/cobra"
)

func newInitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the SQLite schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			configFile, _ := cmd.Flags().GetString("config")
			if err := config.Read(v, configFile); err != nil {
				return err
			}

			log := logger.Get(v.GetString("log.level"))
			path := v.GetString("db.path")

			conn, err := db.InitDB(path)
			if err != nil {
				return fmt.Errorf("init db: %w", err)
			}
			defer conn.Close()

			log.Infow("schema ready", "path", path)
			return nil
		},
	}
}
