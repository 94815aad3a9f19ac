package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title                       Bookshelf API
// @version                     1.0
// @description                 Personal book tracking with a public reading leaderboard.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>"; browsers send the bookshelf_session cookie instead.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookshelf",
		Short:         "Personal book tracking backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("config", "", "path to config file (default configs/config.yml)")
	root.PersistentFlags().String("db", "", "path to the SQLite database file")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newServeCmd(), newInitDBCmd())
	return root
}
