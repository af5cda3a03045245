// Command bookstore runs the bookstore API and its maintenance tasks.
//
//	bookstore serve                   # start the HTTP server
//	bookstore migrate                 # apply pending migrations
//	bookstore migrate:rollback        # undo the last batch
//	bookstore migrate:status
//	bookstore seed                    # admin user and sample books
//	bookstore route:list
//	bookstore user:make-admin <username>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/shashiranjanraj/bookstore/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "bookstore",
	Short:         "Online bookstore API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(makeAdminCmd)
}
