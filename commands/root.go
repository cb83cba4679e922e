// Package commands is the postboard command line: the HTTP server plus the
// migration, code generation and maintenance commands.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/cppla/postboard/config"
	"github.com/cppla/postboard/utils"
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "postboard",
		Short:         "A server-rendered post and comment board",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newMigrateStatusCommand(),
		newMigrateRollbackCommand(),
		newMigrateFreshCommand(),
		newMakeMigrationCommand(),
		newMakeModelCommand(),
		newMakeControllerCommand(),
		newRouteListCommand(),
		newKeyGenerateCommand(),
		newTokenIssueCommand(),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// boot loads configuration and the logger.
func boot() (config.AppConfig, error) {
	cfg := config.Load()
	if err := utils.InitLogger(cfg); err != nil {
		return cfg, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

// openDB connects with the loaded configuration. Commands own the connection
// and close it with the returned func.
func openDB() (*gorm.DB, func(), error) {
	cfg, err := boot()
	if err != nil {
		return nil, nil, err
	}
	db, err := config.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeFn, nil
}
