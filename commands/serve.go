package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/cppla/postboard/config"
	"github.com/cppla/postboard/migrations"
	"github.com/cppla/postboard/routes"
	"github.com/cppla/postboard/utils"
)

const pruneInterval = time.Hour

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := boot()
			if err != nil {
				return err
			}
			defer func() { _ = utils.Logger.Sync() }()

			db := config.InitDatabase()
			if n, err := migrations.Pending(db); err != nil {
				utils.Sugar.Warnf("cannot read migration status: %v", err)
			} else if n > 0 {
				utils.Sugar.Warnf("%d pending migrations, run `postboard migrate`", n)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			utils.StartPageViewPruner(ctx, db, cfg.PageViewRetentionDays, pruneInterval)

			srv := utils.GraceServer(":"+cfg.AppPort, routes.NewHandler(db))
			srv.OnShutdown(cancel)
			srv.OnShutdown(func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			})

			utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
			return srv.ListenAndServe()
		},
	}
}
