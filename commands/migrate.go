package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cppla/postboard/migrations"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			pending, err := migrations.Pending(db)
			if err != nil {
				return err
			}
			if pending == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate.")
				return nil
			}
			if err := migrations.Up(db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s).\n", pending)
			return nil
		},
	}
}

func newMigrateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:status",
		Short: "Show the status of each migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			list, err := migrations.Statuses(db)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Ran?\tMigration")
			for _, s := range list {
				ran := "No"
				if s.Ran {
					ran = "Yes"
				}
				fmt.Fprintf(w, "%s\t%s\n", ran, s.ID)
			}
			return w.Flush()
		},
	}
}

func newMigrateRollbackCommand() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "migrate:rollback",
		Short: "Roll back the last migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := migrations.Rollback(db, steps)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to rollback.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migration(s).\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "step", 1, "number of migrations to roll back")
	return cmd
}

func newMigrateFreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:fresh",
		Short: "Roll back every migration and apply them again",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := migrations.Fresh(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database rebuilt from migrations.")
			return nil
		},
	}
}
