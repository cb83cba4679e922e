package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cppla/postboard/scaffold"
)

type makeFlags struct {
	dir   string
	force bool
}

func (f *makeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "dir", ".", "project root to write into")
	cmd.Flags().BoolVar(&f.force, "force", false, "overwrite existing files")
}

func (f *makeFlags) generator() *scaffold.Generator {
	return scaffold.New(f.dir, f.force)
}

func newMakeMigrationCommand() *cobra.Command {
	var flags makeFlags
	cmd := &cobra.Command{
		Use:   "make:migration <name>",
		Short: "Create a new migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.generator().Migration(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created migration: %s\n", path)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newMakeModelCommand() *cobra.Command {
	var flags makeFlags
	var withMigration bool
	cmd := &cobra.Command{
		Use:   "make:model <Name>",
		Short: "Create a new gorm model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := flags.generator().Model(args[0], withMigration)
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", p)
			}
			return err
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVarP(&withMigration, "migration", "m", false, "also create the create-table migration")
	return cmd
}

func newMakeControllerCommand() *cobra.Command {
	var flags makeFlags
	var resource bool
	cmd := &cobra.Command{
		Use:   "make:controller <Name>",
		Short: "Create a new controller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.generator().Controller(args[0], resource)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created controller: %s\n", path)
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVarP(&resource, "resource", "r", false, "generate the seven resource actions")
	return cmd
}
