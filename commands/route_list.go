package commands

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/cppla/postboard/routes"
)

const handlerPrefix = "github.com/cppla/postboard/"

func newRouteListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "List the registered HTTP routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := boot(); err != nil {
				return err
			}
			// Handlers are never invoked, so no database is needed.
			list := routes.SetupRouter(nil).Routes()
			return writeRoutes(cmd, list)
		},
	}
}

func writeRoutes(cmd *cobra.Command, list gin.RoutesInfo) error {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Path != list[j].Path {
			return list[i].Path < list[j].Path
		}
		return list[i].Method < list[j].Method
	})

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Method\tURI\tAction")
	for _, r := range list {
		action := strings.TrimSuffix(strings.TrimPrefix(r.Handler, handlerPrefix), "-fm")
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Method, r.Path, action)
	}
	fmt.Fprintln(w, "\nHTML forms reach PUT, PATCH and DELETE routes by posting a _method field.")
	return w.Flush()
}
