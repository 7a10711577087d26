package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/app/routes"
	"github.com/kalakaksh/backend/app/services"
	"github.com/kalakaksh/backend/app/store"
	"github.com/kalakaksh/backend/config"
	"github.com/kalakaksh/backend/internal/server"
	"github.com/kalakaksh/backend/pkg/router"
	"github.com/kalakaksh/backend/pkg/storage"
)

// kalakaksh serve — start the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// kalakaksh route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		// Routes only need constructed controllers, not live backends.
		repo := repositories.New(store.NewJSONStore(config.DataDir()))
		enhance := services.NewEnhance("")
		storage.Connect()

		r := router.New()
		routes.RegisterAPI(r, routes.Deps{
			Repo:      repo,
			Catalog:   services.NewCatalog(repo),
			Dashboard: services.NewDashboard(repo),
			Media:     services.NewMedia(repo, storage.Default(), enhance),
			Enhance:   enhance,
		})

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		// Sort by path then method.
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
