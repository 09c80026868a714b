package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorustyt/gonavgraph/common"
	"github.com/gorustyt/gonavgraph/debug_utils"
	"github.com/gorustyt/gonavgraph/navmesh"
	"github.com/gorustyt/gonavgraph/server"
	"github.com/gorustyt/gonavgraph/store"
	"github.com/spf13/cobra"
)

func CostsCmd() *cobra.Command {
	var name string
	c := &cobra.Command{
		Use:   "costs",
		Short: "precompute the region cost table of a stored mesh",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.Store.Dsn, cfg.Store.Debug)
			if err != nil {
				return err
			}
			defer s.Close()
			mesh, err := s.LoadMesh(name)
			if err != nil {
				return err
			}
			table := navmesh.NewCostTable().Init(mesh)
			if err = s.SaveCostTable(name, table); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d pairs reachable\n", name, table.Len(), table.Size()*table.Size())
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "default", "name of the stored mesh")
	return c
}

func DrawCmd() *cobra.Command {
	var (
		name, output, from, to string
		scale                  float32
		all                    bool
	)
	c := &cobra.Command{
		Use:   "draw",
		Short: "render a stored mesh to a png",
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, err := loadMesh(name)
			if err != nil {
				return err
			}
			var paths [][]common.Vec3
			if from != "" && to != "" {
				start, err := parseVec3(from)
				if err != nil {
					return err
				}
				end, err := parseVec3(to)
				if err != nil {
					return err
				}
				paths = append(paths, mesh.FindPath(start, end))
			}
			opts := debug_utils.DefaultDrawOptions()
			opts.Scale = scale
			if all {
				opts.Flags = debug_utils.DU_DRAWNAVMESH_ALL
			}
			dd := debug_utils.DrawNavMesh(mesh, opts, paths...)
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			return dd.WritePNG(f)
		},
	}
	c.Flags().StringVar(&name, "name", "default", "name of the stored mesh")
	c.Flags().StringVar(&output, "out", "navmesh.png", "output png")
	c.Flags().StringVar(&from, "from", "", "optional path start x,y,z")
	c.Flags().StringVar(&to, "to", "", "optional path goal x,y,z")
	c.Flags().Float32Var(&scale, "scale", 32, "pixels per world unit")
	c.Flags().BoolVar(&all, "all", false, "draw graph, spatial index and every overlay")
	return c
}

func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored meshes",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.Store.Dsn, cfg.Store.Debug)
			if err != nil {
				return err
			}
			defer s.Close()
			meshes, err := s.ListMeshes()
			if err != nil {
				return err
			}
			for _, m := range meshes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tv%d\t%d regions\t%s\n",
					m.Name, m.Version, m.Regions, m.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func DeleteCmd() *cobra.Command {
	var name string
	c := &cobra.Command{
		Use:   "delete",
		Short: "delete a stored mesh and its cost table",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.Store.Dsn, cfg.Store.Debug)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.DeleteMesh(name)
		},
	}
	c.Flags().StringVar(&name, "name", "", "name of the stored mesh")
	_ = c.MarkFlagRequired("name")
	return c
}

func ServeCmd() *cobra.Command {
	var name, addr string
	c := &cobra.Command{
		Use:   "serve",
		Short: "serve path queries over http",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = cfg.Server.Mesh
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			mesh, err := loadMesh(name)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(mesh, cfg.Server.AllowedOrigins).ListenAndServe(ctx, addr)
		},
	}
	c.Flags().StringVar(&name, "name", "", "name of the stored mesh, defaults to server.mesh")
	c.Flags().StringVar(&addr, "addr", "", "listen address, defaults to server.addr")
	return c
}
