package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gorustyt/gonavgraph/common"
	"github.com/gorustyt/gonavgraph/navmesh"
	"github.com/gorustyt/gonavgraph/store"
	"github.com/spf13/cobra"
)

// parseVec3 reads "x,y,z".
func parseVec3(s string) (v common.Vec3, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("expected x,y,z, got %q", s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return v, fmt.Errorf("bad coordinate %q: %w", p, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

func loadMesh(name string) (*navmesh.NavMesh, error) {
	s, err := store.Open(cfg.Store.Dsn, cfg.Store.Debug)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.LoadMesh(name)
}

func PathCmd() *cobra.Command {
	var name, from, to string
	c := &cobra.Command{
		Use:   "path",
		Short: "find a path on a stored mesh",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseVec3(from)
			if err != nil {
				return err
			}
			end, err := parseVec3(to)
			if err != nil {
				return err
			}
			mesh, err := loadMesh(name)
			if err != nil {
				return err
			}
			path := mesh.FindPath(start, end)
			if len(path) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no path")
				return nil
			}
			for _, p := range path {
				fmt.Fprintf(cmd.OutOrStdout(), "%g,%g,%g\n", p[0], p[1], p[2])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "length %g\n", navmesh.PathLength(path))
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "default", "name of the stored mesh")
	c.Flags().StringVar(&from, "from", "", "start position x,y,z")
	c.Flags().StringVar(&to, "to", "", "goal position x,y,z")
	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")
	return c
}

func ClampCmd() *cobra.Command {
	var name, from, to string
	c := &cobra.Command{
		Use:   "clamp",
		Short: "clamp a movement step to a stored mesh",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseVec3(from)
			if err != nil {
				return err
			}
			end, err := parseVec3(to)
			if err != nil {
				return err
			}
			mesh, err := loadMesh(name)
			if err != nil {
				return err
			}
			current := mesh.GetRegionForPoint(start, mesh.EpsilonContainsTest)
			p, region := mesh.ClampMovement(current, start, end)
			fmt.Fprintf(cmd.OutOrStdout(), "%g,%g,%g region %d\n", p[0], p[1], p[2], mesh.GetNodeIndex(region))
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "default", "name of the stored mesh")
	c.Flags().StringVar(&from, "from", "", "current position x,y,z")
	c.Flags().StringVar(&to, "to", "", "desired position x,y,z")
	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")
	return c
}
