package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorustyt/gonavgraph/common/logger"
	"github.com/gorustyt/gonavgraph/navmesh"
	"github.com/gorustyt/gonavgraph/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func BuildCmd() *cobra.Command {
	var (
		input   string
		name    string
		output  string
		noMerge bool
	)
	c := &cobra.Command{
		Use:   "build",
		Short: "build a mesh from an obj or hjson polygon file and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			contours, err := navmesh.LoadContoursFile(input)
			if err != nil {
				return err
			}
			opts := cfg.Build
			if noMerge {
				opts.MergeConvexRegions = false
			}
			mesh, stats := navmesh.Build(contours, opts)
			if cfg.SpatialIndex.Enabled {
				mesh.BuildSpatialIndex(cfg.SpatialIndex.CellsX, cfg.SpatialIndex.CellsY, cfg.SpatialIndex.CellsZ)
			}
			logger.Info("mesh built",
				zap.String("input", input),
				zap.Int("contours", stats.InputContours),
				zap.Int("skipped", stats.SkippedContours),
				zap.Int("regions", stats.Regions),
				zap.Int("merged", stats.Merged))

			s, err := store.Open(cfg.Store.Dsn, cfg.Store.Debug)
			if err != nil {
				return err
			}
			defer s.Close()
			if err = s.SaveMesh(name, mesh); err != nil {
				return err
			}
			if output != "" {
				if err = writeSnapshot(mesh, output); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d regions, %d portals, %d border edges\n",
				name, stats.Regions, mesh.Graph().EdgeCount()/2, stats.BorderEdges)
			return nil
		},
	}
	c.Flags().StringVar(&input, "input", "", "obj or hjson polygon file")
	c.Flags().StringVar(&name, "name", "default", "name of the stored mesh")
	c.Flags().StringVar(&output, "out", "", "also write a snapshot file (.json, .bin or .pb)")
	c.Flags().BoolVar(&noMerge, "no-merge", false, "keep the input polygons as regions")
	_ = c.MarkFlagRequired("input")
	return c
}

func writeSnapshot(mesh *navmesh.NavMesh, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin":
		data = mesh.ToBin()
	case ".pb":
		data, err = mesh.ToProto()
	default:
		data, err = mesh.ToJSON()
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
