package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorustyt/gonavgraph/common"
	"github.com/gorustyt/gonavgraph/common/logger"
	"github.com/gorustyt/gonavgraph/debug_utils"
	"github.com/gorustyt/gonavgraph/graph"
	"github.com/gorustyt/gonavgraph/navmesh"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Server answers path and clamp queries over HTTP for one mesh loaded at
// startup. The mesh is only read, so handlers run concurrently.
type Server struct {
	mesh    *navmesh.NavMesh
	handler http.Handler
}

func New(mesh *navmesh.NavMesh, allowedOrigins []string) *Server {
	s := &Server{mesh: mesh}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/path", s.findPathHandler).Methods("POST")
	api.HandleFunc("/clamp", s.clampHandler).Methods("POST")
	api.HandleFunc("/region", s.regionHandler).Methods("GET")
	api.HandleFunc("/mesh", s.meshHandler).Methods("GET")
	api.HandleFunc("/mesh.png", s.meshImageHandler).Methods("GET")

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	s.handler = c.Handler(r)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("navmesh server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type PathRequest struct {
	From common.Vec3 `json:"from"`
	To   common.Vec3 `json:"to"`
	// Heuristic is euclid (default), euclidSquared, manhattan or dijkstra.
	Heuristic string `json:"heuristic"`
}

type PathResponse struct {
	Path   []common.Vec3 `json:"path"`
	Length float32       `json:"length"`
	Found  bool          `json:"found"`
}

type ClampRequest struct {
	// Region is the agent's current region, -1 when unknown.
	Region int         `json:"region"`
	Start  common.Vec3 `json:"start"`
	End    common.Vec3 `json:"end"`
}

type ClampResponse struct {
	Position common.Vec3 `json:"position"`
	Region   int         `json:"region"`
}

type RegionResponse struct {
	Region  int          `json:"region"`
	Closest int          `json:"closest"`
	Contour []common.Vec3 `json:"contour,omitempty"`
}

var heuristics = map[string]graph.Heuristic{
	"":              graph.HeuristicEuclid,
	"euclid":        graph.HeuristicEuclid,
	"euclidSquared": graph.HeuristicEuclidSquared,
	"manhattan":     graph.HeuristicManhattan,
	"dijkstra":      graph.HeuristicDijkstra,
}

func (s *Server) findPathHandler(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	heuristic, ok := heuristics[req.Heuristic]
	if !ok {
		http.Error(w, "Unknown heuristic "+req.Heuristic, http.StatusBadRequest)
		return
	}
	if !common.Visfinite(req.From) || !common.Visfinite(req.To) {
		http.Error(w, "Positions must be finite", http.StatusBadRequest)
		return
	}
	path := s.mesh.FindPathWith(req.From, req.To, heuristic)
	writeJSON(w, PathResponse{Path: path, Length: navmesh.PathLength(path), Found: len(path) > 0})
}

func (s *Server) clampHandler(w http.ResponseWriter, r *http.Request) {
	req := ClampRequest{Region: -1}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	var current *navmesh.Polygon
	if req.Region >= 0 && req.Region < len(s.mesh.Regions()) {
		current = s.mesh.Regions()[req.Region]
	}
	position, region := s.mesh.ClampMovement(current, req.Start, req.End)
	writeJSON(w, ClampResponse{Position: position, Region: s.mesh.GetNodeIndex(region)})
}

func (s *Server) regionHandler(w http.ResponseWriter, r *http.Request) {
	var point common.Vec3
	for i, key := range []string{"x", "y", "z"} {
		v, err := strconv.ParseFloat(r.URL.Query().Get(key), 32)
		if err != nil {
			http.Error(w, "Missing or invalid "+key+" parameter", http.StatusBadRequest)
			return
		}
		point[i] = float32(v)
	}
	epsilon := s.mesh.EpsilonContainsTest
	if e := r.URL.Query().Get("epsilon"); e != "" {
		v, err := strconv.ParseFloat(e, 32)
		if err != nil {
			http.Error(w, "Invalid epsilon parameter", http.StatusBadRequest)
			return
		}
		epsilon = float32(v)
	}
	region := s.mesh.GetRegionForPoint(point, epsilon)
	resp := RegionResponse{
		Region:  s.mesh.GetNodeIndex(region),
		Closest: s.mesh.GetNodeIndex(s.mesh.GetClosestRegion(point)),
	}
	if region != nil {
		resp.Contour = region.Contour()
	}
	writeJSON(w, resp)
}

func (s *Server) meshHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.mesh.ToSnapshot())
}

func (s *Server) meshImageHandler(w http.ResponseWriter, r *http.Request) {
	opts := debug_utils.DefaultDrawOptions()
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 32)
		if err != nil || scale <= 0 || scale > 256 {
			http.Error(w, "Invalid scale parameter", http.StatusBadRequest)
			return
		}
		opts.Scale = float32(scale)
	}
	dd := debug_utils.DrawNavMesh(s.mesh, opts)
	w.Header().Set("Content-Type", "image/png")
	if err := dd.WritePNG(w); err != nil {
		logger.Warn("write mesh image", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response", zap.Error(err))
	}
}
