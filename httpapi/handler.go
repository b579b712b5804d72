// Package httpapi exposes a World through read-only HTTP endpoints, for a
// host engine or an operator to inspect a world without the worldctl CLI.
// It never writes to the store: no endpoint calls SaveIncremental,
// DeleteChunk, or DeleteChunksInBox. Reads do change in-memory state:
// GetChunk fills the chunk cache, and the root-metadata getters insert
// their defaults into the root Compound.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pocketworld/world"
)

// Handler serves the introspection endpoints for a single open World.
type Handler struct {
	w *world.World
}

// NewHandler returns a Handler over an already-open World. The caller
// retains ownership — Handler never closes it.
func NewHandler(w *world.World) *Handler {
	return &Handler{w: w}
}

// Register mounts the Handler's routes onto r under prefix (e.g. "/api/v1").
func (h *Handler) Register(r *mux.Router, prefix string) {
	api := r.PathPrefix(prefix).Subrouter()
	api.HandleFunc("/info", h.handleInfo).Methods(http.MethodGet)
	api.HandleFunc("/chunks", h.handleListChunks).Methods(http.MethodGet)
	api.HandleFunc("/chunks/{cx}/{cz}", h.handleGetChunk).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.handleHealthz).Methods(http.MethodGet)
}

type infoResponse struct {
	LevelName  string `json:"level_name"`
	Generator  string `json:"generator"`
	GameType   int32  `json:"game_type"`
	RandomSeed int32  `json:"random_seed"`
	Time       int64  `json:"time"`
	LastPlayed int64  `json:"last_played"`
	SizeOnDisk int32  `json:"size_on_disk"`
	ChunkCount int    `json:"chunk_count"`
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	root := h.w.Root()
	coords, err := h.w.AllChunks()
	if err != nil {
		RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	RespondJSON(w, http.StatusOK, infoResponse{
		LevelName:  root.LevelName(),
		Generator:  root.Generator(),
		GameType:   root.GameType(),
		RandomSeed: root.RandomSeed(),
		Time:       root.Time(),
		LastPlayed: root.LastPlayed(),
		SizeOnDisk: root.SizeOnDisk(),
		ChunkCount: len(coords),
	})
}

type coordResponse struct {
	CX int32 `json:"cx"`
	CZ int32 `json:"cz"`
}

func (h *Handler) handleListChunks(w http.ResponseWriter, r *http.Request) {
	coords, err := h.w.AllChunks()
	if err != nil {
		RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]coordResponse, len(coords))
	for i, c := range coords {
		out[i] = coordResponse{CX: c.CX, CZ: c.CZ}
	}
	RespondJSON(w, http.StatusOK, out)
}

type chunkResponse struct {
	CX            int32 `json:"cx"`
	CZ            int32 `json:"cz"`
	Dirty         bool  `json:"dirty"`
	NeedsLighting bool  `json:"needs_lighting"`
	TileEntities  int   `json:"tile_entities"`
	Entities      int   `json:"entities"`
}

func (h *Handler) handleGetChunk(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cx, err := strconv.Atoi(vars["cx"])
	if err != nil {
		RespondError(w, http.StatusBadRequest, "cx must be an integer")
		return
	}
	cz, err := strconv.Atoi(vars["cz"])
	if err != nil {
		RespondError(w, http.StatusBadRequest, "cz must be an integer")
		return
	}

	c, err := h.w.GetChunk(int32(cx), int32(cz))
	if err != nil {
		if _, notPresent := err.(*world.ChunkNotPresent); notPresent {
			RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	RespondJSON(w, http.StatusOK, chunkResponse{
		CX:            c.CX,
		CZ:            c.CZ,
		Dirty:         c.Dirty(),
		NeedsLighting: c.NeedsLighting(),
		TileEntities:  len(c.TileEntities),
		Entities:      len(c.Entities),
	})
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
