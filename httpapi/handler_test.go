package httpapi

import (
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"

	"pocketworld/nbt"
	"pocketworld/store"
	"pocketworld/world"
)

func blankTerrain() []byte {
	return make([]byte, 83200)
}

// chunkKey mirrors the unexported world.chunkKey layout (cx, cz little-endian,
// then a 1-byte tag) so the fixture can seed the store directly.
func chunkKey(cx, cz int32, tag byte) []byte {
	key := make([]byte, 9)
	binary.LittleEndian.PutUint32(key[0:4], uint32(cx))
	binary.LittleEndian.PutUint32(key[4:8], uint32(cz))
	key[8] = tag
	return key
}

func newFixtureWorld(t *testing.T) *world.World {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "db"), 0o755); err != nil {
		t.Fatalf("mkdir db: %v", err)
	}

	root := nbt.NewCompound(nbt.Field{Name: "LevelName", Value: nbt.String("ApiFixture")})
	payload := nbt.EncodeNamedTag("", root, binary.LittleEndian)
	buf := make([]byte, 8+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], 3)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(payload)))
	copy(buf[8:], payload)
	if err := os.WriteFile(filepath.Join(dir, "level.dat"), buf, 0o644); err != nil {
		t.Fatalf("writing level.dat: %v", err)
	}

	f := store.Open(filepath.Join(dir, "db"), true)
	if err := f.Put(chunkKey(0, 0, '0'), blankTerrain()); err != nil {
		t.Fatalf("seeding chunk: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing fixture store: %v", err)
	}

	w, err := world.Open(dir, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return w
}

func newTestRouter(t *testing.T) *mux.Router {
	w := newFixtureWorld(t)
	t.Cleanup(func() { w.Close() })

	r := mux.NewRouter()
	NewHandler(w).Register(r, "/api/v1")
	return r
}

func TestHandleInfo(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/info", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	var resp infoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.LevelName != "ApiFixture" {
		t.Fatalf("LevelName: got %q", resp.LevelName)
	}
	if resp.ChunkCount != 1 {
		t.Fatalf("ChunkCount: got %d want 1", resp.ChunkCount)
	}
}

func TestHandleListChunks(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/chunks", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	var coords []coordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &coords); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(coords) != 1 || coords[0].CX != 0 || coords[0].CZ != 0 {
		t.Fatalf("unexpected coords: %+v", coords)
	}
}

func TestHandleGetChunkFound(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/chunks/0/0", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
}

func TestHandleGetChunkNotFound(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/chunks/9/9", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleGetChunkBadCoord(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/chunks/abc/0", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleHealthz(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
}
