package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/vovakirdan/stem-the-tide/internal/engine"
)

//go:embed data/*.yaml
var campaignFS embed.FS

// CampaignPack is the ID of the built-in level pack.
const CampaignPack = "campaign"

// PackFunc loads the levels of a pack for the given geometry.
type PackFunc func(geom Geometry) ([]engine.Level, error)

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID    string
	Title string
}

var (
	packs  = make(map[string]PackFunc)
	titles = make(map[string]string)
	mu     sync.RWMutex
)

func init() {
	Register(CampaignPack, "The Stem the Tide campaign", Campaign)
}

// Register adds a level pack.
// Panics if a pack with the same ID is already registered.
func Register(id, title string, f PackFunc) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := packs[id]; exists {
		panic(fmt.Sprintf("levels: pack %q already registered", id))
	}
	packs[id] = f
	titles[id] = title
}

// Packs returns all registered packs, sorted by ID.
func Packs() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(packs))
	for id := range packs {
		result = append(result, PackInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the loader of a registered pack.
func Lookup(id string) (PackFunc, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := packs[id]
	if !ok {
		return nil, fmt.Errorf("levels: unknown pack %q", id)
	}
	return f, nil
}

// Campaign loads the embedded campaign levels.
func Campaign(geom Geometry) ([]engine.Level, error) {
	sub, err := fs.Sub(campaignFS, "data")
	if err != nil {
		return nil, fmt.Errorf("levels: embedded campaign: %w", err)
	}
	l := &Loader{FS: sub, Geometry: geom}
	return l.LoadAll()
}

// Open returns the levels in dir, or the campaign when dir is empty.
func Open(dir string, geom Geometry) ([]engine.Level, error) {
	if dir == "" {
		load, err := Lookup(CampaignPack)
		if err != nil {
			return nil, err
		}
		return load(geom)
	}
	l := NewLoader(dir)
	l.Geometry = geom
	return l.LoadAll()
}
