package source

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/ppiankov/chronomap/internal/model"
)

// Catalog is the local library of playable maps. Stored as one JSON file
// under the maps directory and seeded with a starter set on first use.
type Catalog struct {
	path string
	maps []model.MapMetadata
}

// LoadCatalog reads the catalog file, creating and seeding it when absent.
func LoadCatalog(dir string) (*Catalog, error) {
	path := filepath.Join(dir, "catalog.json")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		c := &Catalog{path: path, maps: seedMaps()}
		if err := c.Save(); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var maps []model.MapMetadata
	if err := json.Unmarshal(data, &maps); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &Catalog{path: path, maps: maps}, nil
}

// Save writes the catalog back to disk.
func (c *Catalog) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create maps dir: %w", err)
	}
	data, err := json.MarshalIndent(c.maps, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return os.WriteFile(c.path, data, 0o644)
}

// Add appends discovered maps, skipping IDs already present.
func (c *Catalog) Add(maps ...model.MapMetadata) int {
	known := make(map[string]bool, len(c.maps))
	for _, m := range c.maps {
		known[m.MapID] = true
	}
	added := 0
	for _, m := range maps {
		if m.MapID == "" || known[m.MapID] {
			continue
		}
		known[m.MapID] = true
		c.maps = append(c.maps, m)
		added++
	}
	return added
}

// All returns every catalog entry.
func (c *Catalog) All() []model.MapMetadata {
	out := make([]model.MapMetadata, len(c.maps))
	copy(out, c.maps)
	return out
}

// Len returns the catalog size.
func (c *Catalog) Len() int {
	return len(c.maps)
}

// Pick returns a random map suited to the difficulty. Maps without a
// difficulty hint suit any tier; when nothing matches the tier, any map
// will do.
func (c *Catalog) Pick(rng *rand.Rand, difficulty model.Difficulty) (model.MapMetadata, error) {
	if len(c.maps) == 0 {
		return model.MapMetadata{}, fmt.Errorf("map catalog is empty")
	}

	var candidates []model.MapMetadata
	for _, m := range c.maps {
		if m.DifficultyHint == "" || m.DifficultyHint == difficulty {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		candidates = c.maps
	}
	return candidates[rng.Intn(len(candidates))], nil
}

// seedMaps is the starter catalog: descriptions rich enough for the text
// pipeline to date without real imagery.
func seedMaps() []model.MapMetadata {
	return []model.MapMetadata{
		{
			MapID:          "seed-ussr-rail",
			Source:         "Starter collection",
			Region:         "Eastern Europe",
			Description:    "Railway map of the Soviet Union showing lines through Leningrad, printed 1957",
			DifficultyHint: model.DifficultyBeginner,
		},
		{
			MapID:          "seed-divided-germany",
			Source:         "Starter collection",
			Region:         "Central Europe",
			Description:    "Political map showing East Germany and West Germany with the inner border marked",
			DifficultyHint: model.DifficultyBeginner,
		},
		{
			MapID:          "seed-ottoman-balkans",
			Source:         "Starter collection",
			Region:         "Balkans",
			Description:    "Map of the Ottoman Empire provinces in the Balkans with Constantinople marked",
			DifficultyHint: model.DifficultyIntermediate,
		},
		{
			MapID:          "seed-austro-hungary",
			Source:         "Starter collection",
			Region:         "Central Europe",
			Description:    "Ethnographic map of Austria-Hungary with crown lands, surveys of 1890 1895",
			DifficultyHint: model.DifficultyIntermediate,
		},
		{
			MapID:          "seed-mandate-palestine",
			Source:         "Starter collection",
			Region:         "Middle East",
			Description:    "Survey map of Palestine under the British Mandate",
			DifficultyHint: model.DifficultyExpert,
		},
		{
			MapID:          "seed-siam",
			Source:         "Starter collection",
			Region:         "Southeast Asia",
			Description:    "Boundary map of Siam and British India",
			DifficultyHint: model.DifficultyExpert,
		},
	}
}
