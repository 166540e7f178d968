package knowledge

import (
	"fmt"
	"os"
	"sort"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/chronomap/internal/model"
)

// KnowledgeBase stores historical entities with temporal validity and
// answers token lookups with match-quality classification. Read-only
// after construction; lookups are cached and safe for concurrent use.
type KnowledgeBase struct {
	entities []model.HistoricalEntity
	lookups  *gocache.Cache
	horizon  model.YearRange
}

// catalogFile is the YAML shape of an external entity catalog.
type catalogFile struct {
	Entities []model.HistoricalEntity `yaml:"entities"`
}

// NewKnowledgeBase builds the catalog from the built-in entities plus an
// optional extra YAML catalog merged on top.
func NewKnowledgeBase(cfg model.KnowledgeConfig, horizon model.HorizonConfig) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		entities: builtinEntities(horizon.Max),
		lookups:  gocache.New(cfg.LookupCacheTTL, 2*cfg.LookupCacheTTL),
		horizon:  horizon.Range(),
	}

	if cfg.ExtraCatalog != "" {
		extra, err := loadCatalog(cfg.ExtraCatalog)
		if err != nil {
			return nil, fmt.Errorf("load extra catalog: %w", err)
		}
		kb.entities = append(kb.entities, extra...)
	}

	// Entity ranges must respect the horizon: the core never sees
	// unbounded or out-of-horizon claims.
	for i := range kb.entities {
		r := kb.entities[i].ValidRange
		if r.Start < kb.horizon.Start {
			r.Start = kb.horizon.Start
		}
		if r.End > kb.horizon.End {
			r.End = kb.horizon.End
		}
		if r.Start > r.End {
			return nil, fmt.Errorf("entity %q lies entirely outside horizon %s", kb.entities[i].Name, kb.horizon)
		}
		kb.entities[i].ValidRange = r
	}

	return kb, nil
}

func loadCatalog(path string) ([]model.HistoricalEntity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	for _, e := range file.Entities {
		if e.ValidRange.Start > e.ValidRange.End {
			return nil, fmt.Errorf("entity %q: %w", e.Name, model.ErrInvalidRange)
		}
	}
	return file.Entities, nil
}

// All returns every entity in the catalog.
func (kb *KnowledgeBase) All() []model.HistoricalEntity {
	out := make([]model.HistoricalEntity, len(kb.entities))
	copy(out, kb.entities)
	return out
}

// Len returns the catalog size.
func (kb *KnowledgeBase) Len() int {
	return len(kb.entities)
}

// Lookup matches recognized text tokens against the catalog. Each entity
// is reported at most once, at its best match quality. Results are
// deterministic: sorted by canonical name.
func (kb *KnowledgeBase) Lookup(tokens []string) []model.EntityMatch {
	if len(tokens) == 0 {
		return nil
	}

	key := cacheKey(tokens)
	if cached, found := kb.lookups.Get(key); found {
		return cached.([]model.EntityMatch)
	}

	text := normalize(strings.Join(tokens, " "))

	best := make(map[string]model.EntityMatch)
	for _, entity := range kb.entities {
		quality, token := matchEntity(text, entity)
		if quality == "" {
			continue
		}
		id := entity.CanonicalName + ":" + entity.EntityType
		if prev, seen := best[id]; !seen || qualityRank(quality) > qualityRank(prev.Quality) {
			best[id] = model.EntityMatch{Entity: entity, Quality: quality, Token: token}
		}
	}

	matches := make([]model.EntityMatch, 0, len(best))
	for _, m := range best {
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Entity.CanonicalName < matches[j].Entity.CanonicalName
	})

	kb.lookups.SetDefault(key, matches)
	return matches
}

// matchEntity classifies the strongest occurrence of an entity name in
// the normalized text.
func matchEntity(text string, entity model.HistoricalEntity) (model.MatchQuality, string) {
	canonical := normalize(entity.CanonicalName)
	if containsWord(text, canonical) {
		return model.MatchExact, entity.CanonicalName
	}
	if name := normalize(entity.Name); name != canonical && containsWord(text, name) {
		return model.MatchExact, entity.Name
	}

	for _, alt := range entity.AlternativeNames {
		if containsWord(text, normalize(alt)) {
			return model.MatchAlternative, alt
		}
	}

	// Fuzzy: a long-enough leading fragment of the canonical name, which
	// catches truncated or partially OCR'd labels.
	if len(canonical) >= 6 {
		fragment := canonical[:len(canonical)-2]
		if containsWord(text, fragment) {
			return model.MatchFuzzy, entity.CanonicalName
		}
	}

	return "", ""
}

func qualityRank(q model.MatchQuality) int {
	switch q {
	case model.MatchExact:
		return 3
	case model.MatchAlternative:
		return 2
	case model.MatchFuzzy:
		return 1
	default:
		return 0
	}
}

// containsWord reports whether needle occurs in text at a word boundary,
// so "iran" does not match inside "mediterranean".
func containsWord(text, needle string) bool {
	if needle == "" {
		return false
	}
	idx := 0
	for {
		i := strings.Index(text[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		beforeOK := start == 0 || !isAlnum(text[start-1])
		afterOK := end == len(text) || !isAlnum(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// normalize lowercases and collapses punctuation to spaces.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		case r == '.':
			// Dots inside abbreviations (U.S.S.R.) are dropped entirely.
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func cacheKey(tokens []string) string {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	sort.Strings(sorted)
	return "chronomap:kb:v1:" + strings.Join(sorted, "\x00")
}
