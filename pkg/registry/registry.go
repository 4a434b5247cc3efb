// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"esports-waitlist/internal/models"
)

// ReservedID is the wire id of the free-text "other" slot; no catalog game
// may use it.
const ReservedID = "other"

func LoadRegistry(path string) (*GameRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRegistry(data)
}

func ParseRegistry(data []byte) (*GameRegistry, error) {
	var reg GameRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse game registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate checks ids are present, unique and not reserved, and that every
// game has a display name.
func (r *GameRegistry) Validate() error {
	seen := make(map[string]bool, len(r.Games))
	for i, g := range r.Games {
		id := strings.TrimSpace(g.ID)
		if id == "" {
			return fmt.Errorf("game %d: missing id", i)
		}
		if id == ReservedID {
			return fmt.Errorf("game %d: id %q is reserved", i, id)
		}
		if seen[id] {
			return fmt.Errorf("game %d: duplicate id %q", i, id)
		}
		if strings.TrimSpace(g.DisplayName) == "" {
			return fmt.Errorf("game %q: missing displayName", id)
		}
		seen[id] = true
	}
	if r.DefaultGame != "" && !seen[r.DefaultGame] {
		return fmt.Errorf("defaultGame %q is not in the registry", r.DefaultGame)
	}
	return nil
}

// Add appends g and stamps LastUpdated. The registry is left unchanged when
// the result would not validate.
func (r *GameRegistry) Add(g GameEntry, now time.Time) error {
	next := *r
	next.Games = append(append([]GameEntry{}, r.Games...), g)
	if err := next.Validate(); err != nil {
		return err
	}
	r.Games = next.Games
	r.LastUpdated = now.Format(time.RFC3339)
	return nil
}

// SetRetired hides or restores a game without removing it from the file.
func (r *GameRegistry) SetRetired(id string, retired bool, now time.Time) error {
	for i := range r.Games {
		if r.Games[i].ID == id {
			if retired && id == r.DefaultGame {
				return fmt.Errorf("cannot retire the default game %q", id)
			}
			r.Games[i].Retired = retired
			r.LastUpdated = now.Format(time.RFC3339)
			return nil
		}
	}
	return fmt.Errorf("game %q not found", id)
}

// Active returns the non-retired games in file order.
func (r *GameRegistry) Active() []GameEntry {
	out := make([]GameEntry, 0, len(r.Games))
	for _, g := range r.Games {
		if !g.Retired {
			out = append(out, g)
		}
	}
	return out
}

// Catalog converts the active games into the catalog the intake form offers.
func (r *GameRegistry) Catalog() *models.Catalog {
	active := r.Active()
	games := make([]models.Game, len(active))
	for i, g := range active {
		games[i] = models.Game{ID: strings.TrimSpace(g.ID), Name: strings.TrimSpace(g.DisplayName)}
	}
	return models.NewCatalog(games)
}

// SaveRegistry writes reg as indented JSON, creating the directory if needed.
func SaveRegistry(reg *GameRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}
