// pkg/registry/schema.go
package registry

// GameRegistry is the on-disk launch-game catalog.
type GameRegistry struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	DefaultGame string      `json:"defaultGame,omitempty"`
	Games       []GameEntry `json:"games"`
}

type GameEntry struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Genre       string   `json:"genre,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	Retired     bool     `json:"retired,omitempty"`
}
