package store

// Settings is the single persisted preferences record.
type Settings struct {
	ShowStartupNotice bool   `json:"showStartupNotice"`
	APIKey            string `json:"apiKey,omitempty"`
}

// DefaultSettings is what a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{ShowStartupNotice: true}
}
