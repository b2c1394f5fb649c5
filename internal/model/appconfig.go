package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default packing settings applied to new projects
	DefaultBoxGap        float64     `json:"default_box_gap"`
	DefaultWallGap       float64     `json:"default_wall_gap"`
	DefaultSupportRatio  float64     `json:"default_support_ratio"`
	DefaultAllowRotation bool        `json:"default_allow_rotation"`
	DefaultScoring       ScoringMode `json:"default_scoring"`
	DefaultSortOrder     SortOrder   `json:"default_sort_order"`
	DefaultContainer     string      `json:"default_container"` // Inventory container preset name

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentProjects   []string `json:"recent_projects"`
	Theme            string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultBoxGap:        defaults.BoxGap,
		DefaultWallGap:       defaults.WallGap,
		DefaultSupportRatio:  defaults.SupportRatio,
		DefaultAllowRotation: defaults.AllowRotation,
		DefaultScoring:       defaults.Scoring,
		DefaultSortOrder:     defaults.SortOrder,
		DefaultContainer:     "20ft Standard",
		AutoSaveInterval:     0,
		RecentProjects:       []string{},
		Theme:                "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a LoadSettings struct.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *LoadSettings) {
	s.BoxGap = c.DefaultBoxGap
	s.WallGap = c.DefaultWallGap
	s.SupportRatio = c.DefaultSupportRatio
	s.AllowRotation = c.DefaultAllowRotation
	if c.DefaultScoring != "" {
		s.Scoring = c.DefaultScoring
	}
	if c.DefaultSortOrder != "" {
		s.SortOrder = c.DefaultSortOrder
	}
}

// AddRecentProject moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
