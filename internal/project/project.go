package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// FileExtension is the extension used for saved projects.
const FileExtension = ".loadplan"

// Save writes a project, including its last result, to path as JSON.
func Save(path string, proj model.Project) error {
	if err := writeJSON(path, proj); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// Load reads a project saved by Save. Settings missing from the file
// fall back to DefaultSettings.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	proj := model.Project{Settings: model.DefaultSettings()}
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	if proj.Boxes == nil {
		proj.Boxes = []model.BoxItem{}
	}
	return proj, nil
}
