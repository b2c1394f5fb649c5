package model

import (
	"time"

	"github.com/google/uuid"
)

// LoadTemplate represents a reusable load configuration that captures the
// packing list, container, and settings but not planning results.
type LoadTemplate struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Boxes       []BoxItem     `json:"boxes"`
	Container   ContainerSpec `json:"container"`
	Settings    LoadSettings  `json:"settings"`
}

// NewLoadTemplate creates a new template from the given project data.
// It copies boxes, container and settings but intentionally excludes results.
func NewLoadTemplate(name, description string, boxes []BoxItem, container ContainerSpec, settings LoadSettings) LoadTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return LoadTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Boxes:       copyBoxes(boxes),
		Container:   container,
		Settings:    settings,
	}
}

// ToProject creates a new Project from this template.
// Boxes get fresh IDs so they are independent of the template.
func (t LoadTemplate) ToProject(projectName string) Project {
	boxes := make([]BoxItem, len(t.Boxes))
	for i, b := range t.Boxes {
		boxes[i] = NewBoxItem(b.Label, b.Dimensions.Length, b.Dimensions.Width, b.Dimensions.Height, b.Quantity)
	}

	return Project{
		Name:      projectName,
		Container: t.Container,
		Boxes:     boxes,
		Settings:  t.Settings,
	}
}

// TemplateStore holds a collection of load templates.
type TemplateStore struct {
	Templates []LoadTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []LoadTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t LoadTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *LoadTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *LoadTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func copyBoxes(boxes []BoxItem) []BoxItem {
	if boxes == nil {
		return []BoxItem{}
	}
	cp := make([]BoxItem, len(boxes))
	copy(cp, boxes)
	return cp
}
