package project

import (
	"github.com/piwi3910/LoadPlan/internal/model"
)

// DefaultTemplatePath returns ~/.loadplan/templates.json.
func DefaultTemplatePath() string {
	return dataFile("templates.json")
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, store)
}

// LoadTemplates reads a template store. A missing file yields an empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	store := model.NewTemplateStore()
	if _, err := readJSON(path, &store); err != nil {
		return model.NewTemplateStore(), err
	}
	if store.Templates == nil {
		store.Templates = []model.LoadTemplate{}
	}
	return store, nil
}

func LoadDefaultTemplates() (model.TemplateStore, error) {
	return LoadTemplates(DefaultTemplatePath())
}

func SaveDefaultTemplates(store model.TemplateStore) error {
	return SaveTemplates(DefaultTemplatePath(), store)
}
