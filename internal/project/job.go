package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// Job is a headless planning run read from YAML:
//
//	name: Shipment 42
//	preset: 20ft Standard
//	settings:
//	  allow_rotation: true
//	boxes:
//	  - {label: Carton M, length: 600, width: 400, height: 400, quantity: 20}
type Job struct {
	Name              string              `yaml:"name"`
	Preset            string              `yaml:"preset"`
	Container         model.ContainerSpec `yaml:"container"`
	Settings          model.LoadSettings  `yaml:"settings"`
	Boxes             []JobBox            `yaml:"boxes"`
	WastePercent      float64             `yaml:"waste_percent"`
	PricePerContainer float64             `yaml:"price_per_container"`
}

// JobBox is one line of a job's packing list.
type JobBox struct {
	Label    string  `yaml:"label"`
	Length   float64 `yaml:"length"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Quantity int     `yaml:"quantity"`
}

// LoadJob reads a job file. Container presets are resolved against inv.
func LoadJob(path string, inv model.Inventory) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("failed to read job file: %w", err)
	}
	return ParseJob(data, inv)
}

// ParseJob decodes a job. Settings left out of the document keep their
// DefaultSettings values; a missing quantity means one box.
func ParseJob(data []byte, inv model.Inventory) (Job, error) {
	job := Job{Settings: model.DefaultSettings()}
	if err := yaml.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("failed to parse job file: %w", err)
	}

	if job.Container.Length == 0 && job.Container.Width == 0 && job.Container.Height == 0 {
		if job.Preset == "" {
			return Job{}, fmt.Errorf("invalid job: no container or preset given")
		}
		preset := inv.FindContainerByName(job.Preset)
		if preset == nil {
			return Job{}, fmt.Errorf("invalid job: unknown container preset %q", job.Preset)
		}
		job.Container = preset.ToContainerSpec()
		if job.PricePerContainer == 0 {
			job.PricePerContainer = preset.PricePerUnit
		}
	}

	if len(job.Boxes) == 0 {
		return Job{}, fmt.Errorf("invalid job: no boxes")
	}
	for i := range job.Boxes {
		if job.Boxes[i].Quantity == 0 {
			job.Boxes[i].Quantity = 1
		}
		if job.Boxes[i].Label == "" {
			job.Boxes[i].Label = fmt.Sprintf("Box %d", i+1)
		}
	}
	if job.Name == "" {
		job.Name = "Untitled"
	}
	return job, nil
}

// Items converts the job's packing list into box items with fresh IDs.
func (j Job) Items() []model.BoxItem {
	items := make([]model.BoxItem, len(j.Boxes))
	for i, b := range j.Boxes {
		items[i] = model.NewBoxItem(b.Label, b.Length, b.Width, b.Height, b.Quantity)
	}
	return items
}

// Project builds a project from the job so it can be saved or opened in the desktop app.
func (j Job) Project() model.Project {
	return model.Project{
		Name:      j.Name,
		Container: j.Container,
		Boxes:     j.Items(),
		Settings:  j.Settings,
	}
}
