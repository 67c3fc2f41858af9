package repository

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk shape of a catalog seed document.
type seedFile struct {
	Entities []seedEntity `yaml:"entities"`
}

type seedEntity struct {
	Name             string      `yaml:"name"`
	Label            string      `yaml:"label"`
	Icon             string      `yaml:"icon"`
	Searchable       bool        `yaml:"searchable"`
	DisplayNameField string      `yaml:"displayNameField"`
	Fields           []seedField `yaml:"fields"`
}

type seedField struct {
	Name      string `yaml:"name"`
	Label     string `yaml:"label"`
	Type      string `yaml:"type"`
	RefEntity string `yaml:"refEntity"`
}

// ApplySeed loads a YAML catalog seed file and upserts its contents.
// Existing entries with the same name are updated, nothing is removed.
func ApplySeed(ctx context.Context, repo Repository, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file %s: %w", path, err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file %s: %w", path, err)
	}

	for _, e := range seed.Entities {
		entity := EntityType{
			Name:             e.Name,
			Label:            e.Label,
			Icon:             e.Icon,
			Searchable:       e.Searchable,
			DisplayNameField: e.DisplayNameField,
		}
		if entity.DisplayNameField == "" {
			entity.DisplayNameField = "Name"
		}
		if err := repo.UpsertEntity(ctx, entity); err != nil {
			return fmt.Errorf("seed entity %s: %w", e.Name, err)
		}
		for _, f := range e.Fields {
			field := EntityField{
				EntityType: e.Name,
				Name:       f.Name,
				Label:      f.Label,
				DataType:   f.Type,
				RefEntity:  f.RefEntity,
			}
			if err := repo.UpsertField(ctx, field); err != nil {
				return fmt.Errorf("seed field %s.%s: %w", e.Name, f.Name, err)
			}
		}
	}
	return nil
}
