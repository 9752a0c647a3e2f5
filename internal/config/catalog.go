// ABOUTME: Optional YAML catalog override loaded from the data directory.
// ABOUTME: Falls back to the built-in program when no catalog.yaml exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/coach/internal/models"
)

// CatalogFile is the override file name inside the data directory.
const CatalogFile = "catalog.yaml"

// LoadCatalog returns the catalog from <data dir>/catalog.yaml, or the
// built-in catalog when that file does not exist.
func (c *Config) LoadCatalog() (*models.Catalog, error) {
	return LoadCatalogFile(filepath.Join(c.GetDataDir(), CatalogFile))
}

// LoadCatalogFile reads a catalog from path.
func LoadCatalogFile(path string) (*models.Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return models.DefaultCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var cat models.Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := validateCatalog(&cat); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return &cat, nil
}

func validateCatalog(cat *models.Catalog) error {
	if len(cat.Routines) == 0 {
		return fmt.Errorf("no routines defined")
	}
	seen := make(map[models.RoutineID]bool)
	for _, r := range cat.Routines {
		if !models.IsValidRoutineID(string(r.ID)) {
			return fmt.Errorf("unknown routine id %q", r.ID)
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate routine %q", r.ID)
		}
		seen[r.ID] = true
		for _, ex := range r.Exercises {
			if ex.ID == "" {
				return fmt.Errorf("routine %s: exercise without id", r.ID)
			}
		}
	}
	return nil
}
