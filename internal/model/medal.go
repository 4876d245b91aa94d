package model

const (
	CatalogFormatTOML = "toml"
	CatalogFormatYAML = "yaml"
)

// MedalCatalog is the content of a medal catalog file.
type MedalCatalog struct {
	Medals []CatalogMedal `toml:"medals" yaml:"medals"`
}

type CatalogMedal struct {
	Name                string         `toml:"name" yaml:"name"`
	Description         string         `toml:"description" yaml:"description"`
	IconURL             string         `toml:"icon_url" yaml:"icon_url"`
	RequiredPoints      int            `toml:"required_points" yaml:"required_points"`
	RequiredLevel       string         `toml:"required_level" yaml:"required_level"`
	RequiredCycleNumber int            `toml:"required_cycle_number" yaml:"required_cycle_number"`
	Criterion           MedalCriterion `toml:"criterion" yaml:"criterion"`

	// IsActive defaults to true when omitted.
	IsActive *bool `toml:"is_active" yaml:"is_active"`
}

type ImportMedalCatalogRequest struct {
	Format string `json:"format"`
	Data   []byte `json:"data"`
}

type ImportMedalCatalogResponse struct {
	Names []string `json:"names"`

	// Created lists the medals which did not exist before the import.
	Created []string `json:"created"`
}

type GetAllMedalsRequest struct{}

type GetAllMedalsResponse struct {
	Medals []Medal `json:"medals"`
}
