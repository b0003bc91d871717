package domain

import (
	"github.com/seokhojung/befunweb/pkg/errors"
	"github.com/seokhojung/befunweb/pkg/validator"
)

// MigrationConfig controls a migration pass.
type MigrationConfig struct {
	UseRealImages           bool   `json:"use_real_images"`
	GenerateMissingVariants bool   `json:"generate_missing_variants"`
	FallbackCategory        string `json:"fallback_category" validate:"required"`
	MaxColorVariants        int    `json:"max_color_variants" validate:"gt=0"`
}

// DefaultMigrationConfig returns the documented defaults.
func DefaultMigrationConfig() MigrationConfig {
	return MigrationConfig{
		UseRealImages:           false,
		GenerateMissingVariants: true,
		FallbackCategory:        "bookcase",
		MaxColorVariants:        12,
	}
}

// Validate rejects configurations no pass can honor.
func (c MigrationConfig) Validate() error {
	if err := validator.Validate(c); err != nil {
		return errors.InvalidConfig(err.Error())
	}
	return nil
}
