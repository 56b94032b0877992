package provider

import (
	"context"
	"fmt"
	"os"

	"autoelite/internal/domain"

	"gopkg.in/yaml.v3"
)

// File reads a YAML rate sheet on every call, so edits apply without a restart:
//
//	plans:
//	  - months: 36
//	    apr: 7.9
//	    label: Popular
//	    popular: true
type File struct{ Path string }

type sheetFile struct {
	Plans []domain.FinancePlan `yaml:"plans"`
}

func (f File) Plans(context.Context) ([]domain.FinancePlan, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read rate sheet: %w", err)
	}
	return ParseYAML(raw)
}

func ParseYAML(raw []byte) ([]domain.FinancePlan, error) {
	var sheet sheetFile
	if err := yaml.Unmarshal(raw, &sheet); err != nil {
		return nil, fmt.Errorf("parse rate sheet: %w", err)
	}
	return normalize(sheet.Plans)
}
