// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadMaterialDefinitions reads a material catalog file and replaces the
// built-in MaterialDefs library.
func LoadMaterialDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read material definitions file: %w", err)
	}

	var materialDefs []MaterialDefinition
	if err := json.Unmarshal(file, &materialDefs); err != nil {
		return fmt.Errorf("failed to unmarshal material definitions: %w", err)
	}

	MaterialDefs = make(map[string]MaterialDefinition)
	for _, def := range materialDefs {
		MaterialDefs[def.ID] = def
	}
	return nil
}

// LoadPartDefinitions reads a part catalog file and replaces the built-in
// PartDefs library.
func LoadPartDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read part definitions file: %w", err)
	}

	var partDefs []PartDefinition
	if err := json.Unmarshal(file, &partDefs); err != nil {
		return fmt.Errorf("failed to unmarshal part definitions: %w", err)
	}

	PartDefs = make(map[string]PartDefinition)
	for _, def := range partDefs {
		PartDefs[def.ID] = def
	}
	return nil
}

// LoadTemplateDefinitions reads a template catalog file and replaces the
// built-in TemplateDefs library.
func LoadTemplateDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template definitions file: %w", err)
	}

	var templateDefs []TemplateDefinition
	if err := json.Unmarshal(file, &templateDefs); err != nil {
		return fmt.Errorf("failed to unmarshal template definitions: %w", err)
	}

	TemplateDefs = make(map[string]TemplateDefinition)
	for _, def := range templateDefs {
		TemplateDefs[def.ID] = def
	}
	return nil
}

// ValidateLibraries проверяет перекрёстные ссылки каталогов: материал каждой
// ячейки и часть каждого модуля должны существовать. Вызывается после
// загрузки внешних каталогов.
func ValidateLibraries() error {
	for id, tmpl := range TemplateDefs {
		for _, cell := range tmpl.Cells {
			if _, ok := MaterialDefs[cell.Material]; !ok {
				return fmt.Errorf("template %s: unknown material %q", id, cell.Material)
			}
		}
		for _, att := range tmpl.Attachments {
			if _, ok := PartDefs[att.Part]; !ok {
				return fmt.Errorf("template %s: unknown part %q", id, att.Part)
			}
		}
	}
	return nil
}
