package definition

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and parses every JSON/YAML form definition it finds.
// When fsys is nil or holds no definitions, the returned catalog is empty.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{forms: make(map[string]Definition)}
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", path, err)
		}
		def, err := Parse(data, path)
		if err != nil {
			return err
		}
		if _, exists := catalog.forms[def.ID]; exists {
			return fmt.Errorf("definition: duplicate form %q (file %s)", def.ID, path)
		}
		catalog.forms[def.ID] = def
		catalog.order = append(catalog.order, def.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Parse decodes a single definition. The format follows the file extension
// of source; unknown extensions try JSON first and YAML second. A definition
// without an id takes the file's base name.
func Parse(data []byte, source string) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("definition: file %s is empty", source)
	}

	var def Definition
	var err error
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		err = json.Unmarshal(data, &def)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &def)
	default:
		if err = json.Unmarshal(data, &def); err != nil {
			def = Definition{}
			err = yaml.Unmarshal(data, &def)
		}
	}
	if err != nil {
		return Definition{}, fmt.Errorf("definition: parse %s: %w", source, err)
	}

	def.Source = source
	return normalise(def)
}

// Form returns the definition registered under id.
func (c *Catalog) Form(id string) (Definition, bool) {
	if c == nil {
		return Definition{}, false
	}
	def, ok := c.forms[id]
	return def, ok
}

// IDs returns the form ids in load order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Empty reports whether the catalog holds any definitions.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.forms) == 0
}

func normalise(def Definition) (Definition, error) {
	def.ID = strings.TrimSpace(def.ID)
	if def.ID == "" {
		base := filepath.Base(def.Source)
		def.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if def.ID == "" || def.ID == "." {
		return Definition{}, fmt.Errorf("definition: file %s defines a form without an id", def.Source)
	}
	if len(def.Fields) == 0 {
		return Definition{}, fmt.Errorf("definition: form %q (file %s) declares no fields", def.ID, def.Source)
	}

	seen := make(map[string]struct{}, len(def.Fields))
	fields := make([]FieldSpec, 0, len(def.Fields))
	for idx, spec := range def.Fields {
		spec.Name = strings.TrimSpace(spec.Name)
		if spec.Name == "" {
			return Definition{}, fmt.Errorf("definition: form %q (file %s) field at index %d has no name", def.ID, def.Source, idx)
		}
		if _, exists := seen[spec.Name]; exists {
			return Definition{}, fmt.Errorf("definition: form %q (file %s) defines duplicate field %q", def.ID, def.Source, spec.Name)
		}
		seen[spec.Name] = struct{}{}

		spec.Kind = strings.ToLower(strings.TrimSpace(spec.Kind))
		spec.Sanitize = strings.ToLower(strings.TrimSpace(spec.Sanitize))
		switch spec.Sanitize {
		case SanitizeNone, SanitizeStrip, SanitizeUGC:
		default:
			return Definition{}, fmt.Errorf("definition: form %q field %q: unknown sanitize mode %q", def.ID, spec.Name, spec.Sanitize)
		}
		if len(spec.Options) > 0 {
			spec.Options = append([]string(nil), spec.Options...)
		}
		fields = append(fields, spec)
	}
	def.Fields = fields
	return def, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
