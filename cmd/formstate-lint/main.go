package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formstate/pkg/definition"
	visexpr "github.com/goliatone/go-formstate/pkg/visibility/expr"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint form definitions: settings, transformers and visibility rules.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"examples/forms"}
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintPath(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintPath(path string) ([]violation, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		def, err := definition.Parse(data, path)
		if err != nil {
			return []violation{{file: path, location: "document", message: err.Error()}}, nil
		}
		return lintDefinition(def), nil
	}

	catalog, err := definition.LoadFS(os.DirFS(path))
	if err != nil {
		return []violation{{file: path, location: "document", message: err.Error()}}, nil
	}
	var result []violation
	for _, id := range catalog.IDs() {
		def, _ := catalog.Form(id)
		def.Source = filepath.Join(path, def.Source)
		result = append(result, lintDefinition(def)...)
	}
	return result, nil
}

func lintDefinition(def definition.Definition) []violation {
	var result []violation
	base := []string{"form", def.ID}

	if _, err := def.Options(); err != nil {
		result = append(result, violation{file: def.Source, location: formatLocation(base), message: err.Error()})
	}

	known := make(map[string]struct{}, len(def.Fields))
	for _, spec := range def.Fields {
		known[spec.Name] = struct{}{}
	}
	for key := range def.InitialValue {
		if _, ok := known[key]; !ok {
			result = append(result, violation{
				file:     def.Source,
				location: formatLocation(appendPath(base, "initialValue."+key)),
				message:  "initial value has no matching field",
			})
		}
	}

	eval := visexpr.New()
	for _, spec := range def.Fields {
		path := appendPath(base, "fields."+spec.Name)
		single := definition.Definition{ID: def.ID, Fields: []definition.FieldSpec{spec}}
		if _, err := single.Build(); err != nil {
			result = append(result, violation{file: def.Source, location: formatLocation(appendPath(path, "transform")), message: err.Error()})
		}
		if err := eval.Check(spec.VisibleWhen); err != nil {
			result = append(result, violation{file: def.Source, location: formatLocation(appendPath(path, "visibleWhen")), message: err.Error()})
		}
		if (spec.Kind == "select" || spec.Kind == "multiselect") && len(spec.Options) == 0 {
			result = append(result, violation{file: def.Source, location: formatLocation(path), message: fmt.Sprintf("%s fields need options", spec.Kind)})
		}
	}
	return result
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	next = append(next, segment)
	return next
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
