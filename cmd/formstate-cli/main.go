package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/prompt"
)

func main() {
	defPath := flag.String("definition", "", "form definition file (JSON or YAML)")
	formID := flag.String("form", "", "form id when the definition directory holds several forms")
	format := flag.String("format", "json", "output format: json or yaml")
	output := flag.String("output", "", "output file (stdout if empty)")
	debug := flag.Bool("debug", false, "log registration diagnostics")
	attempts := flag.Int("attempts", 3, "attempts per field before giving up")
	flag.Parse()

	if *defPath == "" {
		log.Fatalf("missing -definition")
	}
	def, err := loadDefinition(*defPath, *formID)
	if err != nil {
		log.Fatalf("Failed to load definition: %v", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	ctrl, fields, err := def.NewController(
		form.WithLogger(form.StdLogger(logger)),
		form.WithDebug(*debug || def.Debug),
	)
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}

	states := make([]field.State, 0, len(fields))
	for _, f := range fields {
		states = append(states, f)
	}

	ctx := form.WithController(context.Background(), ctrl)
	runner := prompt.New(
		prompt.WithMaxAttempts(*attempts),
		prompt.WithTheme(prompt.Theme{ErrorPrefix: "✗ ", InfoPrefix: "→ "}),
	)
	result, err := runner.Run(ctx, states...)
	if err != nil {
		log.Fatalf("Failed to fill form: %v", err)
	}
	if !result.Valid {
		names := make([]string, 0, len(result.Errors))
		for name := range result.Errors {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(os.Stderr, "%s: %s\n", name, result.Errors[name])
		}
		os.Exit(1)
	}

	payload, err := encode(result.Value.Interface(), *format)
	if err != nil {
		log.Fatalf("Failed to encode value: %v", err)
	}
	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form value written to %s\n", *output)
		return
	}
	fmt.Print(string(payload))
}

func loadDefinition(path, id string) (definition.Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return definition.Definition{}, err
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return definition.Definition{}, err
		}
		return definition.Parse(data, filepath.Base(path))
	}

	catalog, err := definition.LoadFS(os.DirFS(path))
	if err != nil {
		return definition.Definition{}, err
	}
	ids := catalog.IDs()
	if id == "" {
		if len(ids) != 1 {
			return definition.Definition{}, fmt.Errorf("%s holds %d forms, select one with -form", path, len(ids))
		}
		id = ids[0]
	}
	def, ok := catalog.Form(id)
	if !ok {
		return definition.Definition{}, fmt.Errorf("%w: %q in %s", definition.ErrFormNotFound, id, path)
	}
	return def, nil
}

func encode(v any, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Marshal(v)
	case "json", "":
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
