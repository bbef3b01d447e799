package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-recordconv/pkg/convert"
	"github.com/goliatone/go-recordconv/pkg/def"
	pkgopenapi "github.com/goliatone/go-recordconv/pkg/openapi"
	"github.com/goliatone/go-recordconv/pkg/record"
)

func main() {
	source := flag.String("source", "records.yaml", "record definition document path")
	openapiDoc := flag.Bool("openapi", false, "treat the source as an OpenAPI document")
	typeName := flag.String("type", "", "record type name (prompted if empty)")
	target := flag.String("target", "", "conversion target (prompted if empty)")
	mode := flag.String("mode", "", "conversion mode: edit or edit-process")
	tableName := flag.String("table", "", "table name override for the sqltable target")
	namespace := flag.String("namespace", "", "namespace override for the avro target")
	nullable := flag.Bool("nullable", false, "emit nullable schemas for the jsonschema target")
	include := flag.String("include", "", "comma-separated field names to include")
	exclude := flag.String("exclude", "", "comma-separated field names to exclude")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	types, err := loadTypes(ctx, *source, *openapiDoc)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *source, err)
	}

	typ, err := pickType(types, *typeName)
	if err != nil {
		log.Fatalf("Failed to select type: %v", err)
	}

	registry := convert.Default()

	name := strings.TrimSpace(*target)
	if name == "" {
		if name, err = pickTarget(registry.Names()); err != nil {
			log.Fatalf("Failed to select target: %v", err)
		}
	}

	converter, err := registry.Get(name)
	if err != nil {
		log.Fatalf("%v", err)
	}

	convMode, err := parseMode(*mode)
	if err != nil {
		log.Fatalf("%v", err)
	}

	result, err := converter.Convert(typ, convert.Request{
		Context:   ctx,
		Mode:      convMode,
		Include:   splitList(*include),
		Exclude:   splitList(*exclude),
		Namespace: *namespace,
		TableName: *tableName,
		Nullable:  *nullable,
	})
	if err != nil {
		log.Fatalf("Failed to convert %s: %v", typ.Name, err)
	}

	doc, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	doc = append(doc, '\n')

	if *output != "" {
		if err := os.WriteFile(*output, doc, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("%s schema written to %s\n", name, *output)
	} else {
		fmt.Print(string(doc))
	}
}

func loadTypes(ctx context.Context, source string, openapiDoc bool) (map[string]*record.Type, error) {
	if openapiDoc {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, err
		}
		return pkgopenapi.LoadTypes(ctx, data)
	}

	set, err := def.LoadFile(source)
	if err != nil {
		return nil, err
	}
	types := make(map[string]*record.Type)
	for _, name := range set.Names() {
		typ, _ := set.Type(name)
		types[name] = typ
	}
	return types, nil
}

func pickType(types map[string]*record.Type, name string) (*record.Type, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		typ, ok := types[name]
		if !ok {
			return nil, fmt.Errorf("type %q not found in source", name)
		}
		return typ, nil
	}

	names := make([]string, 0, len(types))
	for n := range types {
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) == 1 {
		return types[names[0]], nil
	}

	prompt := &survey.Select{
		Message: "Record type:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &name); err != nil {
		return nil, err
	}
	return types[name], nil
}

func pickTarget(names []string) (string, error) {
	var out string
	prompt := &survey.Select{
		Message: "Conversion target:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", err
	}
	return out, nil
}

func parseMode(raw string) (record.Mode, error) {
	switch strings.TrimSpace(raw) {
	case "":
		return record.ModeDefault, nil
	case "edit":
		return record.ModeEdit, nil
	case "edit-process":
		return record.ModeEditProcess, nil
	default:
		return record.ModeDefault, fmt.Errorf("unknown mode %q", raw)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
