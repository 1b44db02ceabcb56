// Command schema-cli inspects the shipped configuration-schema catalog:
// listing schemas, validating raw value files, computing field visibility,
// editing records interactively, and exporting the model as OpenAPI or JSON
// Schema documents.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RustWorks/webadmin/pkg/catalog"
	exportjsonschema "github.com/RustWorks/webadmin/pkg/export/jsonschema"
	exportopenapi "github.com/RustWorks/webadmin/pkg/export/openapi"
	"github.com/RustWorks/webadmin/pkg/schema"
	"github.com/RustWorks/webadmin/pkg/validate"
	"github.com/RustWorks/webadmin/pkg/visibility"
)

func main() {
	action := flag.String("action", "list", "list | validate | visible | edit | export-openapi | export-jsonschema")
	schemaKey := flag.String("schema", "", "schema key to operate on")
	valuesPath := flag.String("values", "", "YAML or JSON file with raw field values")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	reg, err := catalog.Build()
	if err != nil {
		log.Fatalf("Failed to build schema catalog: %v", err)
	}

	switch *action {
	case "list":
		listSchemas(reg)
	case "validate":
		runValidate(reg, *schemaKey, *valuesPath, *output)
	case "visible":
		runVisible(reg, *schemaKey, *valuesPath)
	case "edit":
		runEdit(reg, *schemaKey, *output)
	case "export-openapi":
		exportOpenAPI(reg, *output)
	case "export-jsonschema":
		exportJSONSchema(reg, *schemaKey, *output)
	default:
		log.Fatalf("Unknown action %q", *action)
	}
}

func listSchemas(reg *schema.Registry) {
	for _, key := range reg.Keys() {
		s, _ := reg.Schema(key)
		name := s.Plural
		if name == "" {
			name = key
		}
		fmt.Printf("%-16s %s (%d fields, %d sections)\n", key, name, len(s.Fields()), len(s.Sections))
	}
}

func runValidate(reg *schema.Registry, key, valuesPath, output string) {
	raw := loadRawValues(valuesPath)
	normalized, err := validate.Validate(reg, key, raw, nil)
	if err != nil {
		reportValidation(err)
	}
	writeJSON(normalized, output)
}

func runVisible(reg *schema.Registry, key, valuesPath string) {
	s, ok := reg.Schema(key)
	if !ok {
		log.Fatalf("Unknown schema %q", key)
	}
	values := looseValues(s, loadRawValues(valuesPath))
	visible := visibility.Fields(s, values)
	for _, f := range s.Fields() {
		if visible[f.ID] {
			fmt.Println(f.ID)
		}
	}
	for _, sec := range visibility.Sections(s, values) {
		fmt.Printf("[section] %s\n", sec.Title)
	}
}

func runEdit(reg *schema.Registry, key, output string) {
	s, ok := reg.Schema(key)
	if !ok {
		log.Fatalf("Unknown schema %q", key)
	}
	raw, err := editRecord(s)
	if err != nil {
		log.Fatalf("Edit aborted: %v", err)
	}
	normalized, err := validate.Validate(reg, key, raw, nil)
	if err != nil {
		reportValidation(err)
	}
	writeJSON(normalized, output)
}

func exportOpenAPI(reg *schema.Registry, output string) {
	doc, err := exportopenapi.Document(reg)
	if err != nil {
		log.Fatalf("Failed to export: %v", err)
	}
	writeJSON(doc, output)
}

func exportJSONSchema(reg *schema.Registry, key, output string) {
	s, ok := reg.Schema(key)
	if !ok {
		log.Fatalf("Unknown schema %q", key)
	}
	doc, err := exportjsonschema.Document(s)
	if err != nil {
		log.Fatalf("Failed to export: %v", err)
	}
	writeBytes(doc, output)
}

// loadRawValues reads a YAML (or JSON) mapping of field id to scalar or
// sequence, normalizing everything to the form-shaped RawValues the
// validation engine accepts.
func loadRawValues(path string) validate.RawValues {
	if path == "" {
		return validate.RawValues{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read values: %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Fatalf("Failed to parse values: %v", err)
	}
	raw := make(validate.RawValues, len(doc))
	for id, v := range doc {
		switch typed := v.(type) {
		case nil:
			raw[id] = nil
		case []any:
			for _, item := range typed {
				raw[id] = append(raw[id], fmt.Sprint(item))
			}
		default:
			raw[id] = []string{fmt.Sprint(typed)}
		}
	}
	return raw
}

// looseValues coerces raw input to plain string values, which is enough for
// display-condition matching.
func looseValues(s *schema.Schema, raw validate.RawValues) schema.Values {
	values := make(schema.Values, len(raw))
	for id, elements := range raw {
		if !s.Has(id) || len(elements) == 0 {
			continue
		}
		if len(elements) > 1 {
			values[id] = schema.StringList(elements...)
			continue
		}
		values[id] = schema.String(elements[0])
	}
	for _, f := range s.Fields() {
		if _, ok := values[f.ID]; !ok && len(f.Default) > 0 {
			values[f.ID] = schema.String(f.Default[0])
		}
	}
	return values
}

func reportValidation(err error) {
	var fieldErrs validate.Errors
	if !errors.As(err, &fieldErrs) {
		log.Fatalf("Validation failed: %v", err)
	}
	for _, fe := range fieldErrs {
		fmt.Fprintf(os.Stderr, "%-24s %-14s %s\n", fe.Field, fe.Rule, fe.Message)
	}
	os.Exit(1)
}

func writeJSON(v any, output string) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	writeBytes(append(data, '\n'), output)
}

func writeBytes(data []byte, output string) {
	if output == "" {
		fmt.Print(string(data))
		return
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Written to %s\n", output)
}
