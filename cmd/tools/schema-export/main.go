// cmd/tools/schema-export/main.go
//
// schema-export writes the embedded JSON Schemas to disk so API clients
// and contract tests can consume them without importing the Go module.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"pitchforge/pkg/schemas"
)

var documents = map[string]string{
	"pitch-request.schema.json":   schemas.PitchRequestSchema,
	"pitch-response.schema.json":  schemas.PitchResponseSchema,
	"health-response.schema.json": schemas.HealthResponseSchema,
}

func main() {
	dir := flag.String("dir", "docs/schemas", "Directory to write schema files into")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0755); err != nil {
		fmt.Printf("Error creating directory %s: %v\n", *dir, err)
		os.Exit(1)
	}

	for name, doc := range documents {
		pretty, err := indentJSON(doc)
		if err != nil {
			fmt.Printf("Error formatting %s: %v\n", name, err)
			os.Exit(1)
		}

		path := filepath.Join(*dir, name)
		if err := os.WriteFile(path, pretty, 0644); err != nil {
			fmt.Printf("Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	}

	fmt.Printf("Exported %d schemas to %s\n", len(documents), *dir)
}

func indentJSON(doc string) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(doc), "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
