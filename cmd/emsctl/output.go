package main

import (
	"encoding/json"
	"os"
)

// writeJSONLine prints one JSON document to stdout. Output stays scriptable;
// human-facing text goes to stderr.
func writeJSONLine(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
