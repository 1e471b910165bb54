package render

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// YAML writes doc as YAML.
func YAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document as YAML: %w", err)
	}

	return enc.Close()
}

// JSON writes doc as indented JSON.
func JSON(w io.Writer, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document as JSON: %w", err)
	}

	data = append(data, '\n')
	_, err = w.Write(data)

	return err
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes doc in spew's debug format.
func Dump(w io.Writer, doc *Document) error {
	dumpConfig.Fdump(w, doc)

	return nil
}
