package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

func projectToTSV(f io.Writer, columns []string, data map[string]string) error {
	w := csv.NewWriter(f)
	w.Comma = '\t'

	record := []string{}
	for _, column := range columns {
		record = append(record, clean(data[column]))
	}

	w.Write(columns)
	w.Write(record)
	w.Flush()

	return w.Error()
}

// projectToYAML writes the project data as a YAML mapping with the keys in column order.
func projectToYAML(f io.Writer, columns []string, data map[string]string) error {
	node := yaml.Node{
		Kind: yaml.MappingNode,
	}

	for _, column := range columns {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: column},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: data[column]})
	}

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)

	if err := encoder.Encode(&node); err != nil {
		return fmt.Errorf("error encoding project data (%v)", err)
	}

	return encoder.Close()
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
