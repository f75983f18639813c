package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/parley/pkg/domain"
)

// rawNode mirrors the on-disk node record. Decoded via mapstructure so that
// JSON- and YAML-sourced documents share one mapping.
type rawNode struct {
	ID       string   `mapstructure:"id"`
	Intent   []string `mapstructure:"intent"`
	Slot     []string `mapstructure:"slot"`
	Response string   `mapstructure:"response"`
	Children []string `mapstructure:"childnode"`
}

// rawSlot mirrors the slot table columns (slot / values / query).
type rawSlot struct {
	Values string `mapstructure:"values"`
	Query  string `mapstructure:"query"`
}

// LoadFiles reads one or more scenario documents plus a slot table and
// builds a validated Store.
//
// Node IDs are namespaced by the scenario file basename ("clothes-shop/0")
// so multiple scenarios can load side by side; a bare child reference is
// resolved within its own scenario. IDs already containing "/" are kept
// as written, which allows cross-scenario jumps.
func LoadFiles(scenarioPaths []string, slotPath string) (*Store, error) {
	slots, err := loadSlotTable(slotPath)
	if err != nil {
		return nil, err
	}

	var nodes []domain.Node
	for _, path := range scenarioPaths {
		scoped, err := loadScenarioFile(path)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, scoped...)
	}

	return New(nodes, slots)
}

func loadScenarioFile(path string) ([]domain.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.LoadError{Source: path, Reason: err.Error()}
	}

	var docs []map[string]any
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, &domain.LoadError{Source: path, Reason: fmt.Sprintf("malformed document: %v", err)}
	}

	scope := scenarioName(path)

	nodes := make([]domain.Node, 0, len(docs))
	for i, doc := range docs {
		var raw rawNode
		if err := mapstructure.Decode(doc, &raw); err != nil {
			return nil, &domain.LoadError{Source: path, Reason: fmt.Sprintf("node %d: %v", i, err)}
		}
		if raw.ID == "" {
			return nil, &domain.LoadError{Source: path, Reason: fmt.Sprintf("node %d has no id", i)}
		}

		node := domain.Node{
			ID:       qualify(scope, raw.ID),
			Intents:  raw.Intent,
			Slots:    raw.Slot,
			Response: raw.Response,
		}
		for _, child := range raw.Children {
			node.Children = append(node.Children, qualify(scope, child))
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func loadSlotTable(path string) ([]domain.SlotDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.LoadError{Source: path, Reason: err.Error()}
	}

	// yaml.v3 preserves document order through the node API; a plain map
	// would randomize it and with it the error reporting.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &domain.LoadError{Source: path, Reason: fmt.Sprintf("malformed slot table: %v", err)}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, &domain.LoadError{Source: path, Reason: "empty slot table"}
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, &domain.LoadError{Source: path, Reason: "slot table must be a mapping of name to definition"}
	}

	var defs []domain.SlotDefinition
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		name := mapping.Content[i].Value

		var body map[string]any
		if err := mapping.Content[i+1].Decode(&body); err != nil {
			return nil, &domain.LoadError{Source: path, Reason: fmt.Sprintf("slot %q: %v", name, err)}
		}
		var raw rawSlot
		if err := mapstructure.Decode(body, &raw); err != nil {
			return nil, &domain.LoadError{Source: path, Reason: fmt.Sprintf("slot %q: %v", name, err)}
		}

		defs = append(defs, domain.SlotDefinition{
			Name:    name,
			Pattern: raw.Values,
			Prompt:  raw.Query,
		})
	}
	return defs, nil
}

// scenarioName derives the namespace from the file basename, stripped of
// extension and a conventional "scenario-" prefix.
func scenarioName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimPrefix(base, "scenario-")
}

func qualify(scope, id string) string {
	if strings.Contains(id, "/") {
		return id
	}
	return scope + "/" + id
}
