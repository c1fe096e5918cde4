package schemas

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"page-builder-backend/internal/content"
	"page-builder-backend/pkg/logger"
)

// Issue is one schema violation. Issues are advisory: they are shown on the
// review step and never block a save.
type Issue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (i Issue) String() string {
	location := strings.TrimSpace(i.Location)
	if location == "" {
		location = "#"
	}
	return fmt.Sprintf("%s: %s", location, i.Message)
}

// Validate checks c against the schema registered for tag. Unknown tags and
// entries without a schema have nothing to report.
func (r *Registry) Validate(tag string, c content.Map) []Issue {
	entry, ok := r.Lookup(tag)
	if !ok || entry.Schema == nil {
		return nil
	}

	schema, err := r.compiledSchema(entry)
	if err != nil {
		logger.Error(err, "Failed to compile component schema", map[string]interface{}{
			"component_type": entry.Type,
		})
		return []Issue{{Location: "#", Message: "schema unavailable"}}
	}

	instance, err := toInstance(c)
	if err != nil {
		return []Issue{{Location: "#", Message: err.Error()}}
	}

	if err := schema.Validate(instance); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return collectIssues(validationErr)
		}
		return []Issue{{Location: "#", Message: err.Error()}}
	}
	return nil
}

func (r *Registry) compiledSchema(entry Entry) (*jsonschema.Schema, error) {
	r.mu.RLock()
	schema, ok := r.compiled[entry.Type]
	r.mu.RUnlock()
	if ok {
		return schema, nil
	}

	schema, err := compileSchema(entry.Schema)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.compiled[entry.Type] = schema
	r.mu.Unlock()
	return schema, nil
}

func compileSchema(schema map[string]interface{}) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// toInstance re-decodes c so every number is a float64 and every nested value
// has the generic JSON shape the validator expects.
func toInstance(c content.Map) (interface{}, error) {
	encoded, err := content.Encode(c)
	if err != nil {
		return nil, err
	}
	var instance interface{}
	if err := json.Unmarshal([]byte(encoded), &instance); err != nil {
		return nil, err
	}
	return instance, nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
