// Package agent exposes shed operations as LLM-callable tools.
//
// Tools are declared as Defs and collected in a Registry, which renders
// them in the Anthropic tool-use schema and dispatches calls. A call
// always produces a JSON string; failures are folded into an error
// envelope so the conversation with the model never breaks.
package agent

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnnamedTool   = errors.New("tool has no name")
	ErrDuplicateTool = errors.New("tool already registered")
	ErrInvalidParam  = errors.New("tool parameter needs a name and a type")
)

// Param is a single parameter of a tool.
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Enum        []string
}

// Def is a registered tool: its schema plus the function that runs it.
type Def struct {
	Name        string
	Description string
	Params      []Param
	Run         func(args map[string]any) (string, error)
}

// Schema is the Anthropic tool-use wire shape for one tool.
type Schema struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"input_schema"`
}

// InputSchema is the JSON Schema object describing a tool's arguments.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Property describes one argument in an InputSchema.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
}

// Registry collects tool definitions and dispatches calls. Tools keep
// their registration order.
type Registry struct {
	defs  []Def
	index map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a tool. Names must be unique and every parameter needs a
// name and a type.
func (r *Registry) Register(def Def) error {
	if def.Name == "" {
		return ErrUnnamedTool
	}

	if _, exists := r.index[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, def.Name)
	}

	for _, p := range def.Params {
		if p.Name == "" || p.Type == "" {
			return fmt.Errorf("%w: %s", ErrInvalidParam, def.Name)
		}
	}

	r.index[def.Name] = len(r.defs)
	r.defs = append(r.defs, def)

	return nil
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Def {
	out := make([]Def, len(r.defs))
	copy(out, r.defs)

	return out
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Def, bool) {
	i, ok := r.index[name]
	if !ok {
		return Def{}, false
	}

	return r.defs[i], true
}

// Schemas renders every tool in the Anthropic tool-use schema, in
// registration order.
func (r *Registry) Schemas() []Schema {
	out := make([]Schema, 0, len(r.defs))

	for _, def := range r.defs {
		properties := make(map[string]Property, len(def.Params))
		required := make([]string, 0, len(def.Params))

		for _, p := range def.Params {
			properties[p.Name] = Property{
				Type:        p.Type,
				Description: p.Description,
				Enum:        p.Enum,
			}

			if p.Required {
				required = append(required, p.Name)
			}
		}

		out = append(out, Schema{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: InputSchema{
				Type:       "object",
				Properties: properties,
				Required:   required,
			},
		})
	}

	return out
}

// Call runs a tool by name and returns its JSON result. An unknown tool
// or a failed run comes back as an error envelope, never as a Go error;
// the model sees the failure and can react to it.
func (r *Registry) Call(name string, args map[string]any) string {
	def, ok := r.Get(name)
	if !ok {
		return errorJSON("Unknown tool: " + name)
	}

	result, runErr := def.Run(args)
	if runErr != nil {
		return errorJSON(runErr.Error())
	}

	return result
}

// errorJSON renders the envelope every failed call returns.
func errorJSON(msg string) string {
	data, _ := json.Marshal(map[string]string{"error": msg})

	return string(data)
}
