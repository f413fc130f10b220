package validator

// =============================================================================
// CRASH EARLY
// =============================================================================
//
// Two contracts are guarded here:
//
//   #Config  the merged vhdl_style.yaml, before any rule is built from it
//   #Tables  the facts handed to the rego policies
//
// A policy reading a misspelled field sees `undefined` and silently stops
// firing. Validating the tables before every evaluation turns that into an
// immediate error naming the field. When validation fails, fix the facts
// builder or the schema; do not relax the check.
// =============================================================================

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed config.cue facts.cue
var schemaFS embed.FS

// Validator checks data against one definition of an embedded schema.
type Validator struct {
	mu   sync.Mutex
	ctx  *cue.Context
	def  cue.Value
	path string
}

func load(file, def string) (*Validator, error) {
	ctx := cuecontext.New()
	src, err := schemaFS.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("loading embedded schema %s: %w", file, err)
	}
	schema := ctx.CompileBytes(src, cue.Filename(file))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", file, schema.Err())
	}
	v := schema.LookupPath(cue.ParsePath(def))
	if v.Err() != nil {
		return nil, fmt.Errorf("looking up %s definition: %w", def, v.Err())
	}
	return &Validator{ctx: ctx, def: v, path: def}, nil
}

// NewConfig returns a validator for the #Config definition.
func NewConfig() (*Validator, error) { return load("config.cue", "#Config") }

// NewFacts returns a validator for the #Tables definition.
func NewFacts() (*Validator, error) { return load("facts.cue", "#Tables") }

// Validate marshals data to JSON and unifies it with the definition.
func (v *Validator) Validate(data any) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling data to JSON: %w", err)
	}
	return v.ValidateJSON(jsonBytes)
}

// ValidateJSON validates JSON bytes directly against the definition.
func (v *Validator) ValidateJSON(jsonBytes []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling JSON as CUE: %w", dataValue.Err())
	}
	unified := v.def.Unify(dataValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s validation failed: %w", v.path, err)
	}
	return nil
}

// Errors returns one message per validation failure, or nil.
func (v *Validator) Errors(data any) []string {
	err := v.Validate(data)
	if err == nil {
		return nil
	}
	var out []string
	for _, e := range errors.Errors(err) {
		out = append(out, e.Error())
	}
	if len(out) == 0 {
		out = append(out, err.Error())
	}
	return out
}

var (
	configOnce sync.Once
	configV    *Validator
	configErr  error

	factsOnce sync.Once
	factsV    *Validator
	factsErr  error
)

// ValidateConfig checks a merged configuration map against #Config.
func ValidateConfig(cfg map[string]any) error {
	configOnce.Do(func() { configV, configErr = NewConfig() })
	if configErr != nil {
		return configErr
	}
	return configV.Validate(cfg)
}

// ValidateFacts checks fact tables against #Tables.
func ValidateFacts(tables any) error {
	factsOnce.Do(func() { factsV, factsErr = NewFacts() })
	if factsErr != nil {
		return factsErr
	}
	return factsV.Validate(tables)
}
