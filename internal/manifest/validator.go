package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "manifest.schema.json"

//go:embed schema/manifest.schema.json
var schemaBytes []byte

var english = message.NewPrinter(language.English)

// getSchema compiles the embedded schema on first use.
var getSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("decoding embedded schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("registering schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return s, nil
})

// ValidationResult is the outcome of checking a manifest against the schema.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one problem found in a manifest.
type ValidationIssue struct {
	Path    string // JSON pointer into the manifest, e.g. "/classes/0/selected"
	Message string
	Keyword string // failed schema keyword or consistency check
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Validate checks raw manifest YAML against the embedded schema. A non-nil
// error means the document could not be checked at all; schema violations
// are reported in the result.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	// The validator expects JSON values, numbers as json.Number.
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("manifest is not representable as JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	err = schema.Validate(inst)
	var verr *jsonschema.ValidationError
	switch {
	case err == nil:
		return &ValidationResult{Valid: true}, nil
	case errors.As(err, &verr):
		return &ValidationResult{Issues: leafIssues(verr)}, nil
	default:
		return nil, fmt.Errorf("validating manifest: %w", err)
	}
}

// ValidateFile reads path from fs and validates it.
func ValidateFile(fs afero.Fs, path string) (*ValidationResult, error) {
	data, err := readFile(fs, path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// leafIssues flattens the error tree into its leaves, one issue per distinct
// location and keyword, ordered by location.
func leafIssues(root *jsonschema.ValidationError) []ValidationIssue {
	seen := make(map[string]bool)
	var issues []ValidationIssue

	stack := []*jsonschema.ValidationError{root}
	for len(stack) > 0 {
		ve := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(ve.Causes) > 0 {
			stack = append(stack, ve.Causes...)
			continue
		}

		issue := ValidationIssue{Message: ve.Error()}
		if len(ve.InstanceLocation) > 0 {
			issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		if ve.ErrorKind != nil {
			issue.Message = ve.ErrorKind.LocalizedString(english)
			if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
				issue.Keyword = kw[len(kw)-1]
			}
		}

		key := issue.Path + "\x00" + issue.Keyword + "\x00" + issue.Message
		if !seen[key] {
			seen[key] = true
			issues = append(issues, issue)
		}
	}

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return issues
}
