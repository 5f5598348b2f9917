package middleware

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	contextutils "verbtrainer/internal/utils"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/requests.yaml
var schemaFS embed.FS

// SchemaLoader holds the compiled request body schemas keyed by "METHOD /path"
type SchemaLoader struct {
	schemas map[string]*gojsonschema.Schema
}

// NewSchemaLoader creates an empty schema loader
func NewSchemaLoader() *SchemaLoader {
	return &SchemaLoader{
		schemas: make(map[string]*gojsonschema.Schema),
	}
}

// LoadSchemas compiles every schema in a YAML document of the form
// {"METHOD /path": <json schema>}
func (sl *SchemaLoader) LoadSchemas(data []byte) error {
	var docs map[string]interface{}
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return contextutils.WrapError(err, "failed to parse request schemas as YAML")
	}

	for key, doc := range docs {
		method, path, ok := strings.Cut(key, " ")
		if !ok || path == "" {
			return contextutils.ErrorWithContextf("schema key %q must be \"METHOD /path\"", key)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
		if err != nil {
			return contextutils.WrapErrorf(err, "failed to compile schema %s", key)
		}
		sl.schemas[schemaKey(method, path)] = schema
	}
	return nil
}

// MustLoadEmbeddedSchemas returns a loader for the request schemas compiled
// into the binary. It panics on a malformed document.
func MustLoadEmbeddedSchemas() *SchemaLoader {
	data, err := schemaFS.ReadFile("schemas/requests.yaml")
	if err != nil {
		panic(err)
	}
	loader := NewSchemaLoader()
	if err := loader.LoadSchemas(data); err != nil {
		panic(err)
	}
	return loader
}

// HasSchema reports whether a request body schema exists for the route
func (sl *SchemaLoader) HasSchema(method, path string) bool {
	_, ok := sl.schemas[schemaKey(method, path)]
	return ok
}

// Routes lists the routes with a schema, sorted
func (sl *SchemaLoader) Routes() []string {
	routes := make([]string, 0, len(sl.schemas))
	for key := range sl.schemas {
		routes = append(routes, key)
	}
	sort.Strings(routes)
	return routes
}

// ValidateBody validates a raw JSON body against the schema for the route.
// Routes without a schema accept any body.
func (sl *SchemaLoader) ValidateBody(method, path string, body []byte) error {
	schema, ok := sl.schemas[schemaKey(method, path)]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidFormat, contextutils.SeverityWarn,
			"Request body is not valid JSON", err.Error(), err)
	}

	if !result.Valid() {
		var validationErrors []string
		for _, validationErr := range result.Errors() {
			validationErrors = append(validationErrors, fmt.Sprintf("%s: %s", validationErr.Field(), validationErr.Description()))
		}
		return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityWarn,
			"Request data does not match the API specification", strings.Join(validationErrors, "; "))
	}
	return nil
}

func schemaKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
