// Package docs provides the embedded System API documentation.
package docs

import (
	_ "embed"
)

// OpenAPISpec contains the embedded OpenAPI specification in YAML format.
// It is served by the docs handler at /openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
