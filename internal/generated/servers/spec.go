package servers

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

var (
	swaggerOnce sync.Once
	swaggerSpec *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed and validated OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		spec, err := loader.LoadFromData(openapiYAML)
		if err != nil {
			swaggerErr = fmt.Errorf("error loading OpenAPI document: %w", err)
			return
		}
		if err = spec.Validate(loader.Context); err != nil {
			swaggerErr = fmt.Errorf("error validating OpenAPI document: %w", err)
			return
		}
		swaggerSpec = spec
	})
	return swaggerSpec, swaggerErr
}

type swaggerDoc struct{}

// ReadDoc renders the document as JSON for the swagger UI.
func (swaggerDoc) ReadDoc() string {
	spec, err := GetSwagger()
	if err != nil {
		return "{}"
	}
	doc, err := json.Marshal(spec)
	if err != nil {
		return "{}"
	}
	return string(doc)
}

// RegisterSwaggerDoc makes the document available to swag based UIs under swag.Name.
func RegisterSwaggerDoc() {
	swag.Register(swag.Name, swaggerDoc{})
}
