package servers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	spec, err := GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/requests",
		"/requests/{requestId}/status",
		"/orders/{orderId}/items/{itemId}/status",
		"/tables/allocations",
		"/notifications/{channel}",
		"/assistant/{sessionId}/messages",
	} {
		assert.NotNil(t, spec.Paths.Find(path), path)
	}
	assert.Contains(t, spec.Components.Schemas, "Error")
}

func TestSwaggerDoc_ReadDoc(t *testing.T) {
	doc := swaggerDoc{}.ReadDoc()

	assert.Contains(t, doc, `"openapi":"3.0.3"`)
	assert.Contains(t, doc, "UpdateOrderItemStatus")
}
