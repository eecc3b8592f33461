package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"tags": {"type": "array", "items": {"type": "string"}}
	}
}`

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile("broken", []byte(`{"type": 12}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "broken", loadErr.Name)
	assert.Contains(t, err.Error(), "failed to load schema broken")
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("broken", []byte(`not json`)) })
	assert.NotPanics(t, func() { MustCompile("person", []byte(personSchema)) })
}

func TestValidator_Validate(t *testing.T) {
	v, err := Compile("person", []byte(personSchema))
	require.NoError(t, err)
	assert.Equal(t, "person", v.Name())

	tests := []struct {
		name      string
		doc       string
		wantField string
	}{
		{"valid", `{"name": "test", "tags": ["a"]}`, ""},
		{"missing field", `{"age": 30}`, "(root)"},
		{"wrong type", `{"name": 5}`, "name"},
		{"array item", `{"name": "x", "tags": [1]}`, "tags.0"},
		{"malformed", `{ invalid json }`, "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate([]byte(tt.doc))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.wantField, validationErr.Errors[0].Field)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}
