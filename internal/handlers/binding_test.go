package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	Description string `json:"description"`
	Value       string `json:"value"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindTarget
		expectError bool
	}{
		{
			name:     "wrapped body",
			key:      "payment",
			body:     `{"payment": {"description": "Aluguel", "value": "1500.00"}}`,
			expected: bindTarget{Description: "Aluguel", Value: "1500.00"},
		},
		{
			name:     "flat body",
			key:      "payment",
			body:     `{"description": "Consultoria", "value": "320,50"}`,
			expected: bindTarget{Description: "Consultoria", Value: "320,50"},
		},
		{
			name:     "wrapper key absent falls back to flat",
			key:      "payment",
			body:     `{"other": "x", "description": "Licença", "value": "99.90"}`,
			expected: bindTarget{Description: "Licença", Value: "99.90"},
		},
		{
			name:     "different wrapper key",
			key:      "contract",
			body:     `{"contract": {"description": "Anual", "value": "1.00"}}`,
			expected: bindTarget{Description: "Anual", Value: "1.00"},
		},
		{
			name:        "wrong field type",
			key:         "payment",
			body:        `{"payment": {"description": 42}}`,
			expectError: true,
		},
		{
			name:        "wrapper key holds a scalar",
			key:         "payment",
			body:        `{"payment": "not an object"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result bindTarget
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
