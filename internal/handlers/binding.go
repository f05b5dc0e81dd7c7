package handlers

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
)

// BindNestedOrFlat binds the request body to obj, accepting both the wrapped
// form {"payment": {...}} and the flat form {...}. Legacy clients send the
// wrapped shape; newer ones send the object directly.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
	}
	// Put the body back so later middleware can still read it
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err == nil {
		if inner, ok := wrapper[key]; ok {
			return json.Unmarshal(inner, obj)
		}
	}

	return json.Unmarshal(body, obj)
}
