package client

import (
	"encoding/json"
	"fmt"
)

// JSONBody serializes v for use as a JSONPost/JSONPut request body.
func JSONBody(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("client: encode json body: %w", err)
	}
	return data, nil
}
