package params

import (
	"bytes"

	"github.com/tidwall/gjson"

	"github.com/kbukum/webclient/engine"
	"github.com/kbukum/webclient/request"
)

// Limit predicate constructors. A limit returns true to stop the loop;
// the response that triggers the stop is discarded, not collected.

// LimitAtCount stops once the cursor reaches n.
func LimitAtCount(n int64) request.Limit {
	return func(count int64, _ *engine.Response) bool {
		return count >= n
	}
}

// LimitWhenEmptyBody stops on an empty or whitespace-only response body.
func LimitWhenEmptyBody() request.Limit {
	return func(_ int64, resp *engine.Response) bool {
		return len(bytes.TrimSpace(resp.Body)) == 0
	}
}

// LimitWhenArrayEmpty stops when the JSON array at path is empty or
// not an array. An empty path inspects the body root.
func LimitWhenArrayEmpty(path string) request.Limit {
	return func(_ int64, resp *engine.Response) bool {
		var result gjson.Result
		if path == "" {
			result = gjson.ParseBytes(resp.Body)
		} else {
			result = gjson.GetBytes(resp.Body, path)
		}
		if !result.IsArray() {
			return true
		}
		return len(result.Array()) == 0
	}
}

// LimitWhenFieldMissing stops when the JSON field at path is absent.
func LimitWhenFieldMissing(path string) request.Limit {
	return func(_ int64, resp *engine.Response) bool {
		return !gjson.GetBytes(resp.Body, path).Exists()
	}
}
