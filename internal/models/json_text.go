package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Structured columns (scores, question options, module content) are stored
// as JSON text. Writes always emit valid JSON; reads that meet malformed text
// decode to the empty value and log through the global zap logger instead of
// failing the query.

func jsonValue(kind string, v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", kind, err)
	}
	return string(data), nil
}

func jsonBytes(kind string, value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported type %T for %s", value, kind)
	}
}

// decodeJSONText unmarshals data into dst and reports whether it succeeded.
// Empty input leaves dst untouched and counts as success.
func decodeJSONText(kind string, data []byte, dst any) bool {
	if len(data) == 0 {
		return true
	}
	if err := json.Unmarshal(data, dst); err != nil {
		zap.L().Warn("malformed stored json, using empty value",
			zap.String("kind", kind),
			zap.ByteString("raw", data),
			zap.Error(err),
		)
		return false
	}
	return true
}
