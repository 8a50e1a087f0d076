package domain

// allowedMetadataKeys is the closed set of metadata keys that may appear in a
// persisted audit entry. Anything else is dropped before the entry is queued:
// clinical content (names, diagnoses, free text) can never reach the audit
// store because no key for it exists here.
var allowedMetadataKeys = map[string]struct{}{
	"file_size":           {},
	"file_type":           {},
	"category":            {},
	"duration_ms":         {},
	"page":                {},
	"limit":               {},
	"reason":              {},
	"required_role":       {},
	"user_role":           {},
	"required_permission": {},
	"resource_count":      {},
}

// SanitizeMetadata returns a copy of metadata containing only allow-listed
// keys with primitive values. Returns nil for empty input or when nothing
// survives the filter.
func SanitizeMetadata(metadata map[string]any) map[string]any {
	if len(metadata) == 0 {
		return nil
	}

	sanitized := make(map[string]any, len(metadata))
	for key, value := range metadata {
		if _, ok := allowedMetadataKeys[key]; !ok {
			continue
		}
		if !isPrimitive(value) {
			continue
		}
		sanitized[key] = value
	}

	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}

// isPrimitive reports whether the value is a scalar safe for audit persistence.
func isPrimitive(value any) bool {
	switch value.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}
