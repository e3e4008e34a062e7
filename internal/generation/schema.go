// internal/generation/schema.go
package generation

// responseSchema guards against malformed generation payloads before they
// reach the cache. Schema violations route the attempt to the fallback path.
const responseSchema = `{
  "type": "object",
  "required": ["name", "items", "reasoning", "confidence"],
  "properties": {
    "id": {"type": "string"},
    "name": {"type": "string", "minLength": 1},
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "type"],
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string"},
          "type": {"type": "string"},
          "color": {"type": "string"}
        }
      }
    },
    "reasoning": {"type": "string"},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1}
  }
}`
