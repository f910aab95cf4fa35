// pkg/schemas/documents.go
package schemas

// PitchRequestSchema describes the body accepted by the generation
// endpoints. The idea field must be present and a string; emptiness is
// a business rule checked later, not a schema rule.
const PitchRequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "PitchRequest",
  "type": "object",
  "required": ["idea"],
  "properties": {
    "idea": {"type": "string"},
    "target_audience": {"type": "string"},
    "industry": {"type": "string"},
    "funding_stage": {"type": "string"},
    "presentation_style": {"type": "string"},
    "business_model": {"type": "string"},
    "competitor_context": {"type": "string"},
    "request_id": {"type": "string"}
  }
}`

// PitchResponseSchema describes the envelope returned by both
// generation endpoints, success and failure alike.
const PitchResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "PitchResponse",
  "type": "object",
  "required": ["deck", "success", "message"],
  "properties": {
    "deck": {"type": "string"},
    "success": {"type": "boolean"},
    "message": {"type": "string"}
  },
  "additionalProperties": false
}`

// HealthResponseSchema describes the health report. Key presence flags
// are booleans only; raw credential values never appear.
const HealthResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "HealthResponse",
  "type": "object",
  "required": ["status", "ai_provider", "mock_mode"],
  "properties": {
    "status": {"type": "string"},
    "ai_provider": {"type": "string"},
    "mock_mode": {"type": "boolean"},
    "gemini_available": {"type": "boolean"},
    "openai_configured": {"type": "boolean"}
  }
}`
