package intake

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// #region schemas

const inputSchemaURL = "https://sumero.schemas.local/biometric-input.schema.json"

// Extra properties (age, occupation, source columns) are tolerated. The
// integer bounds also keep readings inside int range.
// blood_pressure is deliberately unconstrained: non-string values fall back
// to the default reading instead of failing.
const inputSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["sleep_hours", "stress_level", "resting_hr"],
  "properties": {
    "sleep_hours":  {"type": "number"},
    "stress_level": {"type": "integer", "minimum": 0, "maximum": 10},
    "resting_hr":   {"type": "integer", "minimum": 0, "maximum": 300}
  }
}`

const decisionSchemaURL = "https://sumero.schemas.local/decision.schema.json"

const decisionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "required": [
    "health_state", "workout_allowed", "nap_recommended", "priority_focus", "reason_codes",
    "recommended_bedtime", "work_cutoff_time", "briefing", "hydration_target_liters"
  ],
  "properties": {
    "health_state":    {"enum": ["Sleep_Deprived", "Under_Recovered", "Well_Recovered"]},
    "workout_allowed": {"type": "boolean"},
    "nap_recommended": {"type": "boolean"},
    "priority_focus":  {"enum": ["sleep", "recovery", "activity"]},
    "reason_codes": {
      "type": "array",
      "minItems": 1,
      "uniqueItems": true,
      "items": {"enum": ["LOW_SLEEP", "HIGH_STRESS", "HIGH_HR", "HIGH_BP", "GOOD_RECOVERY", "STABLE_BASELINE"]}
    },
    "recommended_bedtime":     {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
    "work_cutoff_time":        {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
    "briefing":                {"type": "string", "minLength": 1},
    "hydration_target_liters": {"type": "number", "exclusiveMinimum": 0}
  }
}`

var (
	compiledInput    = mustCompile(inputSchemaURL, inputSchema)
	compiledDecision = mustCompile(decisionSchemaURL, decisionSchema)
)

func mustCompile(url, schema string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(url, strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("intake: load schema %s: %v", url, err))
	}
	return c.MustCompile(url)
}

// #endregion schemas

// #region error-mapping

// leafCause walks to the most specific validation failure.
func leafCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// fieldOf names the offending property: the instance location for type
// errors, or the quoted name in a "missing properties" message.
func fieldOf(ve *jsonschema.ValidationError) string {
	if loc := strings.TrimPrefix(ve.InstanceLocation, "/"); loc != "" {
		return loc
	}
	if i := strings.IndexAny(ve.Message, `'"`); i >= 0 {
		q := ve.Message[i]
		rest := ve.Message[i+1:]
		if j := strings.IndexByte(rest, q); j >= 0 {
			return rest[:j]
		}
	}
	return ""
}

// #endregion error-mapping
