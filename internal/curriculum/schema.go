package curriculum

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const localeSchemaJSON = `{
  "type": "object",
  "required": ["title", "subtitle", "back", "start_exam", "question", "score", "retry", "courses"],
  "properties": {
    "title": {"$ref": "#/definitions/text"},
    "subtitle": {"$ref": "#/definitions/text"},
    "back": {"$ref": "#/definitions/text"},
    "start_exam": {"$ref": "#/definitions/text"},
    "question": {"$ref": "#/definitions/text"},
    "score": {"$ref": "#/definitions/text"},
    "retry": {"$ref": "#/definitions/text"},
    "courses": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "required": ["title", "description", "modules", "exam"],
        "properties": {
          "title": {"$ref": "#/definitions/text"},
          "description": {"$ref": "#/definitions/text"},
          "modules": {"$ref": "#/definitions/text"},
          "exam": {"$ref": "#/definitions/text"}
        }
      }
    }
  },
  "definitions": {
    "text": {"type": "string", "minLength": 1}
  }
}`

const courseSchemaJSON = `{
  "type": "object",
  "required": ["id", "modules"],
  "properties": {
    "id": {"type": "string", "pattern": "^[a-z0-9-]+$"},
    "order": {"type": "integer"},
    "modules": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "body"],
        "properties": {
          "title": {"$ref": "#/definitions/text"},
          "body": {"$ref": "#/definitions/text"}
        }
      }
    },
    "technologies": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "summary"],
        "properties": {
          "name": {"$ref": "#/definitions/text"},
          "summary": {"$ref": "#/definitions/text"}
        }
      }
    },
    "exam": {
      "type": "object",
      "anyOf": [{"required": ["bank_file"]}, {"required": ["questions"]}],
      "properties": {
        "bank_file": {"$ref": "#/definitions/text"},
        "questions": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["prompt", "options", "answer"],
            "properties": {
              "prompt": {"$ref": "#/definitions/text"},
              "options": {"type": "array", "minItems": 4, "maxItems": 4, "items": {"$ref": "#/definitions/text"}},
              "answer": {"type": "integer", "minimum": 0, "maximum": 3}
            }
          }
        }
      }
    }
  },
  "definitions": {
    "text": {"type": "string", "minLength": 1}
  }
}`

var (
	localeSchema = mustSchema(localeSchemaJSON)
	courseSchema = mustSchema(courseSchemaJSON)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return s
}

// validate checks a decoded YAML document against schema and joins every
// violation into one error.
func validate(schema *gojsonschema.Schema, doc any) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating document: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
