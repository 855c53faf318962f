package schema

import (
	"github.com/cbroglie/mustache"
)

const hintTemplate = `How to set up the {{typeName}} JSON schema in your editor:
1. IntelliJ IDEA: go to Settings > Languages & Frameworks > Schemas and DTOs > JSON Schema Mappings and add the {{{schemaPath}}} schema file
   VS Code: add {{{schemaPath}}} to "json.schemas" (or "yaml.schemas") in settings.json
2. Set file name patterns for that schema like: {{#patterns}}{{{pattern}}}{{^last}}, {{/last}}{{/patterns}}
Now you can start writing fixture files with autocompletion enabled.`

// EditorHint describes how to map a generated schema onto fixture files in
// an editor.
type EditorHint struct {
	TypeName   string
	SchemaPath string
	Patterns   []string
}

// NewEditorHint builds the hint for the schema of typeName stored at
// schemaPath, for fixtures using the given file extensions.
func NewEditorHint(typeName, schemaPath string, exts []string) EditorHint {
	return EditorHint{
		TypeName:   typeName,
		SchemaPath: schemaPath,
		Patterns:   FilePatterns(typeName, exts),
	}
}

// Render returns the human-readable setup instructions.
func (h EditorHint) Render() (string, error) {
	patterns := make([]map[string]any, len(h.Patterns))
	for i, p := range h.Patterns {
		patterns[i] = map[string]any{
			"pattern": p,
			"last":    i == len(h.Patterns)-1,
		}
	}
	return mustache.Render(hintTemplate, map[string]any{
		"typeName":   h.TypeName,
		"schemaPath": h.SchemaPath,
		"patterns":   patterns,
	})
}
