package jobs

import (
	"bytes"
	"regexp"
)

// Format is a job document encoding.
type Format string

const (
	FormatYAML   Format = "yaml" // YAML or JSON, one or more documents
	FormatNDJSON Format = "ndjson"
	FormatTOML   Format = "toml"
)

var (
	// [jobs], [[jobs]], [a.b] but not JSON arrays such as [1, 2].
	tomlSectionPattern  = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+")(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"))*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+")(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"))*\s*=\s*.+$`)
)

// DetectFormat guesses the encoding of a job document from its lines.
func DetectFormat(data []byte) Format {
	lines := bytes.Split(data, []byte("\n"))
	sections, keyValues, jsonLines, nonEmpty := 0, 0, 0, 0
	for _, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || trimmed[0] == '#' {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.Match(trimmed) {
			sections++
		}
		if tomlKeyValuePattern.Match(trimmed) {
			keyValues++
		}
		if trimmed[0] == '{' {
			jsonLines++
		}
	}
	switch {
	case sections > 0 || (nonEmpty > 0 && keyValues > nonEmpty/2):
		return FormatTOML
	case nonEmpty > 1 && jsonLines == nonEmpty:
		return FormatNDJSON
	default:
		return FormatYAML
	}
}
