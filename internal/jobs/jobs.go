// Package jobs loads job listings and assembles their tag rows.
package jobs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tagline/internal/tagrow"
)

// Job is one listing. Tag sequences may contain null entries in the source
// document; they are dropped on decode.
type Job struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Company     string   `yaml:"company" json:"company"`
	Location    string   `yaml:"location" json:"location"`
	CompanyTags []string `yaml:"company_tags" json:"company_tags"`
	Tags        []string `yaml:"tags" json:"tags"`
	Skills      []string `yaml:"skills" json:"skills"`
}

// CardTags is the compact card row: company tags followed by the job's tags,
// or its skills when it has no tags.
func (j Job) CardTags() []string {
	out := make([]string, 0, len(j.CompanyTags)+len(j.Tags)+len(j.Skills))
	out = append(out, j.CompanyTags...)
	return append(out, j.DetailTags()...)
}

// DetailTags is the detail panel row: the job's tags, or its skills when it
// has no tags.
func (j Job) DetailTags() []string {
	if len(j.Tags) > 0 {
		return append([]string(nil), j.Tags...)
	}
	return append([]string(nil), j.Skills...)
}

// rawJob mirrors Job with loosely typed tag sequences.
type rawJob struct {
	ID          string `yaml:"id" toml:"id"`
	Title       string `yaml:"title" toml:"title"`
	Company     string `yaml:"company" toml:"company"`
	Location    string `yaml:"location" toml:"location"`
	CompanyTags []any  `yaml:"company_tags" toml:"company_tags"`
	Tags        []any  `yaml:"tags" toml:"tags"`
	Skills      []any  `yaml:"skills" toml:"skills"`
}

func (r rawJob) job() Job {
	return Job{
		ID:          r.ID,
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		CompanyTags: tagrow.LabelsFromAny(r.CompanyTags),
		Tags:        tagrow.LabelsFromAny(r.Tags),
		Skills:      tagrow.LabelsFromAny(r.Skills),
	}
}

// Decode parses a job document. YAML and JSON inputs hold a list of jobs, a
// mapping with a top-level "jobs" list, or a single job mapping; multiple YAML
// documents are concatenated. NDJSON holds one job object per line and TOML
// uses a [[jobs]] array of tables.
func Decode(data []byte) ([]Job, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var (
		raws []rawJob
		err  error
	)
	switch DetectFormat(data) {
	case FormatTOML:
		raws, err = decodeTOML(data)
	case FormatNDJSON:
		raws, err = decodeNDJSON(data)
	default:
		raws, err = decodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	out := make([]Job, 0, len(raws))
	for i, r := range raws {
		j := r.job()
		if j.ID == "" {
			j.ID = fmt.Sprintf("job-%d", i+1)
		}
		out = append(out, j)
	}
	return out, nil
}

func decodeYAML(data []byte) ([]rawJob, error) {
	var raws []rawJob
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				return raws, nil
			}
			return nil, err
		}
		root := &node
		if root.Kind == yaml.DocumentNode {
			if len(root.Content) == 0 {
				continue
			}
			root = root.Content[0]
		}
		doc, err := decodeNode(root)
		if err != nil {
			return nil, err
		}
		raws = append(raws, doc...)
	}
}

func decodeNode(root *yaml.Node) ([]rawJob, error) {
	switch root.Kind {
	case yaml.SequenceNode:
		var raws []rawJob
		if err := root.Decode(&raws); err != nil {
			return nil, err
		}
		return raws, nil
	case yaml.MappingNode:
		if hasKey(root, "jobs") {
			var doc struct {
				Jobs []rawJob `yaml:"jobs"`
			}
			if err := root.Decode(&doc); err != nil {
				return nil, err
			}
			return doc.Jobs, nil
		}
		var r rawJob
		if err := root.Decode(&r); err != nil {
			return nil, err
		}
		return []rawJob{r}, nil
	case yaml.ScalarNode:
		if root.ShortTag() == "!!null" {
			return nil, nil
		}
	}
	return nil, errors.New("expected a list or a mapping with a jobs key")
}

func hasKey(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return true
		}
	}
	return false
}

func decodeNDJSON(data []byte) ([]rawJob, error) {
	var raws []rawJob
	for n, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var r rawJob
		if err := yaml.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		raws = append(raws, r)
	}
	return raws, nil
}

func decodeTOML(data []byte) ([]rawJob, error) {
	var doc struct {
		Jobs []rawJob `toml:"jobs"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Jobs, nil
}

// Load reads and decodes a jobs file.
func Load(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs file: %w", err)
	}
	return Decode(data)
}

// FromLabels wraps a plain label list as a single untitled job.
func FromLabels(labels []string) []Job {
	return []Job{{ID: "job-1", Tags: append([]string(nil), labels...)}}
}
