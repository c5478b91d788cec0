package jobs

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"
)

// FilterVar is the CEL variable bound to each job.
const FilterVar = "job"

// Filter is a compiled CEL predicate over jobs.
type Filter struct {
	expr string
	prg  cel.Program
}

func newFilterEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable(FilterVar, cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Lists(),
	)
}

// CompileFilter compiles a boolean CEL expression such as
// `"Go" in job.tags && job.location == "Remote"`.
func CompileFilter(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	env, err := newFilterEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// Match evaluates the filter for one job.
func (f *Filter) Match(j Job) (bool, error) {
	out, _, err := f.prg.Eval(map[string]any{FilterVar: j.celValue()})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T, expected bool", f.expr, out.Value())
	}
	return b, nil
}

func (j Job) celValue() map[string]any {
	return map[string]any{
		"id":           j.ID,
		"title":        j.Title,
		"company":      j.Company,
		"location":     j.Location,
		"tags":         nonNil(j.Tags),
		"skills":       nonNil(j.Skills),
		"company_tags": nonNil(j.CompanyTags),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Apply returns the jobs matching expr. An empty expression matches all.
func Apply(list []Job, expr string) ([]Job, error) {
	if strings.TrimSpace(expr) == "" {
		return list, nil
	}
	f, err := CompileFilter(expr)
	if err != nil {
		return nil, err
	}
	out := make([]Job, 0, len(list))
	for _, j := range list {
		ok, err := f.Match(j)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", j.ID, err)
		}
		if ok {
			out = append(out, j)
		}
	}
	return out, nil
}
