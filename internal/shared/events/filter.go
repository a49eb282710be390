package events

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/cel-go/cel"

	"orderflow/internal/shared/faults"
)

var ErrInvalidFilter = faults.New(faults.KindInvalidArgument, "invalid subscription filter")

// Filter is a compiled content filter. The zero Filter matches everything.
type Filter struct {
	expr    string
	program cel.Program
}

func (f Filter) String() string {
	return f.expr
}

// Matches evaluates the filter against env. Evaluation never fails: runtime
// errors and non-boolean results are treated as a non-match.
func (f Filter) Matches(env Envelope) (matched bool) {
	if f.program == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	out, _, err := f.program.Eval(map[string]any{"event": envelopeFields(env)})
	if err != nil {
		return false
	}
	value, ok := out.Value().(bool)
	return ok && value
}

// FilterCompiler turns CEL expressions over the `event` variable into
// Filters, caching programs by expression text.
type FilterCompiler struct {
	env      *cel.Env
	mu       sync.RWMutex
	programs map[string]cel.Program
}

func NewFilterCompiler() (*FilterCompiler, error) {
	env, err := cel.NewEnv(
		cel.Variable("event", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create filter environment: %w", err)
	}
	return &FilterCompiler{
		env:      env,
		programs: make(map[string]cel.Program),
	}, nil
}

func (c *FilterCompiler) Compile(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Filter{}, nil
	}

	c.mu.RLock()
	program, hit := c.programs[expr]
	c.mu.RUnlock()
	if hit {
		return Filter{expr: expr, program: program}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if program, hit = c.programs[expr]; hit {
		return Filter{expr: expr, program: program}, nil
	}
	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return Filter{}, fmt.Errorf("%w %q: %v", ErrInvalidFilter, expr, issues.Err())
	}
	program, err := c.env.Program(ast,
		cel.InterruptCheckFrequency(100),
		cel.CostLimit(10000),
	)
	if err != nil {
		return Filter{}, fmt.Errorf("%w %q: %v", ErrInvalidFilter, expr, err)
	}
	c.programs[expr] = program
	return Filter{expr: expr, program: program}, nil
}

func envelopeFields(env Envelope) map[string]any {
	fields := map[string]any{
		"id":              env.EventID,
		"type":            env.EventType,
		"topic":           env.Topic,
		"source":          env.SourceService,
		"specversion":     env.SpecVersion,
		"partitionkey":    env.PartitionKey,
		"datacontenttype": env.DataContentType,
		"time":            env.OccurredAt.UTC().Format(time.RFC3339Nano),
		"data":            map[string]any{},
	}
	if len(env.Data) > 0 {
		var data any
		if err := json.Unmarshal(env.Data, &data); err == nil {
			fields["data"] = data
		} else {
			fields["data"] = string(env.Data)
		}
	}
	return fields
}
