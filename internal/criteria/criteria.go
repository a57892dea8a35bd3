package criteria

import (
	"encoding/json"
	"fmt"
	"strings"

	"campaign-engine/internal/enginerrors"
)

type Combinator string

const (
	And Combinator = "and"
	Or  Combinator = "or"
)

type Operator string

const (
	OpEquals   Operator = "equals"
	OpContains Operator = "contains"
	OpGt       Operator = "gt"
	OpLt       Operator = "lt"
	OpIn       Operator = "in"
	OpNotIn    Operator = "not_in"
)

// MaxDepth bounds nesting of and/or groups.
const MaxDepth = 32

// Criteria is either a group (Combinator with Children) or a leaf condition
// (Field, Operator, Value).
type Criteria struct {
	Combinator Combinator
	Children   []Criteria

	Field    string
	Operator Operator
	Value    Value
}

// Leaf builds a single condition.
func Leaf(field string, op Operator, v Value) Criteria {
	return Criteria{Field: field, Operator: op, Value: v}
}

func AllOf(children ...Criteria) Criteria {
	return Criteria{Combinator: And, Children: children}
}

func AnyOf(children ...Criteria) Criteria {
	return Criteria{Combinator: Or, Children: children}
}

func (c Criteria) IsGroup() bool {
	return c.Combinator != ""
}

// IsZero reports whether c carries no condition at all.
func (c Criteria) IsZero() bool {
	return c.Combinator == "" && c.Field == "" && c.Operator == "" && len(c.Children) == 0
}

// Validate rejects trees the evaluator would otherwise have to treat as
// silently false. Errors are Validation errors with INVALID_CRITERIA.
func (c Criteria) Validate() error {
	if err := c.validate(0, "$"); err != nil {
		return enginerrors.Validation(enginerrors.CodeInvalidCriteria, err.Error())
	}
	return nil
}

func (c Criteria) validate(depth int, path string) error {
	if depth > MaxDepth {
		return fmt.Errorf("%s: nesting deeper than %d", path, MaxDepth)
	}
	if c.IsGroup() {
		if c.Combinator != And && c.Combinator != Or {
			return fmt.Errorf("%s: unknown combinator %q", path, c.Combinator)
		}
		if len(c.Children) == 0 {
			return fmt.Errorf("%s: empty %s group", path, c.Combinator)
		}
		if c.Field != "" || c.Operator != "" {
			return fmt.Errorf("%s: group cannot carry a condition", path)
		}
		for i, child := range c.Children {
			if err := child.validate(depth+1, fmt.Sprintf("%s.%s[%d]", path, c.Combinator, i)); err != nil {
				return err
			}
		}
		return nil
	}

	if strings.TrimSpace(c.Field) == "" {
		return fmt.Errorf("%s: empty field", path)
	}
	switch c.Operator {
	case OpEquals, OpContains:
	case OpGt, OpLt:
		if _, isNum := c.Value.AsNumber(); !isNum {
			if _, isTime := c.Value.AsTime(); !isTime {
				return fmt.Errorf("%s: %s needs a number or time value", path, c.Operator)
			}
		}
	case OpIn, OpNotIn:
		if _, ok := c.Value.AsArray(); !ok {
			return fmt.Errorf("%s: %s needs an array value", path, c.Operator)
		}
	default:
		return fmt.Errorf("%s: unknown operator %q", path, c.Operator)
	}
	return nil
}

type criteriaJSON struct {
	And      []Criteria `json:"and,omitempty"`
	Or       []Criteria `json:"or,omitempty"`
	Field    string     `json:"field,omitempty"`
	Operator Operator   `json:"operator,omitempty"`
	Value    *Value     `json:"value,omitempty"`
}

func (c Criteria) MarshalJSON() ([]byte, error) {
	switch c.Combinator {
	case And:
		return json.Marshal(criteriaJSON{And: nonNil(c.Children)})
	case Or:
		return json.Marshal(criteriaJSON{Or: nonNil(c.Children)})
	case "":
		if c.IsZero() {
			return []byte("{}"), nil
		}
		v := c.Value
		return json.Marshal(criteriaJSON{Field: c.Field, Operator: c.Operator, Value: &v})
	}
	return nil, fmt.Errorf("criteria: unknown combinator %q", c.Combinator)
}

func (c *Criteria) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var cj criteriaJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}
	_, hasAnd := raw["and"]
	_, hasOr := raw["or"]
	switch {
	case hasAnd && hasOr:
		return fmt.Errorf("criteria: node has both and/or")
	case hasAnd:
		*c = Criteria{Combinator: And, Children: nonNil(cj.And)}
	case hasOr:
		*c = Criteria{Combinator: Or, Children: nonNil(cj.Or)}
	default:
		*c = Criteria{Field: cj.Field, Operator: cj.Operator}
		if cj.Value != nil {
			c.Value = *cj.Value
		}
	}
	return nil
}

func nonNil(cs []Criteria) []Criteria {
	if cs == nil {
		return []Criteria{}
	}
	return cs
}

// Parse decodes and validates a JSON criteria tree.
func Parse(data []byte) (Criteria, error) {
	var c Criteria
	if err := json.Unmarshal(data, &c); err != nil {
		return Criteria{}, enginerrors.Validation(enginerrors.CodeInvalidCriteria, err.Error())
	}
	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}
