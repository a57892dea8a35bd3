package criteria

import "strings"

// Evaluate reports whether attrs satisfy c. It is total: malformed trees,
// missing attributes and type mismatches all evaluate to false rather than
// erroring. Evaluation has no side effects and is deterministic.
func Evaluate(c Criteria, attrs Attributes) bool {
	return eval(c, attrs, 0)
}

func eval(c Criteria, attrs Attributes, depth int) bool {
	if depth > MaxDepth {
		return false
	}
	switch c.Combinator {
	case And:
		if len(c.Children) == 0 {
			return false
		}
		for _, child := range c.Children {
			if !eval(child, attrs, depth+1) {
				return false
			}
		}
		return true
	case Or:
		for _, child := range c.Children {
			if eval(child, attrs, depth+1) {
				return true
			}
		}
		return false
	case "":
		return evalLeaf(c, attrs)
	}
	return false
}

func evalLeaf(c Criteria, attrs Attributes) bool {
	if c.Field == "" {
		return false
	}
	got, ok := attrs.Lookup(c.Field)
	if !ok || got.IsNull() {
		return false
	}

	switch c.Operator {
	case OpEquals:
		return got.Equal(c.Value)
	case OpContains:
		return contains(got, c.Value)
	case OpGt:
		cmp, ok := compare(got, c.Value)
		return ok && cmp > 0
	case OpLt:
		cmp, ok := compare(got, c.Value)
		return ok && cmp < 0
	case OpIn:
		return in(got, c.Value)
	case OpNotIn:
		if _, isArr := c.Value.AsArray(); !isArr {
			return false
		}
		return !in(got, c.Value)
	}
	return false
}

func contains(got, want Value) bool {
	if s, ok := got.AsString(); ok {
		sub, isStr := want.AsString()
		return isStr && strings.Contains(s, sub)
	}
	if arr, ok := got.AsArray(); ok {
		for _, e := range arr {
			if e.Equal(want) {
				return true
			}
		}
	}
	return false
}

// in reports whether got is a member of the set. An array attribute is in
// the set when any of its elements is.
func in(got, set Value) bool {
	members, ok := set.AsArray()
	if !ok {
		return false
	}
	if arr, isArr := got.AsArray(); isArr {
		for _, e := range arr {
			if memberOf(e, members) {
				return true
			}
		}
		return false
	}
	return memberOf(got, members)
}

func memberOf(v Value, members []Value) bool {
	for _, m := range members {
		if v.Equal(m) {
			return true
		}
	}
	return false
}

// compare orders numbers against numbers and times against times. Time
// strings on either side are parsed; any other pairing is incomparable.
func compare(a, b Value) (int, bool) {
	if x, ok := a.AsNumber(); ok {
		y, ok := b.AsNumber()
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	}
	x, ok := a.AsTime()
	if !ok {
		return 0, false
	}
	y, ok := b.AsTime()
	if !ok {
		return 0, false
	}
	return x.Compare(y), true
}
