package domain

// Operator is the comparison applied by a Condition.
type Operator int

const (
	// OpEquals matches values that are byte-for-byte equal.
	OpEquals Operator = iota
	// OpContainsFold matches values that contain the operand as a
	// substring, ignoring case. The operand is literal text, not a pattern.
	OpContainsFold
)

func (o Operator) String() string {
	switch o {
	case OpEquals:
		return "eq"
	case OpContainsFold:
		return "contains_fold"
	default:
		return "unknown"
	}
}

// Condition compares one document field against a value.
type Condition struct {
	Field string
	Op    Operator
	Value string
}

// Equals returns a Condition requiring field to equal value exactly.
func Equals(field, value string) Condition {
	return Condition{Field: field, Op: OpEquals, Value: value}
}

// ContainsFold returns a Condition requiring field to contain value, case-insensitively.
func ContainsFold(field, value string) Condition {
	return Condition{Field: field, Op: OpContainsFold, Value: value}
}

// Predicate is a conjunction of conditions over one collection. The zero
// value matches every document. Store drivers compile it into their
// native query form.
type Predicate struct {
	conditions []Condition
}

// MatchAll returns a Predicate without conditions.
func MatchAll() Predicate {
	return Predicate{}
}

// And returns a new Predicate that additionally requires c.
// The receiver is left untouched.
func (p Predicate) And(c Condition) Predicate {
	next := make([]Condition, len(p.conditions), len(p.conditions)+1)
	copy(next, p.conditions)
	return Predicate{conditions: append(next, c)}
}

// Conditions returns a copy of the conjoined conditions.
func (p Predicate) Conditions() []Condition {
	out := make([]Condition, len(p.conditions))
	copy(out, p.conditions)
	return out
}

// IsMatchAll reports whether p has no conditions.
func (p Predicate) IsMatchAll() bool {
	return len(p.conditions) == 0
}
