package grid

// Condition decides whether a record of a grid file is displayed.
type Condition interface {
	Include(c Cell, value float64) bool
}

// Include accepts cells inside the limits.
func (l Limits) Include(c Cell, _ float64) bool {
	return l.Contains(c)
}

// ValueEqual accepts records whose value equals v.
type ValueEqual float64

// Include implements Condition.
func (v ValueEqual) Include(_ Cell, value float64) bool {
	return value == float64(v)
}

// ValueInRange accepts records with Min <= value <= Max. Nil bounds are open.
type ValueInRange struct {
	Min, Max *float64
}

// Include implements Condition.
func (r ValueInRange) Include(_ Cell, value float64) bool {
	if r.Min != nil && value < *r.Min {
		return false
	}
	if r.Max != nil && *r.Max < value {
		return false
	}
	return true
}

// All accepts a record only if every condition does.
type All []Condition

// Include implements Condition.
func (a All) Include(c Cell, value float64) bool {
	for _, cond := range a {
		if !cond.Include(c, value) {
			return false
		}
	}
	return true
}
