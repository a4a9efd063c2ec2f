package options

import "fmt"

// Problem describes a present value that does not match its catalog Kind.
type Problem struct {
	Name Name
	Kind Kind
	Err  error
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: expected %s: %v", p.Name, p.Kind, p.Err)
}

// Check reports present values whose text does not parse as the kind the
// catalog declares. Absent values are never a problem.
func Check(set Set) []Problem {
	var problems []Problem
	for _, spec := range catalog {
		v := set.Get(spec.Name)
		if !v.IsSet() {
			continue
		}
		var err error
		switch spec.Kind {
		case KindInt:
			_, err = v.Int()
		case KindBool:
			_, err = v.Bool()
		case KindIntList:
			_, err = v.Ints()
		case KindFloatList:
			_, err = v.Floats()
		}
		if err != nil {
			problems = append(problems, Problem{Name: spec.Name, Kind: spec.Kind, Err: err})
		}
	}
	return problems
}
