package types

import (
	"fmt"

	"github.com/rill-lang/rill/rill"
)

// VectorValue is a fixed length float array tagged with the identifier of the
// model that produced it, used for embeddings. Vectors reject all coercions:
// they cannot be interpolated into strings or iterated.
type VectorValue struct {
	model    string
	elements []float64
}

func WrapVector(model string, elements []float64) *VectorValue {
	return &VectorValue{model, elements}
}

func (v *VectorValue) Model() string {
	return v.model
}

func (v *VectorValue) Len() int {
	return len(v.elements)
}

func (v *VectorValue) At(index int) float64 {
	return v.elements[index]
}

// Elements returns the backing slice. The returned slice must not be modified.
func (v *VectorValue) Elements() []float64 {
	return v.elements
}

// Equals requires identical model tag, length, and elements.
func (v *VectorValue) Equals(other interface{}, guard rill.Guard) bool {
	ov, ok := other.(*VectorValue)
	if !ok || v.model != ov.model || len(v.elements) != len(ov.elements) {
		return false
	}
	for i, e := range v.elements {
		if e != ov.elements[i] {
			return false
		}
	}
	return true
}

func (*VectorValue) TypeName() string {
	return `vector`
}

// String is a diagnostic form for logs. Script level stringification of a
// vector is a type error, enforced by the evaluator before calling this.
func (v *VectorValue) String() string {
	return fmt.Sprintf(`vector[%s](%d)`, v.model, len(v.elements))
}
