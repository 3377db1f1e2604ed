package transform

import (
	"github.com/silicaviz/silica/pkg/math"
)

type productCalc struct{ factors []NodeID }

func (c *productCalc) calculate(g *Graph) math.Mat4 {
	result := math.Identity()
	for _, f := range c.factors {
		result = result.Mul(g.Matrix(f))
	}
	return result
}

// Product is an ordered chain of factors multiplied left to right:
// Product(A, B, C) = A·B·C. Applied to a column vector, the last factor acts
// first, so factors are listed last-applied first.
//
// A Product registers itself as a user of every factor but does not own
// them; factors may be shared with other products.
type Product struct {
	g  *Graph
	id NodeID
}

// NewProduct adds a Product with the given factors.
func (g *Graph) NewProduct(factors ...NodeID) Product {
	p := Product{g, g.add(&productCalc{})}
	for _, f := range factors {
		p.AddFactor(f)
	}
	return p
}

// ID returns the node handle.
func (p Product) ID() NodeID { return p.id }

// Factors returns the factor handles in multiplication order.
func (p Product) Factors() []NodeID {
	return append([]NodeID(nil), p.calc().factors...)
}

// AddFactor appends f as the rightmost factor.
// It panics if f already depends on p.
func (p Product) AddFactor(f NodeID) {
	p.g.AddUser(f, p.id)
	c := p.calc()
	c.factors = append(c.factors, f)
	p.g.Dirty(p.id)
}

func (p Product) calc() *productCalc { return p.g.node(p.id).calc.(*productCalc) }
