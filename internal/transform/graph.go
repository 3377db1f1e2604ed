// Package transform implements a lazily evaluated graph of 4x4 transforms.
//
// Nodes live in an arena owned by a Graph and are addressed by NodeID.
// Every node caches its matrix until it is dirtied. Dirtying a node also
// dirties every node registered as its user, transitively. The user relation
// must stay acyclic; AddUser panics on an edge that would close a cycle.
//
// A Graph is not safe for concurrent use. Keep it on the render thread.
package transform

import (
	"fmt"

	"github.com/silicaviz/silica/pkg/math"
)

// NodeID addresses a node inside its Graph.
type NodeID int

// calculator computes the matrix of one node kind from its parameters.
type calculator interface {
	calculate(g *Graph) math.Mat4
}

type node struct {
	calc  calculator
	users []NodeID

	valid  bool
	matrix math.Mat4

	glValid bool
	gl      [16]float32

	calculations int
}

// Graph is an arena of transform nodes.
type Graph struct {
	nodes []node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) add(c calculator) NodeID {
	g.nodes = append(g.nodes, node{calc: c})
	return NodeID(len(g.nodes) - 1)
}

func (g *Graph) node(id NodeID) *node {
	if id < 0 || int(id) >= len(g.nodes) {
		panic(fmt.Sprintf("transform: unknown node %d", id))
	}
	return &g.nodes[id]
}

// Matrix returns the current matrix of id, recalculating it if dirty.
func (g *Graph) Matrix(id NodeID) math.Mat4 {
	n := g.node(id)
	if !n.valid {
		mat := n.calc.calculate(g)
		// calculate may have recursed into the arena; re-fetch.
		n = &g.nodes[id]
		n.matrix = mat
		n.valid = true
		n.calculations++
	}
	return n.matrix
}

// GLMatrix returns the matrix of id as a column-major float32 array,
// ready for glUniformMatrix4fv with transpose=false.
func (g *Graph) GLMatrix(id NodeID) [16]float32 {
	mat := g.Matrix(id)
	n := &g.nodes[id]
	if !n.glValid {
		n.gl = mat.Float32()
		n.glValid = true
	}
	return n.gl
}

// IsDirty reports whether id has no cached matrix.
func (g *Graph) IsDirty(id NodeID) bool {
	return !g.node(id).valid
}

// Calculations returns how many times the matrix of id has been computed.
func (g *Graph) Calculations(id NodeID) int {
	return g.node(id).calculations
}

// Dirty drops the cached matrix of id and of every node that uses it,
// directly or transitively. Each node is visited at most once per call.
//
// Visiting is guarded per traversal rather than by the dirty flag: a user
// may be clean while the node it reads from is already dirty.
func (g *Graph) Dirty(id NodeID) {
	g.node(id)
	visited := make([]bool, len(g.nodes))
	work := []NodeID{id}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		n := &g.nodes[cur]
		n.valid = false
		n.glValid = false
		work = append(work, n.users...)
	}
}

// AddUser registers user as depending on id: dirtying id dirties user.
// Registering the same edge twice is a no-op.
// It panics if the edge would make the graph cyclic.
func (g *Graph) AddUser(id, user NodeID) {
	n := g.node(id)
	g.node(user)
	for _, u := range n.users {
		if u == user {
			return
		}
	}
	if id == user || g.reaches(user, id) {
		panic(fmt.Sprintf("transform: edge %d -> %d creates a cycle", id, user))
	}
	n.users = append(n.users, user)
	g.Dirty(user)
}

// Users returns the direct users of id.
func (g *Graph) Users(id NodeID) []NodeID {
	return append([]NodeID(nil), g.node(id).users...)
}

// reaches reports whether to is reachable from from along user edges.
func (g *Graph) reaches(from, to NodeID) bool {
	seen := make([]bool, len(g.nodes))
	work := []NodeID{from}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		if cur == to {
			return true
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		work = append(work, g.nodes[cur].users...)
	}
	return false
}
