/*
Copyright © 2018 the Electrodep authors.
This file is part of Electrodep.

Electrodep is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Electrodep is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Electrodep.  If not, see <http://www.gnu.org/licenses/>.
*/

package electrodep

import (
	"fmt"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// EvalStrategy selects how a cell-to-face interpolation is evaluated.
// Both strategies produce identical results; the fused loop is the
// default, the array strategy remains available for conformance checks
// and for callers that prefer vectorized expressions.
type EvalStrategy int

const (
	// FusedEvaluation evaluates each face in a single pass with a
	// conditional divide.
	FusedEvaluation EvalStrategy = iota
	// ArrayEvaluation evaluates all faces as vectorized array
	// expressions, substituting an epsilon sentinel for exact-zero
	// denominators to avoid division faults.
	ArrayEvaluation
)

// CellToFaceVariable maps a cell-centered field to face-centered values.
type CellToFaceVariable struct {
	Variable
	mesh    *Mesh
	cellVar *CellVariable
}

// HarmonicCellToFaceVariable interpolates a cell-centered field onto
// faces using the harmonic mean of the two adjacent cell values,
// weighted by the face interpolation factor. Per face, with adjacent
// cell values c1 and c2 and weight α,
//
//	t = (c2-c1)·α + c1
//	face value = c1·c2/t, or 0 where t is exactly zero.
//
// The exact-zero guard is the only special case; near-zero denominators
// are left to IEEE arithmetic.
type HarmonicCellToFaceVariable struct {
	CellToFaceVariable
	strategy EvalStrategy
}

// NewHarmonicCellToFaceVariable creates a face-centered harmonic-mean
// interpolation of v evaluated with the given strategy.
func NewHarmonicCellToFaceVariable(v *CellVariable, strategy EvalStrategy) *HarmonicCellToFaceVariable {
	f := &HarmonicCellToFaceVariable{
		CellToFaceVariable: CellToFaceVariable{
			Variable: Variable{
				name: v.Name() + ".harmonicFaceValue",
				n:    v.Mesh().NFaces(),
			},
			mesh:    v.Mesh(),
			cellVar: v,
		},
		strategy: strategy,
	}
	f.calc = f.calcValue
	f.Requires(&v.Variable)
	return f
}

// Strategy returns the evaluation strategy in use.
func (f *HarmonicCellToFaceVariable) Strategy() EvalStrategy { return f.strategy }

func (f *HarmonicCellToFaceVariable) calcValue() (*sparse.DenseArray, error) {
	vals, err := f.cellVar.Value()
	if err != nil {
		return nil, err
	}
	if len(vals.Elements) != f.mesh.NCells() {
		return nil, fmt.Errorf("electrodep: variable %s: %d cell values for %d mesh cells",
			f.cellVar.Name(), len(vals.Elements), f.mesh.NCells())
	}
	switch f.strategy {
	case ArrayEvaluation:
		return f.calcValueArray(vals.Elements), nil
	default:
		return f.calcValueFused(vals.Elements), nil
	}
}

// calcValueFused computes the harmonic face values one face at a time,
// skipping the divide where the blended denominator is exactly zero.
func (f *HarmonicCellToFaceVariable) calcValueFused(vals []float64) *sparse.DenseArray {
	m := f.mesh
	out := sparse.ZerosDense(m.NFaces())
	for i := range m.FaceID1 {
		c1 := vals[m.FaceID1[i]]
		c2 := vals[m.FaceID2[i]]
		t := (c2-c1)*m.FaceAlpha[i] + c1
		if t != 0 {
			out.Elements[i] = c1 * c2 / t
		} else {
			out.Elements[i] = t
		}
	}
	return out
}

// calcValueArray computes the harmonic face values as vectorized array
// expressions. An epsilon stands in for exact-zero denominators so the
// vectorized divide cannot fault; those entries are then overwritten
// with zero, making the result identical to the fused loop.
func (f *HarmonicCellToFaceVariable) calcValueArray(vals []float64) *sparse.DenseArray {
	const eps = 1e-20
	m := f.mesh
	n := m.NFaces()
	c1 := make([]float64, n)
	c2 := make([]float64, n)
	for i := range m.FaceID1 {
		c1[i] = vals[m.FaceID1[i]]
		c2[i] = vals[m.FaceID2[i]]
	}
	t := make([]float64, n)
	floats.SubTo(t, c2, c1)
	floats.Mul(t, m.FaceAlpha)
	floats.Add(t, c1)
	num := make([]float64, n)
	floats.MulTo(num, c1, c2)
	den := make([]float64, n)
	copy(den, t)
	for i, ti := range den {
		if ti == 0 {
			den[i] = eps
		}
	}
	out := sparse.ZerosDense(n)
	floats.DivTo(out.Elements, num, den)
	for i, ti := range t {
		if ti == 0 {
			out.Elements[i] = 0
		}
	}
	return out
}

// ArithmeticCellToFaceVariable interpolates a cell-centered field onto
// faces as the linear blend (c2-c1)·α + c1.
type ArithmeticCellToFaceVariable struct {
	CellToFaceVariable
}

// NewArithmeticCellToFaceVariable creates a face-centered linear
// interpolation of v.
func NewArithmeticCellToFaceVariable(v *CellVariable) *ArithmeticCellToFaceVariable {
	f := &ArithmeticCellToFaceVariable{
		CellToFaceVariable: CellToFaceVariable{
			Variable: Variable{
				name: v.Name() + ".faceValue",
				n:    v.Mesh().NFaces(),
			},
			mesh:    v.Mesh(),
			cellVar: v,
		},
	}
	f.calc = f.calcValue
	f.Requires(&v.Variable)
	return f
}

func (f *ArithmeticCellToFaceVariable) calcValue() (*sparse.DenseArray, error) {
	vals, err := f.cellVar.Value()
	if err != nil {
		return nil, err
	}
	if len(vals.Elements) != f.mesh.NCells() {
		return nil, fmt.Errorf("electrodep: variable %s: %d cell values for %d mesh cells",
			f.cellVar.Name(), len(vals.Elements), f.mesh.NCells())
	}
	m := f.mesh
	n := m.NFaces()
	c1 := make([]float64, n)
	c2 := make([]float64, n)
	for i := range m.FaceID1 {
		c1[i] = vals.Elements[m.FaceID1[i]]
		c2[i] = vals.Elements[m.FaceID2[i]]
	}
	out := sparse.ZerosDense(n)
	floats.SubTo(out.Elements, c2, c1)
	floats.Mul(out.Elements, m.FaceAlpha)
	floats.Add(out.Elements, c1)
	return out, nil
}
