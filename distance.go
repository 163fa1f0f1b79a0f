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
	"math"

	"github.com/ctessum/sparse"
)

// DistanceVariable is a cell-centered signed-distance field locating a
// deposition interface at its zero level set. Negative values lie
// behind the interface (in the deposited metal), positive values in
// front of it (in the electrolyte).
type DistanceVariable struct {
	CellVariable
	interfaceAreas *Variable
}

// NewDistanceVariable creates a signed-distance variable on mesh m.
func NewDistanceVariable(name string, m *Mesh, value []float64, options ...CellVariableOption) (*DistanceVariable, error) {
	c, err := NewCellVariable(name, m, value, options...)
	if err != nil {
		return nil, err
	}
	d := &DistanceVariable{CellVariable: *c}
	d.interfaceAreas = NewDerivedVariable(name+".cellInterfaceAreas", m.NCells(),
		d.calcInterfaceAreas, &d.Variable)
	return d, nil
}

// CellInterfaceAreas returns the derived variable giving, per cell, the
// area of interface crossing the cell. It is nonzero only for cells in
// front of the interface that the reconstructed zero level set passes
// through, so source terms built on it vanish away from the interface.
func (d *DistanceVariable) CellInterfaceAreas() *Variable { return d.interfaceAreas }

// calcInterfaceAreas reconstructs the interface within each cell as the
// zero line of the locally linearized distance field, using a
// finite-difference cell gradient, and reports the length of that line
// clipped to the cell (unit depth). Cells behind the interface report
// zero.
func (d *DistanceVariable) calcInterfaceAreas() (*sparse.DenseArray, error) {
	vals, err := d.Value()
	if err != nil {
		return nil, err
	}
	m := d.mesh
	φ := vals.Elements
	out := sparse.ZerosDense(m.NCells())
	for i := range φ {
		if φ[i] < 0 {
			continue
		}
		gx := gradComponent(φ, i, m.west(i), m.east(i), m.Dx)
		gy := gradComponent(φ, i, m.south(i), m.north(i), m.Dy)
		out.Elements[i] = interfaceLength(φ[i], gx, gy, m.CellCenters[i], m.Dx, m.Dy)
	}
	return out, nil
}

// gradComponent computes one component of the cell gradient by central
// differences, falling back to one-sided differences at domain edges.
func gradComponent(φ []float64, i, lo, hi int, h float64) float64 {
	switch {
	case lo >= 0 && hi >= 0:
		return (φ[hi] - φ[lo]) / (2 * h)
	case hi >= 0:
		return (φ[hi] - φ[i]) / h
	case lo >= 0:
		return (φ[i] - φ[lo]) / h
	default:
		return 0
	}
}

// interfaceLength returns the length of the line
// φc + gx·(x-xc) + gy·(y-yc) = 0 clipped to the dx × dy cell centered
// on c, or 0 if the line misses the cell.
func interfaceLength(φc, gx, gy float64, c Point, dx, dy float64) float64 {
	if gx == 0 && gy == 0 {
		return 0
	}
	x0, x1 := c.X-dx/2, c.X+dx/2
	y0, y1 := c.Y-dy/2, c.Y+dy/2
	var pts []Point
	add := func(p Point) {
		const tol = 1e-12
		for _, q := range pts {
			if math.Abs(p.X-q.X) < tol && math.Abs(p.Y-q.Y) < tol {
				return
			}
		}
		pts = append(pts, p)
	}
	if gy != 0 {
		for _, x := range []float64{x0, x1} {
			y := c.Y - (φc+gx*(x-c.X))/gy
			if y >= y0 && y <= y1 {
				add(Point{x, y})
			}
		}
	}
	if gx != 0 {
		for _, y := range []float64{y0, y1} {
			x := c.X - (φc+gy*(y-c.Y))/gx
			if x >= x0 && x <= x1 {
				add(Point{x, y})
			}
		}
	}
	if len(pts) < 2 {
		return 0
	}
	// The clipped line is a segment; with corner hits there may be more
	// than two intersection points, so take the farthest pair.
	length := 0.
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			length = math.Max(length, math.Hypot(pts[i].X-pts[j].X, pts[i].Y-pts[j].Y))
		}
	}
	return length
}
