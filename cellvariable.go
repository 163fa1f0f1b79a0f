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
)

// CellVariable is a Variable whose value lives on mesh cells.
type CellVariable struct {
	Variable
	mesh   *Mesh
	old    *sparse.DenseArray
	hasOld bool
}

// CellVariableOption configures a CellVariable at construction.
type CellVariableOption func(*CellVariable)

// WithOld retains a previous-timestep snapshot of the value, needed by
// transient terms. Purely derived variables that are always recomputed
// from scratch should not carry one.
func WithOld() CellVariableOption {
	return func(c *CellVariable) { c.hasOld = true }
}

// NewCellVariable creates a cell-centered variable on mesh m. If value
// is nil the variable starts at zero; otherwise its length must equal
// the number of cells.
func NewCellVariable(name string, m *Mesh, value []float64, options ...CellVariableOption) (*CellVariable, error) {
	n := m.NCells()
	if value == nil {
		value = make([]float64, n)
	}
	if len(value) != n {
		return nil, fmt.Errorf("electrodep: variable %s: initial value length %d does not match %d mesh cells",
			name, len(value), n)
	}
	c := &CellVariable{
		Variable: Variable{name: name, n: n, value: Dense(value), fresh: true},
		mesh:     m,
	}
	for _, option := range options {
		option(c)
	}
	if c.hasOld {
		c.old = c.value.Copy()
	}
	return c, nil
}

// UniformCellVariable creates a cell-centered variable with the same
// value in every cell.
func UniformCellVariable(name string, m *Mesh, value float64, options ...CellVariableOption) *CellVariable {
	vals := make([]float64, m.NCells())
	for i := range vals {
		vals[i] = value
	}
	c, err := NewCellVariable(name, m, vals, options...)
	if err != nil {
		panic(err) // lengths match by construction
	}
	return c
}

// Mesh returns the mesh the variable is bound to.
func (c *CellVariable) Mesh() *Mesh { return c.mesh }

// HasOld reports whether the variable retains a previous-timestep
// snapshot.
func (c *CellVariable) HasOld() bool { return c.hasOld }

// Old returns the previous-timestep snapshot, or nil if the variable
// does not retain one.
func (c *CellVariable) Old() *sparse.DenseArray { return c.old }

// UpdateOld copies the current value into the previous-timestep
// snapshot. It is called by the time-stepping driver at the start of
// each step.
func (c *CellVariable) UpdateOld() error {
	if !c.hasOld {
		return fmt.Errorf("electrodep: variable %s does not retain history", c.name)
	}
	val, err := c.Value()
	if err != nil {
		return err
	}
	c.old = val.Copy()
	return nil
}
