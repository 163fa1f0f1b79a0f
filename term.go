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

	"gonum.org/v1/gonum/mat"
)

// System is the linear system assembled for one solve, A·x = b with one
// row per mesh cell.
type System struct {
	A *mat.Dense
	B *mat.VecDense
}

// NewSystem creates an empty system of n equations.
func NewSystem(n int) *System {
	return &System{
		A: mat.NewDense(n, n, nil),
		B: mat.NewVecDense(n, nil),
	}
}

func (sys *System) add(i, j int, v float64) {
	sys.A.Set(i, j, sys.A.At(i, j)+v)
}

func (sys *System) addRHS(i int, v float64) {
	sys.B.SetVec(i, sys.B.AtVec(i)+v)
}

// Term is a discretization contribution assembled into an equation's
// linear system. Terms only ever add to the system, so an equation can
// compose any number of them.
type Term interface {
	AddTo(sys *System, v *CellVariable, dt float64) error
}

// TransientTerm contributes the ∂/∂t storage term, V/dt on the diagonal
// and V/dt times the previous-timestep value on the right-hand side.
// The target variable must retain history (see WithOld).
type TransientTerm struct{}

// AddTo implements Term.
func (TransientTerm) AddTo(sys *System, v *CellVariable, dt float64) error {
	if !v.HasOld() {
		return fmt.Errorf("electrodep: transient term: variable %s does not retain history", v.Name())
	}
	if dt <= 0 {
		return fmt.Errorf("electrodep: transient term: timestep %g must be positive", dt)
	}
	old := v.Old()
	m := v.Mesh()
	for i, vol := range m.CellVolumes {
		sys.add(i, i, vol/dt)
		sys.addRHS(i, vol/dt*old.Elements[i])
	}
	return nil
}

// DiffusionTerm contributes -∇·(D∇φ), with the diffusion coefficient
// interpolated onto faces by Coeff. Exterior faces join a cell to
// itself and drop out of the stencil, giving zero-flux boundaries.
type DiffusionTerm struct {
	Coeff *HarmonicCellToFaceVariable
}

// AddTo implements Term.
func (t DiffusionTerm) AddTo(sys *System, v *CellVariable, dt float64) error {
	faceCoeff, err := t.Coeff.Value()
	if err != nil {
		return err
	}
	m := v.Mesh()
	if len(faceCoeff.Elements) != m.NFaces() {
		return fmt.Errorf("electrodep: diffusion term: %d face coefficients for %d mesh faces",
			len(faceCoeff.Elements), m.NFaces())
	}
	for f := range m.FaceID1 {
		i, j := m.FaceID1[f], m.FaceID2[f]
		if i == j {
			continue
		}
		w := faceCoeff.Elements[f] * m.FaceAreas[f] / m.FaceDists[f]
		sys.add(i, i, w)
		sys.add(i, j, -w)
		sys.add(j, j, w)
		sys.add(j, i, -w)
	}
	return nil
}

// ImplicitSourceTerm contributes a sink proportional to the solved
// variable, coeff·V·φ, added to the diagonal so the coupling is
// implicit. The coefficient may be a per-cell field or a scalar
// variable.
type ImplicitSourceTerm struct {
	Coeff *Variable
}

// AddTo implements Term.
func (t ImplicitSourceTerm) AddTo(sys *System, v *CellVariable, dt float64) error {
	coeff, err := t.Coeff.Value()
	if err != nil {
		return err
	}
	m := v.Mesh()
	n := m.NCells()
	if len(coeff.Elements) != 1 && len(coeff.Elements) != n {
		return fmt.Errorf("electrodep: implicit source term: coefficient length %d is not broadcast-compatible with %d mesh cells",
			len(coeff.Elements), n)
	}
	for i := 0; i < n; i++ {
		c := coeff.Elements[0]
		if len(coeff.Elements) == n {
			c = coeff.Elements[i]
		}
		sys.add(i, i, c*m.CellVolumes[i])
	}
	return nil
}

// ExplicitSourceTerm contributes a fixed source coeff·V to the
// right-hand side. The coefficient may be a per-cell field or a scalar
// variable.
type ExplicitSourceTerm struct {
	Coeff *Variable
}

// AddTo implements Term.
func (t ExplicitSourceTerm) AddTo(sys *System, v *CellVariable, dt float64) error {
	coeff, err := t.Coeff.Value()
	if err != nil {
		return err
	}
	m := v.Mesh()
	n := m.NCells()
	if len(coeff.Elements) != 1 && len(coeff.Elements) != n {
		return fmt.Errorf("electrodep: explicit source term: coefficient length %d is not broadcast-compatible with %d mesh cells",
			len(coeff.Elements), n)
	}
	for i := 0; i < n; i++ {
		c := coeff.Elements[0]
		if len(coeff.Elements) == n {
			c = coeff.Elements[i]
		}
		sys.addRHS(i, c*m.CellVolumes[i])
	}
	return nil
}
