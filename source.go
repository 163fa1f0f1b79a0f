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

// concFloor is the smallest ion concentration used in source
// denominators. Physical concentrations are non-negative; values at or
// below the floor are clamped rather than rejected.
const concFloor = 1e-20

// MetalIonSourceVariable evaluates the per-cell source coefficient for
// a metal-ion transport equation. The source simulates loss of material
// from bulk diffusion as the deposition interface advances, and exists
// only on cells in front of the interface:
//
//	source = v·A / (V·Ω·c)
//
// with deposition rate v, cell interface area A, cell volume V, metal
// atomic volume Ω, and ion concentration c. The interface area is zero
// away from the interface, which zeroes the source there.
type MetalIonSourceVariable struct {
	Variable
	mesh           *Mesh
	ionVar         *CellVariable
	interfaceAreas *Variable
	depositionRate *Variable
	atomicVolume   float64
}

// NewMetalIonSourceVariable creates the source coefficient for ionVar
// over the interface located by distance. depositionRate may be a
// per-cell field or a scalar variable (see NewScalarVariable); both are
// broadcast against the cell arrays. The variable retains no history;
// it is always recomputed from its dependencies.
func NewMetalIonSourceVariable(ionVar *CellVariable, distance *DistanceVariable,
	depositionRate *Variable, atomicVolume float64) (*MetalIonSourceVariable, error) {
	if atomicVolume <= 0 {
		return nil, fmt.Errorf("electrodep: metal ion source: atomic volume %g must be positive", atomicVolume)
	}
	m := distance.Mesh()
	if ionVar.Mesh() != m {
		return nil, fmt.Errorf("electrodep: metal ion source: ion variable %s and distance variable %s are bound to different meshes",
			ionVar.Name(), distance.Name())
	}
	s := &MetalIonSourceVariable{
		Variable: Variable{
			name: ionVar.Name() + ".metalIonSource",
			n:    m.NCells(),
		},
		mesh:         m,
		ionVar:       ionVar,
		atomicVolume: atomicVolume,
	}
	s.calc = s.calcValue
	s.Requires(&ionVar.Variable)
	s.interfaceAreas = s.Requires(distance.CellInterfaceAreas())
	s.depositionRate = s.Requires(depositionRate)
	return s, nil
}

func (s *MetalIonSourceVariable) calcValue() (*sparse.DenseArray, error) {
	ion, err := s.ionVar.Value()
	if err != nil {
		return nil, err
	}
	areas, err := s.interfaceAreas.Value()
	if err != nil {
		return nil, err
	}
	rate, err := s.depositionRate.Value()
	if err != nil {
		return nil, err
	}
	n := s.mesh.NCells()
	if len(rate.Elements) != 1 && len(rate.Elements) != n {
		return nil, fmt.Errorf("electrodep: variable %s: deposition rate length %d is not broadcast-compatible with %d mesh cells",
			s.name, len(rate.Elements), n)
	}
	out := sparse.ZerosDense(n)
	for i := 0; i < n; i++ {
		v := rate.Elements[0]
		if len(rate.Elements) == n {
			v = rate.Elements[i]
		}
		c := ion.Elements[i]
		if c <= concFloor {
			c = concFloor
		}
		out.Elements[i] = v * areas.Elements[i] /
			(s.mesh.CellVolumes[i] * s.atomicVolume) / c
	}
	return out, nil
}
