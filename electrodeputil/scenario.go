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

package electrodeputil

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/phasefield/electrodep"
)

// Scenario describes the mesh and the physical parameters of one
// simulation. Scenarios are stored as TOML files.
type Scenario struct {
	Nx, Ny int     // number of cells in each direction
	Dx, Dy float64 // cell size [m]

	Dt float64 // timestep [s]

	Diffusivity          float64 // ion diffusivity [m²/s]
	InitialConcentration float64 // bulk ion concentration [mol/m³]
	DepositionRate       float64 // interface advance rate [m/s]
	AtomicVolume         float64 // metal atomic volume [m³/mol]

	// InterfacePosition is the x coordinate of the initial planar
	// deposition interface; metal lies to its west.
	InterfacePosition float64
}

// DefaultScenario returns a small nondimensionalized test problem.
func DefaultScenario() *Scenario {
	return &Scenario{
		Nx: 20, Ny: 20,
		Dx: 1, Dy: 1,
		Dt:                   0.1,
		Diffusivity:          1,
		InitialConcentration: 1,
		DepositionRate:       1,
		AtomicVolume:         1,
		InterfacePosition:    5,
	}
}

// LoadScenario reads a scenario from the TOML file at filename.
// Omitted fields keep their default values.
func LoadScenario(filename string) (*Scenario, error) {
	s := DefaultScenario()
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("electrodep: the scenario file %s does not appear to exist: %v", filename, err)
	}
	if _, err := toml.DecodeFile(filename, s); err != nil {
		return nil, fmt.Errorf("electrodep: problem parsing scenario file %s: %v", filename, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the scenario for structural problems.
func (s *Scenario) Validate() error {
	if s.Nx <= 0 || s.Ny <= 0 {
		return fmt.Errorf("electrodep: scenario: grid is %d × %d cells", s.Nx, s.Ny)
	}
	if s.Dx <= 0 || s.Dy <= 0 {
		return fmt.Errorf("electrodep: scenario: cell size is %g × %g", s.Dx, s.Dy)
	}
	if s.Dt <= 0 {
		return fmt.Errorf("electrodep: scenario: timestep %g must be positive", s.Dt)
	}
	if s.Diffusivity <= 0 {
		return fmt.Errorf("electrodep: scenario: diffusivity %g must be positive", s.Diffusivity)
	}
	if s.AtomicVolume <= 0 {
		return fmt.Errorf("electrodep: scenario: atomic volume %g must be positive", s.AtomicVolume)
	}
	return nil
}

// Mesh creates the mesh the scenario describes.
func (s *Scenario) Mesh() *electrodep.Mesh {
	return electrodep.NewGrid2D(s.Nx, s.Ny, s.Dx, s.Dy)
}

// DistanceValues returns the signed distance from each cell center to
// the initial planar interface.
func (s *Scenario) DistanceValues(m *electrodep.Mesh) []float64 {
	vals := make([]float64, m.NCells())
	for i, c := range m.CellCenters {
		vals[i] = c.X - s.InterfacePosition
	}
	return vals
}
