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
	"io"
	"time"
)

// MetalIonEquation builds the transport equation for a metal-ion
// concentration over an advancing deposition interface:
//
//	∂c/∂t = ∇·(D∇c) - source·c
//
// with the diffusivity interpolated onto faces by harmonic mean and the
// interface source entering implicitly. The returned equation owns its
// source variable; the ion variable must retain history for the
// transient term.
func MetalIonEquation(ionVar *CellVariable, distance *DistanceVariable,
	diffusivity float64, depositionRate *Variable, atomicVolume float64,
	solver Solver, strategy EvalStrategy) (*Equation, error) {

	source, err := NewMetalIonSourceVariable(ionVar, distance, depositionRate, atomicVolume)
	if err != nil {
		return nil, err
	}
	diffCoeff := UniformCellVariable(ionVar.Name()+".diffusivity", ionVar.Mesh(), diffusivity)
	terms := []Term{
		TransientTerm{},
		DiffusionTerm{Coeff: NewHarmonicCellToFaceVariable(diffCoeff, strategy)},
		ImplicitSourceTerm{Coeff: &source.Variable},
	}
	return NewEquation(ionVar, terms, solver), nil
}

// Model drives one or more equations through repeated solve steps.
type Model struct {
	Equations []*Equation
	Dt        float64 // timestep [s]
	NSteps    int

	// LogWriter, if non-nil, receives per-step progress messages.
	LogWriter io.Writer
}

// Run advances all equations NSteps timesteps. Before each step the
// previous-timestep snapshot of every history-retaining target variable
// is refreshed. A step whose solve does not converge is logged and the
// run continues; the caller can inspect IsConverged afterward and
// decide whether to retry with a smaller timestep.
func (m *Model) Run() error {
	startTime := time.Now()
	stepTime := time.Now()
	for step := 1; step <= m.NSteps; step++ {
		for _, eq := range m.Equations {
			if eq.Var().HasOld() {
				if err := eq.Var().UpdateOld(); err != nil {
					return err
				}
			}
			if err := eq.Solve(m.Dt); err != nil {
				return err
			}
		}
		if m.LogWriter != nil {
			converged := true
			for _, eq := range m.Equations {
				if !eq.IsConverged() {
					converged = false
				}
			}
			fmt.Fprintf(m.LogWriter, "Step %-4d  walltime=%6.3gs  Δwalltime=%4.2gs  "+
				"timestep=%gs  converged=%v\n",
				step, time.Since(startTime).Seconds(),
				time.Since(stepTime).Seconds(), m.Dt, converged)
			stepTime = time.Now()
		}
	}
	return nil
}
