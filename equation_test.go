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
	"bytes"
	"strings"
	"testing"
)

func TestEquationDefaultConverged(t *testing.T) {
	m := NewGrid2D(2, 2, 1, 1)
	c := UniformCellVariable("c", m, 1, WithOld())
	eq := NewEquation(c, nil, DirectSolver{})
	if !eq.IsConverged() {
		t.Error("a freshly constructed equation does not report converged")
	}
	if eq.SolutionTolerance != DefaultSolutionTolerance {
		t.Errorf("solution tolerance = %g, want %g", eq.SolutionTolerance, DefaultSolutionTolerance)
	}
	if eq.Var() != c {
		t.Error("Var did not return the target variable")
	}
}

// A uniform field with zero-flux boundaries is a steady state of the
// diffusion equation: one transient+diffusion step must leave it
// unchanged.
func TestDiffusionSteadyState(t *testing.T) {
	m := NewGrid2D(3, 3, 1, 1)
	c := UniformCellVariable("c", m, 2, WithOld())
	diff := UniformCellVariable("D", m, 1)
	eq := NewEquation(c, []Term{
		TransientTerm{},
		DiffusionTerm{Coeff: NewHarmonicCellToFaceVariable(diff, FusedEvaluation)},
	}, DirectSolver{})
	if err := eq.Solve(0.1); err != nil {
		t.Fatal(err)
	}
	if !eq.IsConverged() {
		t.Error("direct solve did not converge")
	}
	val, err := c.Value()
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range val.Elements {
		if absDifferent(v, 2, 1e-10) {
			t.Errorf("cell %d: value = %g, want 2", i, v)
		}
	}
}

// Diffusion with zero-flux boundaries conserves mass while smoothing
// gradients.
func TestDiffusionConservesMass(t *testing.T) {
	m := NewGrid2D(4, 1, 1, 1)
	c, err := NewCellVariable("c", m, []float64{4, 0, 0, 0}, WithOld())
	if err != nil {
		t.Fatal(err)
	}
	diff := UniformCellVariable("D", m, 1)
	eq := NewEquation(c, []Term{
		TransientTerm{},
		DiffusionTerm{Coeff: NewHarmonicCellToFaceVariable(diff, FusedEvaluation)},
	}, DirectSolver{})
	for step := 0; step < 5; step++ {
		if err := c.UpdateOld(); err != nil {
			t.Fatal(err)
		}
		if err := eq.Solve(0.25); err != nil {
			t.Fatal(err)
		}
	}
	val, err := c.Value()
	if err != nil {
		t.Fatal(err)
	}
	sum := 0.
	for _, v := range val.Elements {
		sum += v
	}
	if different(sum, 4, 1e-10) {
		t.Errorf("total mass = %g, want 4", sum)
	}
	if val.Elements[0] <= val.Elements[3] {
		t.Errorf("profile did not stay monotone: %v", val.Elements)
	}
	if val.Elements[3] <= 0 {
		t.Errorf("mass did not diffuse to the far cell: %v", val.Elements)
	}
}

// One step of the metal-ion equation on the documented 2×2 interface:
// the implicit source removes ions from the two interface-adjacent
// cells only, and the solution keeps the problem's diagonal symmetry.
func TestMetalIonEquationStep(t *testing.T) {
	m := NewGrid2D(2, 2, 1, 1)
	distance, err := NewDistanceVariable("distance", m, []float64{-0.5, 0.5, 0.5, 1.5})
	if err != nil {
		t.Fatal(err)
	}
	ion := UniformCellVariable("ion", m, 1, WithOld())
	eq, err := MetalIonEquation(ion, distance, 1, NewScalarVariable("rate", 1), 1,
		DirectSolver{}, FusedEvaluation)
	if err != nil {
		t.Fatal(err)
	}
	if err := eq.Solve(0.1); err != nil {
		t.Fatal(err)
	}
	if !eq.IsConverged() {
		t.Error("direct solve did not converge")
	}
	val, err := ion.Value()
	if err != nil {
		t.Fatal(err)
	}
	if different(val.Elements[1], val.Elements[2], 1e-12) {
		t.Errorf("interface cells differ: %g vs %g", val.Elements[1], val.Elements[2])
	}
	if val.Elements[1] >= 1 {
		t.Errorf("interface cell concentration %g did not decrease", val.Elements[1])
	}
	sum := 0.
	for _, v := range val.Elements {
		sum += v
	}
	if sum >= 4 {
		t.Errorf("total ion content %g did not decrease", sum)
	}
}

// Gauss-Seidel reports failure through the converged flag, not an
// error, when starved of iterations.
func TestGaussSeidelNonConvergence(t *testing.T) {
	m := NewGrid2D(4, 1, 1, 1)
	c, err := NewCellVariable("c", m, []float64{4, 0, 0, 0}, WithOld())
	if err != nil {
		t.Fatal(err)
	}
	diff := UniformCellVariable("D", m, 1)
	eq := NewEquation(c, []Term{
		TransientTerm{},
		DiffusionTerm{Coeff: NewHarmonicCellToFaceVariable(diff, FusedEvaluation)},
	}, GaussSeidelSolver{Tolerance: 1e-30, MaxIterations: 1})
	eq.SolutionTolerance = 1e-30
	if err := eq.Solve(0.25); err != nil {
		t.Fatal(err)
	}
	if eq.IsConverged() {
		t.Error("one Gauss-Seidel sweep reported convergence at 1e-30")
	}
}

// With enough sweeps Gauss-Seidel matches the direct solve.
func TestGaussSeidelConvergence(t *testing.T) {
	m := NewGrid2D(4, 1, 1, 1)
	c, err := NewCellVariable("c", m, []float64{4, 0, 0, 0}, WithOld())
	if err != nil {
		t.Fatal(err)
	}
	diff := UniformCellVariable("D", m, 1)
	eq := NewEquation(c, []Term{
		TransientTerm{},
		DiffusionTerm{Coeff: NewHarmonicCellToFaceVariable(diff, FusedEvaluation)},
	}, GaussSeidelSolver{Tolerance: 1e-10, MaxIterations: 500})
	if err := eq.Solve(0.25); err != nil {
		t.Fatal(err)
	}
	if !eq.IsConverged() {
		t.Error("Gauss-Seidel did not converge in 500 sweeps")
	}
}

func TestTransientTermRequiresHistory(t *testing.T) {
	m := NewGrid2D(2, 2, 1, 1)
	c := UniformCellVariable("c", m, 1) // no history
	eq := NewEquation(c, []Term{TransientTerm{}}, DirectSolver{})
	if err := eq.Solve(0.1); err == nil {
		t.Error("transient term on a history-free variable did not fail")
	}
}

func TestEquationHooks(t *testing.T) {
	m := NewGrid2D(2, 2, 1, 1)
	c := UniformCellVariable("c", m, 1, WithOld())
	eq := NewEquation(c, []Term{TransientTerm{}}, DirectSolver{})
	var pre, post, update int
	eq.PreSolve = func(*Equation) error { pre++; return nil }
	eq.PostSolve = func(*Equation) error { post++; return nil }
	eq.UpdateVar = func(eq *Equation, x []float64) error {
		update++
		return eq.Var().SetValue(Dense(x))
	}
	if err := eq.Solve(0.1); err != nil {
		t.Fatal(err)
	}
	if pre != 1 || post != 1 || update != 1 {
		t.Errorf("hooks ran pre=%d post=%d update=%d times, want 1 each", pre, post, update)
	}
}

func TestModelRun(t *testing.T) {
	m := NewGrid2D(2, 2, 1, 1)
	distance, err := NewDistanceVariable("distance", m, []float64{-0.5, 0.5, 0.5, 1.5})
	if err != nil {
		t.Fatal(err)
	}
	ion := UniformCellVariable("ion", m, 1, WithOld())
	eq, err := MetalIonEquation(ion, distance, 1, NewScalarVariable("rate", 1), 1,
		DirectSolver{}, FusedEvaluation)
	if err != nil {
		t.Fatal(err)
	}
	var log bytes.Buffer
	model := &Model{Equations: []*Equation{eq}, Dt: 0.05, NSteps: 3, LogWriter: &log}
	if err := model.Run(); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(log.String(), "Step"); n != 3 {
		t.Errorf("logged %d steps, want 3", n)
	}
	val, err := ion.Value()
	if err != nil {
		t.Fatal(err)
	}
	if val.Elements[1] >= 1 || val.Elements[1] <= 0 {
		t.Errorf("interface cell concentration = %g after 3 steps", val.Elements[1])
	}
}
