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

import "fmt"

// DefaultSolutionTolerance is the convergence tolerance used by
// equations unless overridden.
const DefaultSolutionTolerance = 1e-4

// Equation orchestrates one PDE: a target variable, an immutable
// sequence of discretization terms, and a solver. Solve may be called
// repeatedly, once per timestep or once per nonlinear iteration; the
// converged flag always reflects the most recent call.
//
// The PreSolve, PostSolve and UpdateVar hooks default to no-ops (for
// UpdateVar, to writing the solution into the target variable), so a
// physical model can specialize any of them without touching the
// orchestration.
type Equation struct {
	v      *CellVariable
	terms  []Term
	solver Solver

	// SolutionTolerance is the relative residual below which a solve
	// counts as converged.
	SolutionTolerance float64

	// PreSolve, if non-nil, runs before the system is assembled.
	PreSolve func(eq *Equation) error
	// PostSolve, if non-nil, runs after the variable is updated.
	PostSolve func(eq *Equation) error
	// UpdateVar, if non-nil, replaces the default update of the target
	// variable with the solved field x.
	UpdateVar func(eq *Equation, x []float64) error

	converged bool
}

// NewEquation creates an equation solving for v with the given terms.
func NewEquation(v *CellVariable, terms []Term, solver Solver) *Equation {
	return &Equation{
		v:                 v,
		terms:             append([]Term(nil), terms...),
		solver:            solver,
		SolutionTolerance: DefaultSolutionTolerance,
		converged:         true,
	}
}

// Var returns the equation's target variable.
func (eq *Equation) Var() *CellVariable { return eq.v }

// IsConverged reports whether the most recent Solve call converged.
// Before any Solve call it reports true: there is nothing to do yet.
func (eq *Equation) IsConverged() bool { return eq.converged }

// Solve assembles the terms into a linear system for the target
// variable, invokes the solver with the current field as the initial
// guess, updates the variable, and records convergence against
// SolutionTolerance. Solver non-convergence is not an error; structural
// failures during assembly are.
func (eq *Equation) Solve(dt float64) error {
	if eq.PreSolve != nil {
		if err := eq.PreSolve(eq); err != nil {
			return err
		}
	}
	n := eq.v.Mesh().NCells()
	if n == 0 {
		eq.converged = true
		return nil
	}
	sys := NewSystem(n)
	for _, t := range eq.terms {
		if err := t.AddTo(sys, eq.v, dt); err != nil {
			return fmt.Errorf("electrodep: solving for %s: %v", eq.v.Name(), err)
		}
	}
	cur, err := eq.v.Value()
	if err != nil {
		return err
	}
	x := make([]float64, n)
	copy(x, cur.Elements)
	residual, err := eq.solver.Solve(sys, x)
	if err != nil {
		return fmt.Errorf("electrodep: solving for %s: %v", eq.v.Name(), err)
	}
	if eq.UpdateVar != nil {
		if err := eq.UpdateVar(eq, x); err != nil {
			return err
		}
	} else if err := eq.v.SetValue(Dense(x)); err != nil {
		return err
	}
	eq.converged = residual <= eq.SolutionTolerance
	if eq.PostSolve != nil {
		if err := eq.PostSolve(eq); err != nil {
			return err
		}
	}
	return nil
}
