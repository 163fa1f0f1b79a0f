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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Solver solves an assembled linear system. Solve updates x in place
// (x holds the initial guess on entry) and reports the achieved
// relative residual ‖Ax-b‖/‖b‖. Failure to converge is reported through
// the residual, not an error: the caller decides whether a large
// residual is fatal.
type Solver interface {
	Solve(sys *System, x []float64) (residual float64, err error)
}

// DirectSolver solves the system by dense LU factorization.
type DirectSolver struct{}

// Solve implements Solver.
func (DirectSolver) Solve(sys *System, x []float64) (float64, error) {
	var sol mat.VecDense
	if err := sol.SolveVec(sys.A, sys.B); err != nil {
		// Singular or severely ill-conditioned system; report as
		// non-convergence rather than failing the solve step.
		return math.Inf(1), nil
	}
	for i := range x {
		x[i] = sol.AtVec(i)
	}
	return relativeResidual(sys, x), nil
}

// GaussSeidelSolver solves the system by Gauss-Seidel iteration,
// sweeping until the relative residual drops below Tolerance or
// MaxIterations sweeps have run.
type GaussSeidelSolver struct {
	Tolerance     float64
	MaxIterations int
}

// Solve implements Solver.
func (s GaussSeidelSolver) Solve(sys *System, x []float64) (float64, error) {
	n := len(x)
	res := relativeResidual(sys, x)
	for iter := 0; iter < s.MaxIterations && res > s.Tolerance; iter++ {
		for i := 0; i < n; i++ {
			aii := sys.A.At(i, i)
			if aii == 0 {
				return math.Inf(1), nil
			}
			sum := sys.B.AtVec(i)
			for j := 0; j < n; j++ {
				if j != i {
					sum -= sys.A.At(i, j) * x[j]
				}
			}
			x[i] = sum / aii
		}
		res = relativeResidual(sys, x)
	}
	return res, nil
}

func relativeResidual(sys *System, x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	r := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := -sys.B.AtVec(i)
		for j := 0; j < n; j++ {
			sum += sys.A.At(i, j) * x[j]
		}
		r[i] = sum
	}
	denom := floats.Norm(rawVec(sys.B), 2)
	if denom == 0 {
		denom = 1
	}
	return floats.Norm(r, 2) / denom
}

func rawVec(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
