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

// Variable is a lazily evaluated, dependency-tracked numeric field. A
// leaf Variable holds a value set from outside; a derived Variable
// holds a recompute rule that is invoked, at most once per upstream
// change, when the value is read. Mutating a Variable marks all of its
// transitive dependents stale, so a read is always consistent with the
// current state of every dependency.
//
// Evaluation is single-threaded; callers sharing a Variable across
// goroutines must serialize access themselves.
type Variable struct {
	name  string
	n     int // expected value length; 0 means unconstrained
	value *sparse.DenseArray
	fresh bool

	// calc is the recompute rule; nil for leaf variables.
	calc func() (*sparse.DenseArray, error)

	requires   []*Variable
	dependents []*Variable

	// visiting guards against dependency cycles during recompute.
	visiting bool
}

// NewVariable creates a leaf variable holding value.
func NewVariable(name string, value *sparse.DenseArray) *Variable {
	return &Variable{
		name:  name,
		n:     len(value.Elements),
		value: value,
		fresh: true,
	}
}

// NewScalarVariable creates a leaf variable holding a single uniform
// value, broadcast-compatible with any cell-indexed quantity.
func NewScalarVariable(name string, value float64) *Variable {
	return NewVariable(name, Dense([]float64{value}))
}

// NewDerivedVariable creates a variable of length n whose value is
// recomputed by calc whenever a dependency has changed since the last
// read. The dependencies are registered with Requires.
func NewDerivedVariable(name string, n int, calc func() (*sparse.DenseArray, error), deps ...*Variable) *Variable {
	v := &Variable{name: name, n: n, calc: calc}
	for _, d := range deps {
		v.Requires(d)
	}
	return v
}

// Dense wraps vals in a one-dimensional dense array.
func Dense(vals []float64) *sparse.DenseArray {
	a := sparse.ZerosDense(len(vals))
	copy(a.Elements, vals)
	return a
}

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Requires registers u as a dependency of v and returns u unchanged, so
// dependencies can be registered inline during construction. Requiring
// a variable that transitively requires v back makes both unreadable:
// the cycle is reported as an error on the next read.
func (v *Variable) Requires(u *Variable) *Variable {
	v.requires = append(v.requires, u)
	u.dependents = append(u.dependents, v)
	return u
}

// Value returns the variable's value, first recomputing it if any
// transitive dependency has changed since the last read.
func (v *Variable) Value() (*sparse.DenseArray, error) {
	if v.fresh {
		return v.value, nil
	}
	if v.visiting {
		return nil, fmt.Errorf("electrodep: variable %s transitively requires itself", v.name)
	}
	v.visiting = true
	defer func() { v.visiting = false }()
	for _, u := range v.requires {
		if _, err := u.Value(); err != nil {
			return nil, err
		}
	}
	if v.calc != nil {
		val, err := v.calc()
		if err != nil {
			return nil, err
		}
		if v.n > 0 && len(val.Elements) != v.n {
			return nil, fmt.Errorf("electrodep: variable %s: recomputed length %d does not match binding length %d",
				v.name, len(val.Elements), v.n)
		}
		v.value = val
	}
	v.fresh = true
	return v.value, nil
}

// SetValue replaces the variable's value and marks all transitive
// dependents stale.
func (v *Variable) SetValue(value *sparse.DenseArray) error {
	if v.n > 0 && len(value.Elements) != v.n {
		return fmt.Errorf("electrodep: variable %s: value length %d does not match binding length %d",
			v.name, len(value.Elements), v.n)
	}
	v.value = value
	v.fresh = true
	for _, d := range v.dependents {
		d.invalidate()
	}
	return nil
}

// invalidate marks v and its transitive dependents stale. Dependents of
// an already-stale variable are stale themselves, so the walk stops
// there; this also keeps the walk finite if the graph has a cycle.
func (v *Variable) invalidate() {
	if !v.fresh {
		return
	}
	v.fresh = false
	for _, d := range v.dependents {
		d.invalidate()
	}
}
