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

// Package electrodep is a finite-volume framework for coupled
// phase-field and electrochemical interface problems. Field quantities
// are represented as lazily evaluated, dependency-tracked variables on
// a discretized mesh; equations assemble discretization terms into a
// linear system and drive a solver one timestep at a time.
package electrodep

// Version gives the version number.
const Version = "0.1.0"
