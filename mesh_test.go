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

import "testing"

func TestGrid2D(t *testing.T) {
	m := NewGrid2D(3, 2, 1, 2)
	if m.NCells() != 6 {
		t.Errorf("NCells = %d, want 6", m.NCells())
	}
	// Interior: 2 rows × 2 horizontal pairs + 1 × 3 vertical pairs;
	// exterior: 2 per row edge + 2 per column edge.
	wantFaces := 4 + 3 + 2*2 + 2*3
	if m.NFaces() != wantFaces {
		t.Errorf("NFaces = %d, want %d", m.NFaces(), wantFaces)
	}
	for i, v := range m.CellVolumes {
		if v != 2 {
			t.Errorf("cell %d: volume = %g, want 2", i, v)
		}
	}
	if c := m.CellCenters[0]; c.X != 0.5 || c.Y != 1 {
		t.Errorf("cell 0 center = %v, want (0.5, 1)", c)
	}
	if c := m.CellCenters[5]; c.X != 2.5 || c.Y != 3 {
		t.Errorf("cell 5 center = %v, want (2.5, 3)", c)
	}
	for f := range m.FaceID1 {
		i, j := m.FaceID1[f], m.FaceID2[f]
		if i < 0 || i >= m.NCells() || j < 0 || j >= m.NCells() {
			t.Errorf("face %d joins cells %d, %d outside the mesh", f, i, j)
		}
		if a := m.FaceAlpha[f]; a < 0 || a > 1 {
			t.Errorf("face %d: alpha = %g outside [0,1]", f, a)
		}
		if i != j && m.FaceAlpha[f] != 0.5 {
			t.Errorf("interior face %d: alpha = %g, want 0.5", f, m.FaceAlpha[f])
		}
	}
}

func TestGrid2DNeighbors(t *testing.T) {
	m := NewGrid2D(3, 2, 1, 1)
	// Interior-ish cell 4 (x=1, y=1).
	if w := m.west(4); w != 3 {
		t.Errorf("west(4) = %d, want 3", w)
	}
	if e := m.east(4); e != 5 {
		t.Errorf("east(4) = %d, want 5", e)
	}
	if s := m.south(4); s != 1 {
		t.Errorf("south(4) = %d, want 1", s)
	}
	if n := m.north(4); n != -1 {
		t.Errorf("north(4) = %d, want -1", n)
	}
	// Corner cell 0.
	if w := m.west(0); w != -1 {
		t.Errorf("west(0) = %d, want -1", w)
	}
	if s := m.south(0); s != -1 {
		t.Errorf("south(0) = %d, want -1", s)
	}
}

func TestGrid2DEmpty(t *testing.T) {
	m := NewGrid2D(0, 0, 1, 1)
	if m.NCells() != 0 || m.NFaces() != 0 {
		t.Errorf("empty mesh has %d cells and %d faces", m.NCells(), m.NFaces())
	}
}
