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

// Point is a location in the model domain.
type Point struct {
	X, Y float64
}

// Mesh holds the geometry and connectivity of a discretized model
// domain. Cell quantities are indexed by cell id and face quantities by
// face id. Each face joins the two cells FaceID1[i] and FaceID2[i];
// exterior faces join a cell to itself, the same way boundary cells in
// a staggered grid are adjacent to themselves.
type Mesh struct {
	Nx, Ny int     // number of cells in each direction
	Dx, Dy float64 // cell size [m]

	CellVolumes []float64 // cell volumes, indexed by cell id [m³]
	CellCenters []Point   // cell centers, indexed by cell id

	FaceID1   []int     // first adjacent cell, indexed by face id
	FaceID2   []int     // second adjacent cell, indexed by face id
	FaceAlpha []float64 // interpolation weight between ID1 and ID2 [0,1]
	FaceAreas []float64 // face areas [m²]
	FaceDists []float64 // distance between adjacent cell centers [m]
}

// NCells returns the number of cells in the mesh.
func (m *Mesh) NCells() int { return len(m.CellVolumes) }

// NFaces returns the number of faces in the mesh.
func (m *Mesh) NFaces() int { return len(m.FaceID1) }

// NewGrid2D creates a structured rectangular mesh with nx × ny cells of
// size dx × dy (unit depth). Cells are numbered row-major from the
// lower-left corner. Interior faces carry an interpolation weight of
// 0.5; exterior faces join their cell to itself.
func NewGrid2D(nx, ny int, dx, dy float64) *Mesh {
	m := &Mesh{Nx: nx, Ny: ny, Dx: dx, Dy: dy}
	if nx <= 0 || ny <= 0 {
		return m
	}
	n := nx * ny
	m.CellVolumes = make([]float64, n)
	m.CellCenters = make([]Point, n)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			i := y*nx + x
			m.CellVolumes[i] = dx * dy
			m.CellCenters[i] = Point{
				X: (float64(x) + 0.5) * dx,
				Y: (float64(y) + 0.5) * dy,
			}
		}
	}
	// Interior faces between horizontally adjacent cells.
	for y := 0; y < ny; y++ {
		for x := 0; x < nx-1; x++ {
			i := y*nx + x
			m.addFace(i, i+1, 0.5, dy, dx)
		}
	}
	// Interior faces between vertically adjacent cells.
	for y := 0; y < ny-1; y++ {
		for x := 0; x < nx; x++ {
			i := y*nx + x
			m.addFace(i, i+nx, 0.5, dx, dy)
		}
	}
	// Exterior faces along the domain boundary.
	for y := 0; y < ny; y++ {
		m.addFace(y*nx, y*nx, 1, dy, dx/2)           // west edge
		m.addFace(y*nx+nx-1, y*nx+nx-1, 1, dy, dx/2) // east edge
	}
	for x := 0; x < nx; x++ {
		m.addFace(x, x, 1, dx, dy/2)                     // south edge
		m.addFace((ny-1)*nx+x, (ny-1)*nx+x, 1, dx, dy/2) // north edge
	}
	return m
}

func (m *Mesh) addFace(id1, id2 int, alpha, area, dist float64) {
	m.FaceID1 = append(m.FaceID1, id1)
	m.FaceID2 = append(m.FaceID2, id2)
	m.FaceAlpha = append(m.FaceAlpha, alpha)
	m.FaceAreas = append(m.FaceAreas, area)
	m.FaceDists = append(m.FaceDists, dist)
}

// Neighbor cell ids on a structured grid, or -1 where the cell is on
// the corresponding domain edge.

func (m *Mesh) west(i int) int {
	if i%m.Nx == 0 {
		return -1
	}
	return i - 1
}

func (m *Mesh) east(i int) int {
	if i%m.Nx == m.Nx-1 {
		return -1
	}
	return i + 1
}

func (m *Mesh) south(i int) int {
	if i < m.Nx {
		return -1
	}
	return i - m.Nx
}

func (m *Mesh) north(i int) int {
	if i >= m.Nx*(m.Ny-1) {
		return -1
	}
	return i + m.Nx
}
