package globe

import "math"

// Geometry represents the shape of a Mesh: vertex positions, normals, and texture coordinates,
// along with the indices that connect those vertices into triangles. A Geometry is immutable once built.
type Geometry struct {
	Name      string
	Positions []Vector // Vertex positions in local space
	Normals   []Vector // Vertex normals, one per position
	UVs       []Vector // Vertex texture coordinates (X = U, Y = V), one per position; V = 1 is the top of the texture
	Indices   []int    // Triangle indices, three per triangle, counter-clockwise when viewed from the outside

	radius float64
}

// SphereGeometry holds the parameters used to generate a UV sphere Geometry.
type SphereGeometry struct {
	Radius         float64
	WidthSegments  int // Number of segments around the sphere's equator. Minimum 3.
	HeightSegments int // Number of segments from pole to pole. Minimum 2.
}

// NewSphereGeometry creates a UV sphere Geometry with the specified radius and number of width and height segments.
// Vertices are laid out in rows from the north pole (+Y) to the south pole, with U wrapping around the Y axis.
func NewSphereGeometry(radius float64, widthSegments, heightSegments int) *Geometry {

	params := SphereGeometry{
		Radius:         radius,
		WidthSegments:  max(3, widthSegments),
		HeightSegments: max(2, heightSegments),
	}

	geo := &Geometry{
		Name:   "SphereGeometry",
		radius: radius,
	}

	rowLength := params.WidthSegments + 1
	vertexCount := rowLength * (params.HeightSegments + 1)

	geo.Positions = make([]Vector, 0, vertexCount)
	geo.Normals = make([]Vector, 0, vertexCount)
	geo.UVs = make([]Vector, 0, vertexCount)

	for iy := 0; iy <= params.HeightSegments; iy++ {

		v := float64(iy) / float64(params.HeightSegments)

		// Offset the pole UVs by half a segment so the triangle fans there sample the middle of each column.
		uOffset := 0.0
		if iy == 0 {
			uOffset = 0.5 / float64(params.WidthSegments)
		} else if iy == params.HeightSegments {
			uOffset = -0.5 / float64(params.WidthSegments)
		}

		for ix := 0; ix <= params.WidthSegments; ix++ {

			u := float64(ix) / float64(params.WidthSegments)

			phi := u * math.Pi * 2
			theta := v * math.Pi

			pos := NewVector(
				-radius*math.Cos(phi)*math.Sin(theta),
				radius*math.Cos(theta),
				radius*math.Sin(phi)*math.Sin(theta),
			)

			geo.Positions = append(geo.Positions, pos)
			geo.Normals = append(geo.Normals, pos.Unit())
			geo.UVs = append(geo.UVs, NewVector(u+uOffset, 1-v, 0))

		}

	}

	geo.Indices = make([]int, 0, params.WidthSegments*params.HeightSegments*6)

	for iy := 0; iy < params.HeightSegments; iy++ {

		for ix := 0; ix < params.WidthSegments; ix++ {

			a := iy*rowLength + ix + 1
			b := iy*rowLength + ix
			c := (iy+1)*rowLength + ix
			d := (iy+1)*rowLength + ix + 1

			// The pole rows collapse to a single point, so only one triangle per quad is needed there.
			if iy != 0 {
				geo.Indices = append(geo.Indices, a, b, d)
			}
			if iy != params.HeightSegments-1 {
				geo.Indices = append(geo.Indices, b, c, d)
			}

		}

	}

	return geo

}

// Radius returns the bounding radius of the Geometry (for a sphere, its radius).
func (geo *Geometry) Radius() float64 {
	return geo.radius
}

// VertexCount returns the number of vertices in the Geometry.
func (geo *Geometry) VertexCount() int {
	return len(geo.Positions)
}

// TriangleCount returns the number of triangles in the Geometry.
func (geo *Geometry) TriangleCount() int {
	return len(geo.Indices) / 3
}
