package globe

// Mesh represents a singular visual instantiation of a Geometry, drawn with a Material. A Geometry contains the vertex
// information (what to draw); a Mesh references it to draw it with a specific Position, Rotation, and/or Scale (where and how to draw).
type Mesh struct {
	*Node
	Geometry *Geometry
	Material *Material
	Visible  bool // Whether the Mesh is rendered.
}

// NewMesh creates a new Mesh of the Geometry and Material provided. If the Material is nil, a default Material is used.
func NewMesh(name string, geometry *Geometry, material *Material) *Mesh {

	if material == nil {
		material = NewMaterial(name)
	}

	mesh := &Mesh{
		Node:     newNode(name, NodeTypeMesh),
		Geometry: geometry,
		Material: material,
		Visible:  true,
	}
	mesh.owner = mesh

	return mesh

}

// BoundingRadius returns the radius of a sphere around the Mesh's origin that encloses it, taking its scale into account.
func (mesh *Mesh) BoundingRadius() float64 {
	if mesh.Geometry == nil {
		return 0
	}
	maxScale := max(abs(mesh.Scale.X), abs(mesh.Scale.Y), abs(mesh.Scale.Z))
	return mesh.Geometry.Radius() * maxScale
}

func abs(value float64) float64 {
	if value < 0 {
		return -value
	}
	return value
}
