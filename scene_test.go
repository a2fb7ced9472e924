package globe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSceneContents(t *testing.T) {

	scene := NewScene("scene")

	sphere := NewMesh("sphere", NewSphereGeometry(0.5, 8, 8), nil)
	cloud := NewMesh("cloud", NewSphereGeometry(0.63, 8, 8), nil)
	ambient := NewAmbientLight("ambient", NewColor(1, 1, 1, 1), 0.2)
	point := NewPointLight("point", NewColor(1, 1, 1, 1), 1)

	sphere.AddChildren(cloud)
	scene.Add(sphere, ambient, point)

	assert.Equal(t, []*Mesh{sphere, cloud}, scene.Meshes())
	assert.Equal(t, []ILight{ambient, point}, scene.Lights())
	assert.Equal(t, INode(cloud), scene.FindNode("cloud"))
	assert.Nil(t, scene.FindNode("galaxy"))

	// Children follow their parents.
	sphere.Position = NewVector(1, 0, 0)
	assert.True(t, cloud.WorldPosition().Equals(NewVector(1, 0, 0)))

	scene.Remove(sphere)
	assert.Equal(t, []*Mesh{}, scene.Meshes())

}

func TestMeshDefaults(t *testing.T) {

	mesh := NewMesh("sphere", NewSphereGeometry(2, 8, 8), nil)

	assert.True(t, mesh.Visible)
	assert.NotNil(t, mesh.Material)
	assert.True(t, mesh.Type().Is(NodeTypeNode))
	assert.Equal(t, NodeTypeMesh, mesh.Type())

	mesh.Scale = NewVector(1, -3, 2)
	assert.InDelta(t, 6, mesh.BoundingRadius(), 1e-9)

}
