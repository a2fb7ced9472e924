package globe

import (
	"bytes"
	"image"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportTestScene() (*Scene, *Mesh) {

	scene := NewScene("earth")

	diffuse := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for i := range diffuse.Pix {
		diffuse.Pix[i] = 0xff
	}

	mat := NewMaterial("earth")
	mat.Map = NewTextureFromImage("earthMap", diffuse)

	sphere := NewMesh("sphere", NewSphereGeometry(0.5, 16, 16), mat)
	sphere.Rotation.Y = 1.2

	cloudMat := NewMaterial("cloud")
	cloudMat.Transparent = true
	cloudMat.Map = NewTextureFromImage("cloudMap", image.NewGray(image.Rect(0, 0, 2, 2)))
	cloud := NewMesh("cloud", NewSphereGeometry(0.63, 16, 16), cloudMat)

	point := NewPointLight("point", NewColorFromHexInt(0xffffff), 1)
	point.Position = NewVector(5, 3, 8)

	sphere.AddChildren(cloud)
	scene.Add(sphere, NewAmbientLight("ambient", NewColorFromHexInt(0xffffff), 0.2), point)

	return scene, sphere

}

func BenchmarkExportGLTF(b *testing.B) {
	scene, _ := exportTestScene()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := ExportGLTF(&bytes.Buffer{}, scene); err != nil {
			b.Fatal(err)
		}
	}
}

func TestExportGLTF(t *testing.T) {

	scene, sphere := exportTestScene()

	buf := &bytes.Buffer{}
	require.NoError(t, ExportGLTF(buf, scene))

	doc := &gltf.Document{}
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(doc))

	require.Len(t, doc.Scenes, 1)
	assert.Equal(t, "earth", doc.Scenes[0].Name)
	assert.Len(t, doc.Scenes[0].Nodes, 3)
	require.Len(t, doc.Nodes, 4)
	require.Len(t, doc.Meshes, 2)
	require.Len(t, doc.Materials, 2)

	sphereNode := doc.Nodes[doc.Scenes[0].Nodes[0]]
	assert.Equal(t, "sphere", sphereNode.Name)
	require.NotNil(t, sphereNode.Mesh)
	require.Len(t, sphereNode.Children, 1)
	assert.Equal(t, "cloud", doc.Nodes[sphereNode.Children[0]].Name)

	quat := NewQuaternionFromEuler(sphere.Rotation)
	assert.InDeltaSlice(t, []float64{quat.X, quat.Y, quat.Z, quat.W}, sphereNode.Rotation[:], 1e-6)

	prim := doc.Meshes[*sphereNode.Mesh].Primitives[0]
	assert.EqualValues(t, sphere.Geometry.VertexCount(), doc.Accessors[prim.Attributes[gltf.POSITION]].Count)
	assert.EqualValues(t, len(sphere.Geometry.Indices), doc.Accessors[*prim.Indices].Count)
	assert.Contains(t, prim.Attributes, gltf.NORMAL)
	assert.Contains(t, prim.Attributes, gltf.TEXCOORD_0)

	cloudMat := doc.Materials[1]
	assert.Equal(t, "cloud", cloudMat.Name)
	assert.Equal(t, gltf.AlphaBlend, cloudMat.AlphaMode)

	assert.Len(t, doc.Images, 2)
	assert.Len(t, doc.Textures, 2)

	require.Contains(t, doc.ExtensionsUsed, lightspunctual.ExtensionName)
	lights, ok := doc.Extensions[lightspunctual.ExtensionName].(lightspunctual.Lights)
	require.True(t, ok, "document lights decode as %T", doc.Extensions[lightspunctual.ExtensionName])
	require.Len(t, lights, 1)
	assert.Equal(t, lightspunctual.TypePoint, lights[0].Type)
	assert.Equal(t, "point", lights[0].Name)
	assert.Equal(t, [3]float64{1, 1, 1}, lights[0].ColorOrDefault())
	assert.Equal(t, 1.0, lights[0].IntensityOrDefault())

	// The point light's node points back at the light by index.
	pointNode := doc.Nodes[doc.Scenes[0].Nodes[2]]
	assert.Equal(t, "point", pointNode.Name)
	assert.Equal(t, []float64{5, 3, 8}, pointNode.Translation[:])
	index, ok := pointNode.Extensions[lightspunctual.ExtensionName].(lightspunctual.LightIndex)
	require.True(t, ok, "node light decodes as %T", pointNode.Extensions[lightspunctual.ExtensionName])
	assert.Equal(t, lightspunctual.LightIndex(0), index)

}

func TestExportGLTFSkipsUnloadedTextures(t *testing.T) {

	scene := NewScene("scene")

	mat := NewMaterial("pending")
	mat.Map = newTexture("pending")
	scene.Add(NewMesh("sphere", NewSphereGeometry(1, 8, 8), mat))

	buf := &bytes.Buffer{}
	require.NoError(t, ExportGLTF(buf, scene))

	doc := &gltf.Document{}
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(doc))

	assert.Empty(t, doc.Images)
	assert.Nil(t, doc.Materials[0].PBRMetallicRoughness.BaseColorTexture)

}
