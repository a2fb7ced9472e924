package globe

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/qmuntal/gltf/modeler"
)

type gltfMeshKey struct {
	geometry *Geometry
	material *Material
}

type gltfExporter struct {
	doc       *gltf.Document
	meshes    map[gltfMeshKey]int
	materials map[*Material]int
	textures  map[*Texture]int
	lights    lightspunctual.Lights
}

// ExportGLTF writes the Scene to w as a binary glTF (.glb) file. Meshes are written with their Geometry and Material;
// diffuse textures that have loaded are embedded as PNG images. Point lights are written using the KHR_lights_punctual
// extension; ambient lights, which glTF has no notion of, are written as empty nodes with their color and intensity
// stored in the node's extras.
func ExportGLTF(w io.Writer, scene *Scene) error {

	doc := gltf.NewDocument()
	doc.Asset.Generator = "globe"
	doc.Scenes[0].Name = scene.Name

	exp := &gltfExporter{
		doc:       doc,
		meshes:    map[gltfMeshKey]int{},
		materials: map[*Material]int{},
		textures:  map[*Texture]int{},
	}

	for _, child := range scene.Root.Children() {
		index, err := exp.exportNode(child)
		if err != nil {
			return err
		}
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, index)
	}

	if len(exp.lights) > 0 {
		doc.Extensions = gltf.Extensions{lightspunctual.ExtensionName: map[string]any{"lights": exp.lights}}
		doc.ExtensionsUsed = append(doc.ExtensionsUsed, lightspunctual.ExtensionName)
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding glTF document: %w", err)
	}

	return nil

}

func (exp *gltfExporter) exportNode(node INode) (int, error) {

	n := node.node()

	rotation := NewQuaternionFromEuler(n.Rotation)

	gltfNode := &gltf.Node{
		Name:        node.Name(),
		Translation: [3]float64{n.Position.X, n.Position.Y, n.Position.Z},
		Rotation:    [4]float64{rotation.X, rotation.Y, rotation.Z, rotation.W},
		Scale:       [3]float64{n.Scale.X, n.Scale.Y, n.Scale.Z},
	}

	switch other := node.(type) {

	case *Mesh:
		if other.Geometry != nil {
			meshIndex, err := exp.exportMesh(other)
			if err != nil {
				return 0, err
			}
			gltfNode.Mesh = gltf.Index(meshIndex)
		}

	case *PointLight:
		light := &lightspunctual.Light{
			Name:      node.Name(),
			Type:      lightspunctual.TypePoint,
			Color:     &[3]float64{float64(other.Color.R), float64(other.Color.G), float64(other.Color.B)},
			Intensity: gltf.Float(other.Intensity),
		}
		if other.Distance > 0 {
			light.Range = gltf.Float(other.Distance)
		}
		// The node references the light by index, wrapped as {"light": N}.
		gltfNode.Extensions = gltf.Extensions{lightspunctual.ExtensionName: map[string]any{"light": lightspunctual.LightIndex(len(exp.lights))}}
		exp.lights = append(exp.lights, light)

	case *AmbientLight:
		gltfNode.Extras = map[string]any{
			"ambientColor":     [3]float32{other.Color.R, other.Color.G, other.Color.B},
			"ambientIntensity": other.Intensity,
		}

	}

	exp.doc.Nodes = append(exp.doc.Nodes, gltfNode)
	index := len(exp.doc.Nodes) - 1

	for _, child := range node.Children() {
		childIndex, err := exp.exportNode(child)
		if err != nil {
			return 0, err
		}
		gltfNode.Children = append(gltfNode.Children, childIndex)
	}

	return index, nil

}

func (exp *gltfExporter) exportMesh(mesh *Mesh) (int, error) {

	key := gltfMeshKey{mesh.Geometry, mesh.Material}

	if index, exists := exp.meshes[key]; exists {
		return index, nil
	}

	geo := mesh.Geometry

	positions := make([][3]float32, len(geo.Positions))
	normals := make([][3]float32, len(geo.Normals))
	uvs := make([][2]float32, len(geo.UVs))

	for i, p := range geo.Positions {
		positions[i] = [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
	}
	for i, n := range geo.Normals {
		normals[i] = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
	}
	// glTF texture coordinates start from the top of the image.
	for i, uv := range geo.UVs {
		uvs[i] = [2]float32{float32(uv.X), float32(1 - uv.Y)}
	}

	var indices any
	if len(geo.Positions) <= 0xffff {
		small := make([]uint16, len(geo.Indices))
		for i, index := range geo.Indices {
			small[i] = uint16(index)
		}
		indices = small
	} else {
		large := make([]uint32, len(geo.Indices))
		for i, index := range geo.Indices {
			large[i] = uint32(index)
		}
		indices = large
	}

	attributes := map[string]int{
		gltf.POSITION: modeler.WritePosition(exp.doc, positions),
	}
	if len(normals) > 0 {
		attributes[gltf.NORMAL] = modeler.WriteNormal(exp.doc, normals)
	}
	if len(uvs) > 0 {
		attributes[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(exp.doc, uvs)
	}

	primitive := &gltf.Primitive{
		Attributes: attributes,
		Indices:    gltf.Index(modeler.WriteIndices(exp.doc, indices)),
	}

	if mesh.Material != nil {
		materialIndex, err := exp.exportMaterial(mesh.Material)
		if err != nil {
			return 0, err
		}
		primitive.Material = gltf.Index(materialIndex)
	}

	exp.doc.Meshes = append(exp.doc.Meshes, &gltf.Mesh{
		Name:       geo.Name,
		Primitives: []*gltf.Primitive{primitive},
	})

	index := len(exp.doc.Meshes) - 1
	exp.meshes[key] = index
	return index, nil

}

func (exp *gltfExporter) exportMaterial(mat *Material) (int, error) {

	if index, exists := exp.materials[mat]; exists {
		return index, nil
	}

	gltfMat := &gltf.Material{
		Name:        mat.Name,
		DoubleSided: mat.Side != SideFront,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{float64(mat.Color.R), float64(mat.Color.G), float64(mat.Color.B), float64(mat.Color.A) * mat.Opacity},
			MetallicFactor:  gltf.Float(mat.Metalness),
			RoughnessFactor: gltf.Float(mat.Roughness),
		},
		Extras: map[string]any{"shading": mat.ShadingModel.String()},
	}

	if mat.Transparent {
		gltfMat.AlphaMode = gltf.AlphaBlend
	}

	if mat.Map != nil && mat.Map.State() == TextureReady {
		textureIndex, err := exp.exportTexture(mat.Map)
		if err != nil {
			return 0, err
		}
		gltfMat.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: textureIndex}
	}

	exp.doc.Materials = append(exp.doc.Materials, gltfMat)
	index := len(exp.doc.Materials) - 1
	exp.materials[mat] = index
	return index, nil

}

func (exp *gltfExporter) exportTexture(tex *Texture) (int, error) {

	if index, exists := exp.textures[tex]; exists {
		return index, nil
	}

	img, err := tex.Image()
	if err != nil {
		return 0, err
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return 0, fmt.Errorf("encoding texture %s: %w", tex.Name, err)
	}

	imageIndex, err := modeler.WriteImage(exp.doc, tex.Name, "image/png", buf)
	if err != nil {
		return 0, fmt.Errorf("writing texture %s: %w", tex.Name, err)
	}

	exp.doc.Textures = append(exp.doc.Textures, &gltf.Texture{Source: gltf.Index(imageIndex)})
	index := len(exp.doc.Textures) - 1
	exp.textures[tex] = index
	return index, nil

}
