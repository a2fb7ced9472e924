// Package globe is a small 3D engine built on Ebitengine: a scene graph of Nodes, Meshes, and lights, a perspective
// Camera, asynchronously loaded Textures, and a Renderer that transforms and lights vertices on the CPU before
// drawing sorted triangles through ebiten.Image.DrawTriangles. Scenes can be exported as binary glTF.
package globe
