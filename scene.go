package globe

// Scene represents a world of sorts, and contains a tree of Nodes: Meshes, Lights, and the like.
type Scene struct {
	Name string
	Root *Node // The root Node of the Scene; anything added to the Scene is parented to it.
}

// NewScene creates a new, empty Scene with the name given.
func NewScene(name string) *Scene {
	return &Scene{
		Name: name,
		Root: NewNode("Root"),
	}
}

// Add parents the Nodes given to the Scene's Root.
func (scene *Scene) Add(nodes ...INode) {
	scene.Root.AddChildren(nodes...)
}

// Remove removes the Nodes given from the Scene's Root.
func (scene *Scene) Remove(nodes ...INode) {
	scene.Root.RemoveChildren(nodes...)
}

// Meshes returns every Mesh in the Scene's tree, in depth-first order.
func (scene *Scene) Meshes() []*Mesh {
	meshes := []*Mesh{}
	walk(scene.Root, func(node INode) bool {
		if mesh, ok := node.(*Mesh); ok {
			meshes = append(meshes, mesh)
		}
		return true
	})
	return meshes
}

// Lights returns every light in the Scene's tree, in depth-first order.
func (scene *Scene) Lights() []ILight {
	lights := []ILight{}
	walk(scene.Root, func(node INode) bool {
		if light, ok := node.(ILight); ok {
			lights = append(lights, light)
		}
		return true
	})
	return lights
}

// FindNode returns the first Node in the Scene's tree with the name given, or nil if there's none.
func (scene *Scene) FindNode(name string) INode {
	var found INode
	walk(scene.Root, func(node INode) bool {
		if node.Name() == name {
			found = node
			return false
		}
		return true
	})
	return found
}
