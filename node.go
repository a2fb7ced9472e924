package globe

import (
	"strings"

	"github.com/google/uuid"
)

// NodeType represents a Node's type. Node types are categorized, and can be said to extend or "be of" more general types.
// For example, a PointLight has a type of NodeTypePointLight. That type can also be said to be NodeTypeLight
// (because it is a light). However, it is not of type NodeTypeAmbientLight, as that is a different category.
type NodeType string

const (
	NodeTypeNode   NodeType = "Node"       // NodeTypeNode represents any generic node
	NodeTypeMesh   NodeType = "NodeMesh"   // NodeTypeMesh represents specifically a Mesh
	NodeTypeCamera NodeType = "NodeCamera" // NodeTypeCamera represents specifically a Camera

	NodeTypeLight        NodeType = "NodeLight"        // NodeTypeLight represents any generic light
	NodeTypeAmbientLight NodeType = "NodeLightAmbient" // NodeTypeAmbientLight represents specifically an ambient light
	NodeTypePointLight   NodeType = "NodeLightPoint"   // NodeTypePointLight represents specifically a point light
)

// Is returns true if a NodeType satisfies another NodeType category. A specific node type can be said to
// contain a more general one, but not vice-versa. For example, a Mesh (which has type NodeTypeMesh) can be
// said to be a Node (NodeTypeNode), but the reverse is not true (a NodeTypeNode is not a NodeTypeMesh).
func (nt NodeType) Is(other NodeType) bool {
	if nt == other {
		return true
	}
	return strings.Contains(string(nt), string(other))
}

// INode represents an object that exists in 3D space and can be positioned relative to an origin point.
// By default, this origin point is {0, 0, 0} (or world origin), but Nodes can be parented
// to other Nodes to change this origin (making their movements relative and their transforms
// successive). Meshes, Cameras, and Lights all fully implement the INode interface by means of embedding Node.
type INode interface {
	// Name returns the object's name.
	Name() string
	// ID returns the object's unique ID.
	ID() string
	// Type returns the NodeType for this object.
	Type() NodeType
	// Parent returns the Node's parent. If the Node has no parent, this will return nil.
	Parent() INode
	// Children returns the Node's children.
	Children() []INode
	// AddChildren parents the provided children Nodes to the Node.
	AddChildren(children ...INode)
	// WorldTransform returns the Node's global transform, including its parents' transforms.
	WorldTransform() Matrix4
	// WorldPosition returns the Node's global position.
	WorldPosition() Vector

	node() *Node
}

// Node represents a minimal struct that fully implements the INode interface. Model and Camera embed Node
// into their structs to automatically easily implement INode.
type Node struct {
	name     string
	id       string
	nodeType NodeType

	Position Vector // Position is the Node's local position, relative to its parent.
	Rotation Vector // Rotation holds the Node's local Euler rotation in radians, applied in X, Y, Z order.
	Scale    Vector // Scale is the Node's local scale; 1, 1, 1 is the default.

	owner    INode
	parent   INode
	children []INode
}

// NewNode returns a new Node.
func NewNode(name string) *Node {
	n := newNode(name, NodeTypeNode)
	n.owner = n
	return n
}

func newNode(name string, nodeType NodeType) *Node {
	return &Node{
		name:     name,
		id:       uuid.NewString(),
		nodeType: nodeType,
		Scale:    NewVector(1, 1, 1),
		children: []INode{},
	}
}

// Name returns the object's name.
func (node *Node) Name() string {
	return node.name
}

// ID returns the object's unique ID.
func (node *Node) ID() string {
	return node.id
}

// Type returns the NodeType for this object.
func (node *Node) Type() NodeType {
	return node.nodeType
}

func (node *Node) node() *Node {
	return node
}

// Parent returns the Node's parent. If the Node has no parent, this will return nil.
func (node *Node) Parent() INode {
	return node.parent
}

// Children returns the Node's children as a slice.
func (node *Node) Children() []INode {
	return append([]INode(nil), node.children...)
}

// AddChildren parents the provided children Nodes to the passed parent Node, inheriting its transformations and being under it in the scenegraph
// hierarchy. If the children are already parented to other Nodes, they are unparented before doing so.
func (node *Node) AddChildren(children ...INode) {
	for _, child := range children {
		if child == nil || child == node.owner {
			continue
		}
		child.node().Unparent()
		child.node().parent = node.owner
		node.children = append(node.children, child)
	}
}

// RemoveChildren removes the provided children from this object.
func (node *Node) RemoveChildren(children ...INode) {
	for _, child := range children {
		for i, c := range node.children {
			if c == child {
				child.node().parent = nil
				node.children = append(node.children[:i], node.children[i+1:]...)
				break
			}
		}
	}
}

// Unparent unparents the Node from its parent, removing it from the scenegraph.
func (node *Node) Unparent() {
	if node.parent != nil {
		node.parent.node().RemoveChildren(node.owner)
	}
}

// LocalTransform returns the Node's transform relative to its parent (scale, then rotation, then translation).
func (node *Node) LocalTransform() Matrix4 {
	transform := NewMatrix4Scale(node.Scale.X, node.Scale.Y, node.Scale.Z)
	transform = transform.Mult(NewMatrix4RotateFromEuler(node.Rotation))
	return transform.Mult(NewMatrix4Translate(node.Position.X, node.Position.Y, node.Position.Z))
}

// WorldTransform returns the Node's global transform, including its parents' transforms.
func (node *Node) WorldTransform() Matrix4 {
	transform := node.LocalTransform()
	if node.parent != nil {
		transform = transform.Mult(node.parent.WorldTransform())
	}
	return transform
}

// WorldPosition returns the Node's global position.
func (node *Node) WorldPosition() Vector {
	return node.WorldTransform().MultVec(NewVectorZero())
}

// walk calls forEach on each descendant of the node in depth-first order, stopping if forEach returns false.
func walk(root INode, forEach func(node INode) bool) bool {
	for _, child := range root.node().children {
		if !forEach(child) || !walk(child, forEach) {
			return false
		}
	}
	return true
}
