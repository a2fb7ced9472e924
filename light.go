package globe

import (
	"math"
)

// ILight represents an interface that is fulfilled by an object that emits light, returning the diffuse and specular
// color contributions a vertex should be given that vertex's world position and normal.
type ILight interface {
	INode
	// Illuminate returns the diffuse and specular light reaching a surface point. toCamera is the unit direction from
	// the point to the viewer, and shininess the surface's specular exponent.
	Illuminate(position, normal, toCamera Vector, shininess float64) (diffuse, specular Color)
	// IsOn returns if the light is on and contributing to the scene.
	IsOn() bool
}

//---------------//

// AmbientLight represents an ambient light that colors the entire Scene evenly.
type AmbientLight struct {
	*Node
	Color Color // Color is the color of the AmbientLight.
	// Intensity is the overall energy of the Light. Internally, technically there's no difference between a brighter color and a
	// higher intensity, but this is here for convenience.
	Intensity float64
	On        bool // If the light is on and contributing to the scene.
}

// NewAmbientLight returns a new AmbientLight.
func NewAmbientLight(name string, color Color, intensity float64) *AmbientLight {
	amb := &AmbientLight{
		Node:      newNode(name, NodeTypeAmbientLight),
		Color:     color,
		Intensity: intensity,
		On:        true,
	}
	amb.owner = amb
	return amb
}

// Illuminate returns the global light level for the ambient light. It doesn't use the position or normal arguments; this is just to make it adhere to the ILight interface.
func (amb *AmbientLight) Illuminate(position, normal, toCamera Vector, shininess float64) (Color, Color) {
	return amb.Color.ScaleRGB(float32(amb.Intensity)), Color{}
}

func (amb *AmbientLight) IsOn() bool {
	return amb.On
}

//---------------//

// PointLight represents a point light of infinite point-ness, shining in all directions from its position.
type PointLight struct {
	*Node
	Color     Color   // Color is the color of the PointLight.
	Intensity float64 // Intensity is the overall energy of the Light.
	// Distance represents the distance after which the light fully attenuates. If this is 0 (the default), the light
	// doesn't attenuate at all.
	Distance float64
	// Decay is the exponent of the falloff curve used when Distance is greater than 0.
	Decay float64
	On    bool // If the light is on and contributing to the scene.
}

// NewPointLight creates a new Point light.
func NewPointLight(name string, color Color, intensity float64) *PointLight {
	point := &PointLight{
		Node:      newNode(name, NodeTypePointLight),
		Color:     color,
		Intensity: intensity,
		Decay:     2,
		On:        true,
	}
	point.owner = point
	return point
}

// Illuminate returns the diffuse (Lambertian) and specular (Blinn-Phong) light the PointLight casts on the point given.
func (point *PointLight) Illuminate(position, normal, toCamera Vector, shininess float64) (Color, Color) {

	lightPos := point.WorldPosition()
	lightVec := lightPos.Sub(position)

	attenuation := 1.0
	if point.Distance > 0 {
		attenuation = math.Pow(clamp(1-lightVec.Magnitude()/point.Distance, 0, 1), point.Decay)
	}

	lightDir := lightVec.Unit()

	diffuse := normal.Dot(lightDir)
	if diffuse <= 0 {
		return Color{}, Color{}
	}

	energy := point.Color.ScaleRGB(float32(point.Intensity * attenuation))

	specular := 0.0
	if shininess > 0 {
		halfway := lightDir.Add(toCamera).Unit()
		specular = math.Pow(math.Max(normal.Dot(halfway), 0), shininess)
	}

	return energy.ScaleRGB(float32(diffuse)), energy.ScaleRGB(float32(specular))

}

func (point *PointLight) IsOn() bool {
	return point.On
}

//---------------//

// Shade returns the color factor a vertex of a Material should be multiplied by, given the lights shining on it.
// Unlit Materials always return white, no matter the lights.
func Shade(lights []ILight, material *Material, position, normal, cameraPosition Vector) Color {

	if !material.Lit() {
		return NewColor(1, 1, 1, 1)
	}

	toCamera := cameraPosition.Sub(position).Unit()

	// Rougher surfaces have dimmer highlights; metallic ones take on white highlights rather than the specular color.
	specularStrength := float32(1 - 0.9*clamp(material.Roughness, 0, 1))
	specularColor := material.Specular
	metal := float32(clamp(material.Metalness, 0, 1))
	specularColor.R += (1 - specularColor.R) * metal
	specularColor.G += (1 - specularColor.G) * metal
	specularColor.B += (1 - specularColor.B) * metal

	total := Color{A: 1}

	for _, light := range lights {
		if !light.IsOn() {
			continue
		}
		diffuse, specular := light.Illuminate(position, normal, toCamera, material.Shininess)
		total = total.AddRGB(diffuse)
		total = total.AddRGB(specular.Multiply(specularColor).ScaleRGB(specularStrength))
	}

	return total.Clamped()

}
