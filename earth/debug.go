package earth

import (
	"strconv"

	"github.com/solarlune/globe/debug"
)

// RegisterDebug adds the scene's tweakable values to the debug Panel given.
func (sc *SceneContext) RegisterDebug(panel *debug.Panel, driver *FrameDriver) {

	rotation := panel.Folder("Rotation")
	rotation.AddFloat("Earth", &sc.Rates.Earth, -0.02, 0.02, 0.0005)
	rotation.AddFloat("Cloud", &sc.Rates.Cloud, -0.02, 0.02, 0.0005)
	rotation.AddFloat("Galaxy", &sc.Rates.Galaxy, -0.02, 0.02, 0.0005)

	lights := panel.Folder("Lights")
	lights.AddFloat("Ambient", &sc.Ambient.Intensity, 0, 2, 0.05)
	lights.AddFloat("Point", &sc.Point.Intensity, 0, 4, 0.1)
	lights.AddBool("Point On", &sc.Point.On)

	ctrl := panel.Folder("Controls")
	ctrl.AddBool("Damping", &sc.Controls.EnableDamping)
	ctrl.AddInfo("Distance", func() string {
		return strconv.FormatFloat(sc.Controls.Distance(), 'f', 2, 64)
	})

	stats := panel.Folder("Stats")
	stats.AddInfo("Textures", sc.TextureStatus)
	stats.AddInfo("Triangles", func() string {
		return strconv.Itoa(sc.Renderer.Stats.DrawnTris) + " / " + strconv.Itoa(sc.Renderer.Stats.TotalTris)
	})
	if driver != nil {
		stats.AddInfo("Frames", func() string { return strconv.Itoa(driver.Frames) })
	}

}
