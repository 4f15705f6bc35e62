package render

import (
	"math"

	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/vmath"
)

// view is the camera state: a world point at the viewport centre and a zoom
// scale is world units per terminal column; rows cover scale*CameraCellAspect
type view struct {
	center vmath.Vec3F
	scale  float64
	preset core.CameraView
}

func presetScale(v core.CameraView) float64 {
	if v == core.ViewBirdsEye {
		return parameter.CameraBirdsEyeScale
	}
	return parameter.CameraThirdPersonScale
}

// project maps world XZ to a cell inside a w x h viewport, +Z is up
func (v *view) project(p vmath.Vec3F, w, h int) (int, int) {
	cx, cy := w/2, h/2
	col := cx + int(math.Round((p.X-v.center.X)/v.scale))
	row := cy - int(math.Round((p.Z-v.center.Z)/(v.scale*parameter.CameraCellAspect)))
	return col, row
}

// zoomOut widens the view one step toward the cap and centres on point
func (v *view) zoomOut(point vmath.Vec3F) {
	v.center = point
	v.scale = math.Min(v.scale+parameter.CameraZoomOutStep, parameter.CameraZoomOutMaxScale)
}
