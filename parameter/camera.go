package parameter

// Camera
const (
	// CameraThirdPersonScale is world units per terminal column in third-person view
	CameraThirdPersonScale = 1.0

	// CameraBirdsEyeScale is world units per terminal column in bird's-eye view
	CameraBirdsEyeScale = 4.0

	// CameraZoomOutStep is the scale growth per tick after game over
	CameraZoomOutStep = 0.02

	// CameraZoomOutMaxScale caps the post game-over zoom
	CameraZoomOutMaxScale = 12.0

	// CameraCellAspect compensates for terminal cells being about twice as tall as wide
	CameraCellAspect = 2.0
)
