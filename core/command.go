package core

// CommandType enumerates discrete player commands
// The core has no knowledge of key bindings
type CommandType uint8

const (
	CommandNone CommandType = iota
	CommandForward
	CommandBackward
	CommandRotateLeft
	CommandRotateRight
	CommandFire
	CommandSwitchCameraView
)

// CameraView selects a camera preset
type CameraView uint8

const (
	ViewThirdPerson CameraView = iota
	ViewBirdsEye
)

func (v CameraView) String() string {
	if v == ViewBirdsEye {
		return "birds_eye"
	}
	return "third_person"
}

// Command is a single input command
type Command struct {
	Type CommandType
	View CameraView // CommandSwitchCameraView only
}
