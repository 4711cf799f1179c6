package pose

import (
	"errors"
)

const (
	Nose           = "nose"
	LeftEyeInner   = "left_eye_inner"
	LeftEye        = "left_eye"
	LeftEyeOuter   = "left_eye_outer"
	RightEyeInner  = "right_eye_inner"
	RightEye       = "right_eye"
	RightEyeOuter  = "right_eye_outer"
	LeftEar        = "left_ear"
	RightEar       = "right_ear"
	MouthLeft      = "mouth_left"
	MouthRight     = "mouth_right"
	LeftShoulder   = "left_shoulder"
	RightShoulder  = "right_shoulder"
	LeftElbow      = "left_elbow"
	RightElbow     = "right_elbow"
	LeftWrist      = "left_wrist"
	RightWrist     = "right_wrist"
	LeftPinky      = "left_pinky"
	RightPinky     = "right_pinky"
	LeftIndex      = "left_index"
	RightIndex     = "right_index"
	LeftThumb      = "left_thumb"
	RightThumb     = "right_thumb"
	LeftHip        = "left_hip"
	RightHip       = "right_hip"
	LeftKnee       = "left_knee"
	RightKnee      = "right_knee"
	LeftAnkle      = "left_ankle"
	RightAnkle     = "right_ankle"
	LeftHeel       = "left_heel"
	RightHeel      = "right_heel"
	LeftFootIndex  = "left_foot_index"
	RightFootIndex = "right_foot_index"
)

// Names lists the 33 pose landmarks in model index order.
var Names = []string{
	Nose, LeftEyeInner, LeftEye, LeftEyeOuter, RightEyeInner, RightEye, RightEyeOuter,
	LeftEar, RightEar, MouthLeft, MouthRight,
	LeftShoulder, RightShoulder, LeftElbow, RightElbow, LeftWrist, RightWrist,
	LeftPinky, RightPinky, LeftIndex, RightIndex, LeftThumb, RightThumb,
	LeftHip, RightHip, LeftKnee, RightKnee, LeftAnkle, RightAnkle,
	LeftHeel, RightHeel, LeftFootIndex, RightFootIndex,
}

// Connections are the skeleton edges drawn on the annotated image.
var Connections = [][2]string{
	{Nose, LeftEyeInner}, {LeftEyeInner, LeftEye}, {LeftEye, LeftEyeOuter}, {LeftEyeOuter, LeftEar},
	{Nose, RightEyeInner}, {RightEyeInner, RightEye}, {RightEye, RightEyeOuter}, {RightEyeOuter, RightEar},
	{MouthLeft, MouthRight},
	{LeftShoulder, RightShoulder},
	{LeftShoulder, LeftElbow}, {LeftElbow, LeftWrist}, {LeftWrist, LeftPinky}, {LeftWrist, LeftIndex}, {LeftWrist, LeftThumb}, {LeftPinky, LeftIndex},
	{RightShoulder, RightElbow}, {RightElbow, RightWrist}, {RightWrist, RightPinky}, {RightWrist, RightIndex}, {RightWrist, RightThumb}, {RightPinky, RightIndex},
	{LeftShoulder, LeftHip}, {RightShoulder, RightHip}, {LeftHip, RightHip},
	{LeftHip, LeftKnee}, {LeftKnee, LeftAnkle}, {LeftAnkle, LeftHeel}, {LeftHeel, LeftFootIndex}, {LeftAnkle, LeftFootIndex},
	{RightHip, RightKnee}, {RightKnee, RightAnkle}, {RightAnkle, RightHeel}, {RightHeel, RightFootIndex}, {RightAnkle, RightFootIndex},
}

var (
	ErrNoBodyDetected  = errors.New("unable to detect body landmarks")
	ErrMissingLandmark = errors.New("landmark not detected")
)
