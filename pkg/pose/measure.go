package pose

import (
	"fmt"
	"math"

	"VirtualFitting/internal/entity"
)

// HeightCalibration converts the normalized nose-to-ankle distance into the
// reference height unit (an assumed 170 cm body).
const HeightCalibration = 170.0

func Measure(landmarks entity.Landmarks) (entity.BodyMeasurements, error) {
	shoulder, err := distance(landmarks, LeftShoulder, RightShoulder)
	if err != nil {
		return entity.BodyMeasurements{}, err
	}

	waist, err := distance(landmarks, LeftHip, RightHip)
	if err != nil {
		return entity.BodyMeasurements{}, err
	}

	headToFeet, err := distance(landmarks, Nose, LeftAnkle)
	if err != nil {
		return entity.BodyMeasurements{}, err
	}

	return entity.BodyMeasurements{
		ShoulderWidth: shoulder,
		WaistWidth:    waist,
		Height:        headToFeet * HeightCalibration,
	}, nil
}

func distance(landmarks entity.Landmarks, from, to string) (float64, error) {
	p1, ok := landmarks[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingLandmark, from)
	}
	p2, ok := landmarks[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingLandmark, to)
	}

	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	dz := p2.Z - p1.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz), nil
}

// FromList indexes a detector's landmark list by name. Entries without a name
// take the name of their position in the model order.
func FromList(list []entity.Landmark) entity.Landmarks {
	landmarks := make(entity.Landmarks, len(list))
	for i, lm := range list {
		if lm.Name == "" {
			if i >= len(Names) {
				continue
			}
			lm.Name = Names[i]
		}
		landmarks[lm.Name] = lm
	}
	return landmarks
}
