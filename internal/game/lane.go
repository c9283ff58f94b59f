package game

// Lane is one of the five coloured note tracks.
type Lane uint8

const (
	Green Lane = iota
	Red
	Yellow
	Blue
	Orange
)

// NumLanes is the number of lanes on the guitar neck
const NumLanes = 5

var laneNames = [NumLanes]string{"green", "red", "yellow", "blue", "orange"}

func (l Lane) String() string {
	if int(l) >= NumLanes {
		return "unknown"
	}
	return laneNames[l]
}

// Lanes lists every lane from left to right.
func Lanes() [NumLanes]Lane {
	return [NumLanes]Lane{Green, Red, Yellow, Blue, Orange}
}
