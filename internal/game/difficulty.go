package game

type Difficulty struct {
	Name    string
	Msd     string
	Section string
	NKeys   uint8
}

// NKeyMap lists the StepMania chart types that can be played on a five lane
// guitar.
var NKeyMap = map[string]uint8{
	"pump-single": 5,
}
