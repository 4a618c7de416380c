package landmark

// Hand landmark indices following the MediaPipe hand convention.
const (
	Wrist            = 0
	ThumbCMC         = 1
	ThumbMCP         = 2
	ThumbIP          = 3
	ThumbTip         = 4
	IndexMCP         = 5
	IndexPIP         = 6
	IndexDIP         = 7
	IndexTip         = 8
	MiddleMCP        = 9
	MiddlePIP        = 10
	MiddleDIP        = 11
	MiddleTip        = 12
	RingMCP          = 13
	RingPIP          = 14
	RingDIP          = 15
	RingTip          = 16
	PinkyMCP         = 17
	PinkyPIP         = 18
	PinkyDIP         = 19
	PinkyTip         = 20
	NumHandLandmarks = 21
)

// Finger enumerates the five fingers of a hand.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

func (f Finger) String() string {
	switch f {
	case Thumb:
		return "thumb"
	case Index:
		return "index"
	case Middle:
		return "middle"
	case Ring:
		return "ring"
	case Pinky:
		return "pinky"
	}
	return "unknown"
}

// Chain returns the finger's joint chain from base joint to tip.
func (f Finger) Chain() [4]int {
	switch f {
	case Thumb:
		return [4]int{ThumbCMC, ThumbMCP, ThumbIP, ThumbTip}
	case Index:
		return [4]int{IndexMCP, IndexPIP, IndexDIP, IndexTip}
	case Middle:
		return [4]int{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip}
	case Ring:
		return [4]int{RingMCP, RingPIP, RingDIP, RingTip}
	case Pinky:
		return [4]int{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip}
	}
	return [4]int{}
}

// Tip returns the finger's tip landmark index.
func (f Finger) Tip() int {
	return f.Chain()[3]
}

// Fingers returns all fingers in canonical order.
func Fingers() []Finger {
	return []Finger{Thumb, Index, Middle, Ring, Pinky}
}
