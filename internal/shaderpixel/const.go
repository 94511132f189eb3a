package shaderpixel

// Channel indices for readability.
const (
	ChR = 0
	ChG = 1
	ChB = 2
	ChA = 3

	Width       = 800
	Height      = 600
	Supersample = 1
	FovYDeg     = 75
	Near        = 0.1
	Far         = 200.0
	GIFDelay    = 4 // 100ths of a second per frame
	Gamma       = 1.0
	Frames      = 1
	FrameStep   = 1.0 / 25.0
	SkySize     = 128

	// raymarching
	MaxSteps     = 128
	Relax        = 0.5
	NormalEps    = 1e-4
	BoxEpsilon   = 1e-5
	PenumbraBand = 0.02 // radians

	// camera
	MoveSpeed    = 2.0
	ScrollFactor = 0.4
	TexFadeSpeed = 0.5 // texture weight change per second

	epsDist = 1e-9
)
