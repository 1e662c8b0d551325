package progress

// Fixed per-media-kind size priors used to turn a raw storage-growth figure
// into informational photo/video count estimates. These are never treated
// as authoritative: the store only ever persists what the Progress Engine
// computes from them, never the reverse.
const (
	photoMeanMB    = 6.5
	videoMeanMB    = 150.0
	photoGrowthPct = 0.70
	videoGrowthPct = 0.30

	gbToMB = 1024.0
)
