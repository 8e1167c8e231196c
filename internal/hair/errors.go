package hair

import "errors"

// Error classes. Callers match with errors.Is; the wrapped message carries detail.
var (
	// ErrAssetShape is returned by NewAsset and Bind when the position buffer
	// does not match GuidesCount * SegmentsCount.
	ErrAssetShape = errors.New("hair asset shape mismatch")

	// ErrInvalidSettings is returned when instance or runtime settings are out
	// of range. No tick runs with invalid settings.
	ErrInvalidSettings = errors.New("invalid hair settings")

	// ErrMalformedGrowthMesh aborts a tick when the growth mesh cannot produce
	// usable samples. The committed guide state is left untouched.
	ErrMalformedGrowthMesh = errors.New("malformed growth mesh")
)
