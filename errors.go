package slides3d

import "fmt"

// SamplingError is returned when a point sampling domain is invalid (non-positive size or a bad distance range).
type SamplingError struct {
	Width, Height            float64
	MinDistance, MaxDistance float64
	Reason                   string
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("invalid sampling domain %gx%g (distance %g..%g): %s", e.Width, e.Height, e.MinDistance, e.MaxDistance, e.Reason)
}

// AssetNotReadyError is returned when an asset is requested from a Library before it has finished loading.
type AssetNotReadyError struct {
	Key string
}

func (e *AssetNotReadyError) Error() string {
	return fmt.Sprintf("asset %q is not loaded", e.Key)
}

// IndexOutOfRangeError is returned when an instance index falls outside of a preallocated instance arena.
type IndexOutOfRangeError struct {
	Index, Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("instance index %d out of range [0, %d)", e.Index, e.Length)
}
