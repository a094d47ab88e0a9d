package render

// sortingTriangle is used specifically for sorting triangles when rendering. Less data means more data fits in cache,
// which means sorting is faster.
type sortingTriangle struct {
	TriangleID int
	depth      float32
}

type sortingTriangleBin struct {
	triangles     []sortingTriangle
	triangleIndex int
}

// sortingTriangleBucket sorts triangles back to front by dropping them into depth bins; triangles within a bin keep
// the order they were added in.
type sortingTriangleBucket struct {
	bins          []sortingTriangleBin
	unsetTris     []sortingTriangle
	unsetTriIndex int
}

func newSortingTriangleBucket(binCount, capacity int) *sortingTriangleBucket {
	bucket := &sortingTriangleBucket{}
	bucket.Initialize(binCount, capacity)
	return bucket
}

func (s *sortingTriangleBucket) Initialize(binCount, capacity int) {
	s.bins = make([]sortingTriangleBin, max(binCount, 1))
	for i := range s.bins {
		s.bins[i].triangles = make([]sortingTriangle, 0, capacity/len(s.bins)+1)
	}
	s.unsetTris = make([]sortingTriangle, 0, capacity)
	s.Clear()
}

func (s *sortingTriangleBucket) AddTriangle(triID int, depth float32) {
	s.unsetTris = append(s.unsetTris[:s.unsetTriIndex], sortingTriangle{TriangleID: triID, depth: depth})
	s.unsetTriIndex++
}

func (s *sortingTriangleBucket) Len() int {
	return s.unsetTriIndex
}

func (s *sortingTriangleBucket) Sort(minRange, maxRange float32) {

	binCount := len(s.bins)
	rangeDiff := maxRange - minRange

	if rangeDiff == 0 {
		maxRange += 0.001
		rangeDiff += 0.001
	}

	for i := 0; i < s.unsetTriIndex; i++ {

		targetBin := 0

		if binCount > 1 {
			depth := (s.unsetTris[i].depth - minRange) / rangeDiff * float32(binCount)
			targetBin = int(min(max(depth, 0), float32(binCount-1)))
		}

		bin := &s.bins[targetBin]
		bin.triangles = append(bin.triangles[:bin.triangleIndex], s.unsetTris[i])
		bin.triangleIndex++

	}

}

// ForEach calls fn with the ID of every sorted triangle, farthest first.
func (s *sortingTriangleBucket) ForEach(fn func(triID int)) {
	for b := len(s.bins) - 1; b >= 0; b-- {
		bin := s.bins[b]
		for i := 0; i < bin.triangleIndex; i++ {
			fn(bin.triangles[i].TriangleID)
		}
	}
}

func (s *sortingTriangleBucket) Clear() {
	for i := 0; i < len(s.bins); i++ {
		s.bins[i].triangleIndex = 0
	}
	s.unsetTriIndex = 0
}
