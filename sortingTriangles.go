package globe

// sortingTriangle is used specifically for sorting triangles when rendering. Less data means more data fits in cache,
// which means sorting is faster.
type sortingTriangle struct {
	TriangleID    int
	depth         float64
	vertexIndices [3]int
}

type sortingTriangleBin struct {
	triangles []sortingTriangle
}

// sortingTriangleBucket sorts triangles back to front by dropping them into depth bins; triangles in the same bin
// draw in the order they were added. With enough bins, this is indistinguishable from a full sort for a single Mesh.
type sortingTriangleBucket struct {
	bins      []sortingTriangleBin
	unsetTris []sortingTriangle
	minDepth  float64
	maxDepth  float64
}

func newSortingTriangleBucket(binCount int) *sortingTriangleBucket {
	if binCount < 1 {
		binCount = 1
	}
	return &sortingTriangleBucket{
		bins: make([]sortingTriangleBin, binCount),
	}
}

// AddTriangle adds a triangle to the bucket, with its depth being its distance from the camera (larger is further away).
func (s *sortingTriangleBucket) AddTriangle(triID int, depth float64, vertexIndices [3]int) {

	if len(s.unsetTris) == 0 || depth < s.minDepth {
		s.minDepth = depth
	}
	if len(s.unsetTris) == 0 || depth > s.maxDepth {
		s.maxDepth = depth
	}

	s.unsetTris = append(s.unsetTris, sortingTriangle{
		TriangleID:    triID,
		depth:         depth,
		vertexIndices: vertexIndices,
	})

}

// Sort distributes the added triangles into their bins.
func (s *sortingTriangleBucket) Sort() {

	binCount := len(s.bins)
	rangeDiff := s.maxDepth - s.minDepth

	if rangeDiff == 0 {
		rangeDiff = 0.001
	}

	for _, tri := range s.unsetTris {
		depth := (tri.depth - s.minDepth) / rangeDiff * float64(binCount)
		targetBin := int(clamp(depth, 0, float64(binCount-1)))
		s.bins[targetBin].triangles = append(s.bins[targetBin].triangles, tri)
	}

}

// Clear empties the bucket, keeping its allocated memory for reuse.
func (s *sortingTriangleBucket) Clear() {
	for i := range s.bins {
		s.bins[i].triangles = s.bins[i].triangles[:0]
	}
	s.unsetTris = s.unsetTris[:0]
}

// ForEach calls forEach on each sorted triangle, furthest first.
func (s *sortingTriangleBucket) ForEach(forEach func(triIndex, triID int, vertexIndices [3]int)) {

	triIndex := 0

	for binIndex := len(s.bins) - 1; binIndex >= 0; binIndex-- {
		for _, tri := range s.bins[binIndex].triangles {
			forEach(triIndex, tri.TriangleID, tri.vertexIndices)
			triIndex++
		}
	}

}

// IsEmpty returns true if no triangles were added to the bucket since it was last cleared.
func (s *sortingTriangleBucket) IsEmpty() bool {
	return len(s.unsetTris) == 0
}
