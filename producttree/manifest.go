package producttree

// Manifest records how many elements live at each level of a product tree,
// level 0 being the input leaves and the last entry always being 1 (the
// root). It is produced by BuildProductTree and consumed by
// ComputeRemaindersFast; unlike the reference implementation it is an
// ordinary returned value rather than a process-wide global, so nothing
// stops a caller from building several independent trees in one process.
type Manifest struct {
	FloorSizes []int
}

// Levels is the number of levels in the tree the manifest describes,
// i.e. L in the spec's L-1 root-level notation.
func (m Manifest) Levels() int {
	return len(m.FloorSizes)
}

// Root is the element count of the top level, always 1 for a complete tree.
func (m Manifest) Root() int {
	if len(m.FloorSizes) == 0 {
		return 0
	}
	return m.FloorSizes[len(m.FloorSizes)-1]
}
