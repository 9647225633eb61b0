package internal

// ReconstructPath walks parent links from terminal back to the root, which
// has a negative parent, and returns the ids root first.
func ReconstructPath(terminal int, parentOf func(id int) int) []int {
	path := []int{terminal}
	for current := parentOf(terminal); current >= 0; current = parentOf(current) {
		path = append(path, current)
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
