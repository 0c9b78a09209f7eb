package isoline

// span returns the half-open range [start, end) of an extent of n items
// owned by worker id out of workers. Consecutive ids get consecutive,
// non-overlapping ranges that together cover [0, n).
func span(id, workers, n int) (start, end int) {
	start = id * n / workers
	end = min((id+1)*n/workers, n)
	return start, end
}
