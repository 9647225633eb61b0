package astargrid

// PriorityQueue orders open nodes by f, then by the order they were opened.
// Breaking ties on insertion order makes the heap pick the same node a
// left-to-right scan for the first minimum would.
type PriorityQueue struct {
	arena *nodeArena
	ids   []int
}

func newPriorityQueue(arena *nodeArena) *PriorityQueue {
	return &PriorityQueue{arena: arena}
}

func (queue PriorityQueue) Len() int { return len(queue.ids) }

func (queue PriorityQueue) Less(i, j int) bool {
	a, b := queue.arena.get(queue.ids[i]), queue.arena.get(queue.ids[j])
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	return a.seq < b.seq
}

func (queue PriorityQueue) Swap(i, j int) {
	queue.ids[i], queue.ids[j] = queue.ids[j], queue.ids[i]
	queue.arena.get(queue.ids[i]).index = i
	queue.arena.get(queue.ids[j]).index = j
}

func (queue *PriorityQueue) Push(x any) {
	id := x.(int)
	queue.arena.get(id).index = len(queue.ids)
	queue.ids = append(queue.ids, id)
}

func (queue *PriorityQueue) Pop() any {
	n := len(queue.ids)
	id := queue.ids[n-1]
	queue.ids = queue.ids[:n-1]
	queue.arena.get(id).index = -1
	return id
}

// members returns the points currently in the queue, in heap order.
func (queue PriorityQueue) members() []Point {
	points := make([]Point, 0, len(queue.ids))
	for _, id := range queue.ids {
		points = append(points, queue.arena.get(id).point)
	}
	return points
}
