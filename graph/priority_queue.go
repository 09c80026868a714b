package graph

import "container/heap"

type PriorityQueue[T any] interface {
	Peek() T   //查看堆顶，不会移除元素
	Poll() T   //从堆顶弹出一个元素
	Offer(T)   //插入一个元素
	Reset()
	Empty() bool
	Len() int
}

// 优先级队列
type nodeQueue[T any] struct {
	data []T
	less func(t1, t2 T) bool
}

func NewPriorityQueue[T any](less func(t1, t2 T) bool) PriorityQueue[T] {
	q := &nodeQueue[T]{less: less}
	heap.Init(q)
	return q
}

func (q *nodeQueue[T]) Reset() {
	q.data = q.data[:0]
}

// 查看堆顶
func (q *nodeQueue[T]) Peek() T {
	return q.data[0]
}

func (q *nodeQueue[T]) Poll() T { return heap.Pop(q).(T) }

func (q *nodeQueue[T]) Offer(value T) { heap.Push(q, value) }

func (q *nodeQueue[T]) Push(x any) {
	q.data = append(q.data, x.(T))
}

func (q *nodeQueue[T]) Pop() (res any) {
	n := len(q.data)
	res = q.data[n-1]
	var zero T
	q.data[n-1] = zero
	q.data = q.data[:n-1]
	return res
}

func (q *nodeQueue[T]) Len() int {
	return len(q.data)
}

func (q *nodeQueue[T]) Empty() bool {
	return q.Len() == 0
}

func (q *nodeQueue[T]) Less(i, j int) bool { return q.less(q.data[i], q.data[j]) }

func (q *nodeQueue[T]) Swap(i, j int) {
	q.data[i], q.data[j] = q.data[j], q.data[i]
}
