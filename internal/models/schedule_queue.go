package models

import (
	"container/heap"
	"sync"
	"time"
)

// ScheduledActivation marks the moment a scheduled order should become
// pending.
type ScheduledActivation struct {
	Time    time.Time
	OrderID string
}

// ScheduleQueue is a time-ordered queue of scheduled-order activations.
type ScheduleQueue struct {
	activations []*ScheduledActivation
	mutex       sync.Mutex
}

// activationHeap implements heap.Interface over ScheduledActivations
type activationHeap []*ScheduledActivation

func (h activationHeap) Len() int           { return len(h) }
func (h activationHeap) Less(i, j int) bool { return h[i].Time.Before(h[j].Time) }
func (h activationHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *activationHeap) Push(x interface{}) {
	*h = append(*h, x.(*ScheduledActivation))
}

func (h *activationHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// NewScheduleQueue creates an empty ScheduleQueue.
func NewScheduleQueue() *ScheduleQueue {
	return &ScheduleQueue{activations: make([]*ScheduledActivation, 0)}
}

// Enqueue adds an activation to the queue.
func (sq *ScheduleQueue) Enqueue(activation *ScheduledActivation) {
	sq.mutex.Lock()
	defer sq.mutex.Unlock()
	heap.Push((*activationHeap)(&sq.activations), activation)
}

// Peek returns the earliest activation without removing it.
func (sq *ScheduleQueue) Peek() *ScheduledActivation {
	sq.mutex.Lock()
	defer sq.mutex.Unlock()
	if len(sq.activations) == 0 {
		return nil
	}
	return sq.activations[0]
}

// DequeueDue removes and returns every activation due at or before now.
func (sq *ScheduleQueue) DequeueDue(now time.Time) []*ScheduledActivation {
	sq.mutex.Lock()
	defer sq.mutex.Unlock()

	var due []*ScheduledActivation
	for len(sq.activations) > 0 && !sq.activations[0].Time.After(now) {
		due = append(due, heap.Pop((*activationHeap)(&sq.activations)).(*ScheduledActivation))
	}
	return due
}

// Len returns the number of pending activations.
func (sq *ScheduleQueue) Len() int {
	sq.mutex.Lock()
	defer sq.mutex.Unlock()
	return len(sq.activations)
}
