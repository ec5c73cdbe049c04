// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"container/heap"

	"github.com/emer/cmneuron/compart"
)

// Event is a spike arriving on a receptor port at a given time, in msec.
type Event struct {
	Time   float64
	Port   int
	Weight float64

	seq int
}

type eventHeap []Event

func (eh eventHeap) Len() int { return len(eh) }
func (eh eventHeap) Less(i, j int) bool {
	if eh[i].Time != eh[j].Time {
		return eh[i].Time < eh[j].Time
	}
	return eh[i].seq < eh[j].seq
}
func (eh eventHeap) Swap(i, j int) { eh[i], eh[j] = eh[j], eh[i] }
func (eh *eventHeap) Push(x any)   { *eh = append(*eh, x.(Event)) }
func (eh *eventHeap) Pop() any {
	old := *eh
	n := len(old)
	ev := old[n-1]
	*eh = old[:n-1]
	return ev
}

// Queue holds pending spike events in time order.  Events with equal times
// are delivered in the order they were pushed.
type Queue struct {
	evs eventHeap
	seq int
}

// Len returns the number of pending events
func (qu *Queue) Len() int {
	return len(qu.evs)
}

// Push adds an event
func (qu *Queue) Push(ev Event) {
	ev.seq = qu.seq
	qu.seq++
	heap.Push(&qu.evs, ev)
}

// Next returns the time of the next pending event, false if none
func (qu *Queue) Next() (float64, bool) {
	if len(qu.evs) == 0 {
		return 0, false
	}
	return qu.evs[0].Time, true
}

// PopUntil removes all events with Time <= t and appends them to spikes.
// With t the left boundary of a step, this delivers each event at the start
// of the first step whose left boundary is >= its time.
func (qu *Queue) PopUntil(t float64, spikes []compart.Spike) []compart.Spike {
	for len(qu.evs) > 0 && qu.evs[0].Time <= t {
		ev := heap.Pop(&qu.evs).(Event)
		spikes = append(spikes, compart.Spike{Port: ev.Port, Weight: ev.Weight})
	}
	return spikes
}

// Ports returns the distinct ports of pending events
func (qu *Queue) Ports() []int {
	seen := make(map[int]bool)
	var ps []int
	for _, ev := range qu.evs {
		if !seen[ev.Port] {
			seen[ev.Port] = true
			ps = append(ps, ev.Port)
		}
	}
	return ps
}

// Reset removes all pending events
func (qu *Queue) Reset() {
	qu.evs = qu.evs[:0]
	qu.seq = 0
}
