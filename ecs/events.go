package ecs

import "github.com/milk9111/overworld/procgen"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventChunkSpawned   = "chunk_spawned"
	EventChunkDespawned = "chunk_despawned"
	EventNavGridRebuilt = "nav_grid_rebuilt"
)

// ChunkEvent is emitted when the streamer spawns or despawns a chunk.
type ChunkEvent struct {
	Entity Entity
	Level  procgen.Level
	Coord  procgen.ChunkCoord
}

// NavGridEvent is emitted after a navigation grid rebuild.
type NavGridEvent struct {
	Entity    Entity
	Level     procgen.Level
	Anchor    procgen.ChunkCoord
	Respawned bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
