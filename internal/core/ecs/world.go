package ecs

import "sync"

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and the command buffer: deferred creations and destructions that
// systems queue while iterating and that the scheduler applies between stages.
type World struct {
	pool     *EntityPool
	registry *Registry

	// mu guards the queues only; systems in one parallel stage may enqueue
	// concurrently.
	mu           sync.Mutex
	spawnQueue   []func(EntityID)
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		spawnQueue:   make([]func(EntityID), 0, 16),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

// CreateEntity allocates an entity immediately. Only use it outside a frame
// (scene load); systems go through Spawn.
func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Spawn queues an entity creation. build runs at the next Flush with the new
// id and attaches the entity's components.
func (w *World) Spawn(build func(EntityID)) {
	w.mu.Lock()
	w.spawnQueue = append(w.spawnQueue, build)
	w.mu.Unlock()
}

// MarkForDestruction queues an entity for removal at the next Flush.
func (w *World) MarkForDestruction(id EntityID) {
	w.mu.Lock()
	w.destroyQueue = append(w.destroyQueue, id)
	w.mu.Unlock()
}

// Pending reports the number of queued creations and destructions.
func (w *World) Pending() (spawns, destroys int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.spawnQueue), len(w.destroyQueue)
}

// Flush applies queued creations, then queued destructions. Destroying an id
// twice, or an id that is already gone, is a no-op.
func (w *World) Flush() {
	w.mu.Lock()
	spawns := w.spawnQueue
	destroys := w.destroyQueue
	w.spawnQueue = nil
	w.destroyQueue = nil
	w.mu.Unlock()

	for _, build := range spawns {
		build(w.pool.Create())
	}
	for _, id := range destroys {
		if !w.pool.Alive(id) {
			continue
		}
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
	}
}
