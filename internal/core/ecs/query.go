package ecs

// Each2 iterates over entities that have both component A and B.
// It walks the smaller store in dense order and probes the larger one.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for i, a := range sa.dense {
			id := sa.ids[i]
			if b, ok := sb.Get(id); ok {
				fn(id, a, b)
			}
		}
		return
	}
	for i, b := range sb.dense {
		id := sb.ids[i]
		if a, ok := sa.Get(id); ok {
			fn(id, a, b)
		}
	}
}

// Each3 iterates over entities that have components A, B, and C.
// The first store drives iteration order; callers pass the store whose
// ordering matters (usually the tag component) first.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	for i, a := range sa.dense {
		id := sa.ids[i]
		b, ok := sb.Get(id)
		if !ok {
			continue
		}
		c, ok := sc.Get(id)
		if !ok {
			continue
		}
		fn(id, a, b, c)
	}
}

// Each4 iterates over entities that have components A, B, C and D, in the
// dense order of the first store.
func Each4[A, B, C, D any](sa *Store[A], sb *Store[B], sc *Store[C], sd *Store[D], fn func(EntityID, *A, *B, *C, *D)) {
	for i, a := range sa.dense {
		id := sa.ids[i]
		b, ok := sb.Get(id)
		if !ok {
			continue
		}
		c, ok := sc.Get(id)
		if !ok {
			continue
		}
		d, ok := sd.Get(id)
		if !ok {
			continue
		}
		fn(id, a, b, c, d)
	}
}
