package ecs

import "github.com/milk9111/robotboss/ecs/component"

// First returns any live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := column(w, kind, false)
	if s == nil {
		return 0, false
	}
	for _, e := range s.dense {
		if IsAlive(w, e) {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits every entity with kind. The entity list is captured up
// front, so fn may add, remove or destroy; entities destroyed mid-iteration
// are skipped.
func ForEach[A any](w *World, a component.ComponentKind[A], fn func(Entity, *A)) {
	sa := column(w, a, false)
	if sa == nil {
		return
	}
	for _, e := range sa.snapshot() {
		va, ok := sa.get(e)
		if !ok {
			continue
		}
		fn(e, va)
	}
}

func ForEach2[A, B any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := column(w, a, false), column(w, b, false)
	if sa == nil || sb == nil {
		return
	}
	for _, e := range sa.snapshot() {
		va, ok := sa.get(e)
		if !ok {
			continue
		}
		vb, ok := sb.get(e)
		if !ok {
			continue
		}
		fn(e, va, vb)
	}
}

func ForEach3[A, B, C any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sc := column(w, c, false)
	if sc == nil {
		return
	}
	ForEach2(w, a, b, func(e Entity, va *A, vb *B) {
		if vc, ok := sc.get(e); ok {
			fn(e, va, vb, vc)
		}
	})
}

func ForEach4[A, B, C, D any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], d component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sd := column(w, d, false)
	if sd == nil {
		return
	}
	ForEach3(w, a, b, c, func(e Entity, va *A, vb *B, vc *C) {
		if vd, ok := sd.get(e); ok {
			fn(e, va, vb, vc, vd)
		}
	})
}
