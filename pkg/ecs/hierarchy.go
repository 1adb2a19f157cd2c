package ecs

import (
	"errors"
	"fmt"
)

// 层级错误
var (
	ErrUnknownEntity = errors.New("unknown entity")
	ErrSelfParent    = errors.New("entity cannot be its own parent")
	ErrCycle         = errors.New("parenting would create a cycle")
)

// SetParent 把 child 挂到 parent 下面
//
// 层级是严格的树：一个实体只有一个父实体，不允许环。
// 如果 child 已有父实体，会先从原父实体上摘下来。
// parent 为 InvalidEntity 时等价于 Detach。
func (em *EntityManager) SetParent(child, parent EntityID) error {
	if !em.Exists(child) {
		return fmt.Errorf("set parent of %d: %w", child, ErrUnknownEntity)
	}
	if parent == InvalidEntity {
		em.detach(child)
		return nil
	}
	if !em.Exists(parent) {
		return fmt.Errorf("set parent %d: %w", parent, ErrUnknownEntity)
	}
	if child == parent {
		return fmt.Errorf("set parent of %d: %w", child, ErrSelfParent)
	}
	// parent 不能是 child 的后代
	for p, ok := parent, true; ok; p, ok = em.parents[p] {
		if p == child {
			return fmt.Errorf("set parent of %d to %d: %w", child, parent, ErrCycle)
		}
	}

	em.detach(child)
	em.parents[child] = parent
	em.children[parent] = append(em.children[parent], child)
	return nil
}

// Detach 把实体从父实体上摘下，成为根实体
func (em *EntityManager) Detach(child EntityID) {
	em.detach(child)
}

func (em *EntityManager) detach(child EntityID) {
	parent, ok := em.parents[child]
	if !ok {
		return
	}
	delete(em.parents, child)
	siblings := em.children[parent]
	for i, id := range siblings {
		if id == child {
			em.children[parent] = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	if len(em.children[parent]) == 0 {
		delete(em.children, parent)
	}
}

// Parent 返回实体的父实体；根实体返回 (InvalidEntity, false)
func (em *EntityManager) Parent(id EntityID) (EntityID, bool) {
	p, ok := em.parents[id]
	return p, ok
}

// Children 返回实体的子实体（按挂载顺序）
// 返回的是副本，调用方可以随意修改
func (em *EntityManager) Children(id EntityID) []EntityID {
	kids := em.children[id]
	out := make([]EntityID, len(kids))
	copy(out, kids)
	return out
}

// Roots 返回所有没有父实体的实体（按 ID 升序）
func (em *EntityManager) Roots() []EntityID {
	roots := make([]EntityID, 0)
	for id := range em.components {
		if _, hasParent := em.parents[id]; !hasParent {
			roots = append(roots, id)
		}
	}
	sortIDs(roots)
	return roots
}

// Walk 以先父后子的顺序遍历整片森林
// visit 收到实体及其父实体（根实体的父实体为 InvalidEntity）
func (em *EntityManager) Walk(visit func(id, parent EntityID)) {
	for _, root := range em.Roots() {
		em.walk(root, InvalidEntity, visit)
	}
}

func (em *EntityManager) walk(id, parent EntityID, visit func(id, parent EntityID)) {
	visit(id, parent)
	for _, child := range em.children[id] {
		em.walk(child, id, visit)
	}
}
