package ecs

import "testing"

func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if _, ok := GetComponent[*testTranslation](em, id); ok {
		t.Fatal("未添加的组件不应被找到")
	}

	AddComponent(em, id, &testTranslation{X: 1, Y: 2, Z: 3})

	tr, ok := GetComponent[*testTranslation](em, id)
	if !ok {
		t.Fatal("组件应当能被找到")
	}
	tr.X = 10

	// 组件以指针保存，修改应当可见
	again, _ := GetComponent[*testTranslation](em, id)
	if again.X != 10 {
		t.Errorf("X = %v, want 10", again.X)
	}

	if !HasComponent[*testTranslation](em, id) {
		t.Error("HasComponent 应返回 true")
	}
	RemoveComponent[*testTranslation](em, id)
	if HasComponent[*testTranslation](em, id) {
		t.Error("移除后 HasComponent 应返回 false")
	}
}

func TestGenericAndReflectAgree(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 反射版本添加，泛型版本读取
	em.AddComponent(id, &testAngularSpeed{RadPerSec: 2})
	speed, ok := GetComponent[*testAngularSpeed](em, id)
	if !ok || speed.RadPerSec != 2 {
		t.Fatalf("GetComponent = (%v, %v), want (2, true)", speed, ok)
	}
}

func TestGetEntitiesWithN(t *testing.T) {
	em := NewEntityManager()
	a := em.CreateEntity()
	AddComponent(em, a, &testTranslation{})
	AddComponent(em, a, &testAngularSpeed{})
	b := em.CreateEntity()
	AddComponent(em, b, &testTranslation{})

	tests := []struct {
		name string
		got  []EntityID
		want []EntityID
	}{
		{"单组件", GetEntitiesWith1[*testTranslation](em), []EntityID{a, b}},
		{"双组件", GetEntitiesWith2[*testTranslation, *testAngularSpeed](em), []EntityID{a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.got) != len(tt.want) {
				t.Fatalf("got %v, want %v", tt.got, tt.want)
			}
			for i := range tt.want {
				if tt.got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", tt.got, tt.want)
				}
			}
		})
	}
}

func BenchmarkGetComponentGeneric(b *testing.B) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testTranslation{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := GetComponent[*testTranslation](em, id); !ok {
			b.Fatal("component not found")
		}
	}
}
