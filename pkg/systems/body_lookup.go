package systems

import (
	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
)

// findBody 按角色查找天体实体
// 场景里每种角色只有一个天体；找不到时返回 false，调用方静默跳过
func findBody(em *ecs.EntityManager, role components.BodyRole) (ecs.EntityID, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.BodyComponent](em) {
		body, ok := ecs.GetComponent[*components.BodyComponent](em, id)
		if ok && body.Role == role {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}
