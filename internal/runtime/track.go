package runtime

import "github.com/aretw0/parley/pkg/domain"

// trackState scans the hit node's slot list in declared order and returns
// the first slot still missing from the session, or "" when the node is
// fully satisfied. Declaration order decides which slot gets requested
// next when several are missing.
func trackState(node *domain.Node, filled map[string]string) string {
	for _, slot := range node.Slots {
		if _, ok := filled[slot]; !ok {
			return slot
		}
	}
	return ""
}
