package runtime

import "github.com/aretw0/parley/pkg/domain"

// Decision is the policy outcome: what to do this turn and which nodes are
// reachable on the next one.
type Decision struct {
	Action         domain.Action
	AvailableNodes []string
}

// decide maps (repeat, missing slot) to an action.
//
//   - repeat: replay the last response; graph position is untouched.
//   - a slot is missing: request it and stay pinned to the hit node until
//     the user provides a value.
//   - node satisfied: reply and advance to its children. An empty child
//     list means the scenario is exhausted; the next turn surfaces the
//     scenario-complete outcome.
func decide(isRepeat bool, requireSlot string, node *domain.Node, state *domain.State) Decision {
	switch {
	case isRepeat:
		return Decision{
			Action:         domain.ActionRepeat,
			AvailableNodes: state.AvailableNodes,
		}
	case requireSlot != "":
		return Decision{
			Action:         domain.ActionRequest,
			AvailableNodes: []string{node.ID},
		}
	default:
		return Decision{
			Action:         domain.ActionReply,
			AvailableNodes: append([]string(nil), node.Children...),
		}
	}
}
