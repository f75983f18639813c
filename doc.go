/*
Package parley is a task-oriented, scripted multi-turn dialogue engine.

A conversation is a directed graph of nodes, each carrying example intents,
required slots, and a response template. Parley tracks one user's progress
through the graph turn by turn: it scores the utterance against reachable
nodes, extracts slot values, asks for whatever is still missing, advances
to a child node once a node is satisfied, and replays the previous reply
when the user signals they did not catch it.

	engine, err := parley.New([]string{"scenarios/clothes-shop.yaml"}, "scenarios/slots.yaml")
	if err != nil {
		log.Fatal(err)
	}

	state := engine.NewSession()
	turn, _ := engine.RunTurn(ctx, state, "I want to buy a shirt")
	fmt.Println(turn.Response) // asks for the first missing slot

The scenario graph is immutable after load and shared across sessions;
each conversation owns its own State, which can be persisted through a
ports.StateStore (memory, file, or Redis).
*/
package parley
