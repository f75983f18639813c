/*
Package domain contains the core domain models for the Parley dialogue engine.

It defines the fundamental entities of the scripted conversation: scenario
Nodes, SlotDefinitions, the per-conversation session State, and the policy
Action taken each turn. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Node: one scripted dialogue state (example intents, required slots,
    response template, child nodes).
  - SlotDefinition: how to extract a slot value from text and how to ask
    for it when missing.
  - State: the mutable session memory threaded through every turn.
  - Turn: the per-utterance result handed to drivers (response text plus
    the action that produced it).
*/
package domain
