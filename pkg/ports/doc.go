/*
Package ports defines the driven ports (interfaces) for the Parley engine.

These interfaces decouple the core pipeline from external implementations,
allowing the engine to work with various scenario sources, tokenizers, and
session storage backends.

# Key Interfaces

  - ScenarioSource: read-only access to loaded nodes and slot definitions.
  - Tokenizer: splits raw text into lexical units for the recognizer.
  - StateStore: persists and loads per-conversation session State.
*/
package ports
