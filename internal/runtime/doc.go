/*
Package runtime implements the dialogue pipeline: understanding (intent
scoring and slot extraction), state tracking (next missing slot), policy
(repeat / request / reply), and generation (rendering the reply), composed
by the turn engine over per-session state.

One turn fully completes before the next begins; there are no suspension
points inside a turn. The engine shares an immutable scenario source across
sessions, while each conversation owns its own State.
*/
package runtime
