/*
Package scenario loads and holds dialogue scenario graphs.

A scenario document is a YAML (or JSON) list of node records:

	- id: greet
	  intent: ["I want to buy a shirt"]
	  slot: ["#size#"]
	  response: "Ordering a #size# shirt"
	  childnode: [confirm]

Slot names act as their own placeholders: the name (delimiters included)
appears verbatim in response templates and is replaced by the collected
value at generation time.

The slot table maps slot name to an extraction pattern and a request prompt:

	"#size#":
	  values: "S|M|L|XL"
	  query: "What size would you like?"

The Store is immutable after Load and safe for concurrent reads across
sessions. All structural problems (dangling children, undefined slots,
invalid patterns) are load-time errors.
*/
package scenario
