/*
Package domain contains the core entities of the intentgraph analyzer.

It defines the Intent value model decoded defensively from untrusted records,
the typed Transition vocabulary, and the risk taxonomy shared by the scorer
and the diagram exporters. This package is kept pure and free of I/O,
following the same layering as the rest of the repository.

# Key Entities

  - Intent: One dialog unit (trigger inputs, answers, branching data).
  - Transition: A directed, typed link from one intent to a target identifier.
  - Classification: Coarse intent type plus optional domain subtype.
  - IntentRisk: Accumulated findings and the resulting severity for one intent.

Records arrive as raw key-value maps with no schema guarantees. DecodeIntent
normalizes every malformed shape (nulls, NaN floats, wrong types) into zero
values so that downstream rules never see a type they did not ask for.
*/
package domain
