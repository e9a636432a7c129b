/*
Package intentgraph extracts the navigation structure hidden inside a dialog
intent corpus and turns it into an analyzable directed graph.

Chatbot intent exports encode their routing in half a dozen places: direct
redirect fields, fallback intents, markdown buttons inside answer texts,
structured button actions, slot filler branches and matched intent
references. The engine finds all of them, resolves the targets through the
corpus namespace (intent ids, symbol codes, action ids) and builds a graph of
the conversation flow.

On top of the graph it runs three analysis passes:

  - Validation: duplicate ids and titles, malformed records, empty answer
    blocks, broken redirects and redirect cycles.
  - Risk: per-intent findings rolled up into a 0-100 corpus health score.
  - Quality: trigger regex complexity, entry point diversity and content
    freshness.

# Usage

	eng := intentgraph.New()
	rep, err := eng.AnalyzeFile(ctx, "intents.jsonl")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(rep.Markdown())

The resulting report serializes to JSON, renders to markdown, and feeds the
exporters in internal/export, which emit Mermaid, DOT, GraphML, GEXF and the
Cytoscape, D3 and vis.js JSON dialects.

The cmd/intentgraph CLI wraps the engine with analyze, graph, validate,
serve and mcp subcommands.
*/
package intentgraph
