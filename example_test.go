package intentgraph_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/intentgraph"
)

// ExampleEngine_AnalyzeRecords demonstrates running the pipeline over
// records decoded elsewhere, without touching the file system.
func ExampleEngine_AnalyzeRecords() {
	records := []map[string]any{
		{
			"intent_id":   "start",
			"record_type": "cc_regexp_main",
			"inputs": []any{
				map[string]any{"questions": []any{map[string]any{"sentence": "hello"}}},
			},
			"answers": []any{
				map[string]any{"answer": "Welcome! REDIRECT_TO_INTENT checkout"},
			},
		},
		{
			"intent_id":   "checkout",
			"record_type": "cc_regexp",
			"answers": []any{
				map[string]any{"answer": "All done."},
			},
		},
	}

	eng := intentgraph.New()
	rep, err := eng.AnalyzeRecords(context.Background(), records)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("intents:", rep.TotalIntents)
	fmt.Println("entry points:", rep.Graph.EntryPoints)
	fmt.Println("edges:", rep.Graph.Edges)
	// Output:
	// intents: 2
	// entry points: [start]
	// edges: 1
}
