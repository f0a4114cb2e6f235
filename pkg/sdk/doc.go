// Package recipedex provides an embedded Go client for the recipedex
// recipe search engine backed by Redis.
//
// The client wires the full retrieval pipeline in-process: ingestion
// embeds recipe content through the configured Embedder, search encodes
// the query, retrieves candidates by cosine similarity, applies hard
// filters and soft preferences, and returns the top results.
//
//	client, _ := recipedex.New(ctx,
//	    recipedex.WithRedis("localhost:6379", ""),
//	    recipedex.WithEmbedder(myEmbedder),
//	)
//	defer client.Close()
//
//	_, _ = client.Recipes().Ingest(ctx, recipedex.Recipe{
//	    ID:      "carbonara",
//	    Content: "Spaghetti carbonara with pancetta and pecorino",
//	    Attributes: map[string]any{
//	        "cuisine":      "Italian",
//	        "prep_minutes": 25.0,
//	        "diet":         []string{"pescatarian"},
//	    },
//	})
//
//	results, _ := client.Search().Query(ctx, recipedex.SearchQuery{
//	    Query:  "quick pasta dinner",
//	    Filter: recipedex.Lte("prep_minutes", 30),
//	    Preferences: []recipedex.Preference{
//	        {Attribute: "cuisine", Value: "Italian", Weight: 0.2},
//	    },
//	})
package recipedex
