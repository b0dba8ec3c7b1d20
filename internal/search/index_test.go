package search

import "testing"

func testDocs() []Document {
	return []Document{
		{
			ID:          "discovery-pain-points",
			Title:       "Pain Point Discovery",
			Description: "Uncover customer pain points and challenges",
			Content:     "Generate open-ended questions that identify current challenges",
			WhenToUse:   "Early in sales cycle to understand prospect challenges",
		},
		{
			ID:          "objection-pricing",
			Title:       "Price Objection Handling",
			Description: "Respond to prospects who push back on cost",
			Content:     "Draft a response that reframes pricing as value delivered",
			WhenToUse:   "When a deal stalls on budget",
		},
		{
			ID:          "email-cold-outreach",
			Title:       "Cold Outreach Email",
			Description: "Write a first-touch email that earns a reply",
			Content:     "Write a short, personalized email for a prospect",
			WhenToUse:   "Top of funnel outbound",
		},
	}
}

func TestBuildAndQueryExactTitle(t *testing.T) {
	idx := Build(testDocs())
	if idx == nil {
		t.Fatal("Build returned nil index")
	}
	defer idx.Close()

	scores, err := idx.Query("Pain Point Discovery")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	want := "discovery-pain-points"
	best := scores[want]
	if best <= 0 {
		t.Fatalf("expected positive score for %q, got %v", want, best)
	}
	for id, s := range scores {
		if s > best {
			t.Errorf("document %q outscored the exact-title match: %v > %v", id, s, best)
		}
	}
}

func TestQueryTitleBoostOutranksBodyMatch(t *testing.T) {
	idx := Build(testDocs())
	if idx == nil {
		t.Fatal("Build returned nil index")
	}
	defer idx.Close()

	scores, err := idx.Query("email")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if scores["email-cold-outreach"] <= 0 {
		t.Fatal("expected the email prompt to match")
	}
	for id, s := range scores {
		if id != "email-cold-outreach" && s >= scores["email-cold-outreach"] {
			t.Errorf("title match should outrank %q: %v >= %v", id, s, scores["email-cold-outreach"])
		}
	}
}

func TestQueryBodyOnlyMatch(t *testing.T) {
	idx := Build(testDocs())
	if idx == nil {
		t.Fatal("Build returned nil index")
	}
	defer idx.Close()

	// "pricing" appears only in the content body of the price-objection
	// prompt; the title says "Price", which the standard analyzer does not
	// stem to the same token.
	scores, err := idx.Query("pricing")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if scores["objection-pricing"] <= 0 {
		t.Fatal("expected body match for pricing")
	}
	if _, ok := scores["discovery-pain-points"]; ok {
		t.Error("unrelated prompt should not match pricing")
	}
}

func TestQueryMalformedSyntaxReturnsError(t *testing.T) {
	idx := Build(testDocs())
	if idx == nil {
		t.Fatal("Build returned nil index")
	}
	defer idx.Close()

	cases := []string{`"`, `title:"unbalanced`, `+`, `~`, `price~~`}
	for _, q := range cases {
		if _, err := idx.Query(q); err == nil {
			t.Errorf("Query(%q) should report a syntax error for fallback handling", q)
		}
	}
}

func TestQueryEmbeddedQuoteIsAccepted(t *testing.T) {
	idx := Build(testDocs())
	if idx == nil {
		t.Fatal("Build returned nil index")
	}
	defer idx.Close()

	// A quote embedded mid-word parses cleanly under the query-string
	// grammar, so it must score through the index rather than trip the
	// substring fallback.
	if _, err := idx.Query(`copy"paste`); err != nil {
		t.Fatalf("Query should accept an embedded quote, got %v", err)
	}
}

func TestQueryNilIndex(t *testing.T) {
	var idx *Index
	if _, err := idx.Query("anything"); err == nil {
		t.Fatal("nil index should report no index available")
	}
}

func TestFallbackScores(t *testing.T) {
	docs := testDocs()

	cases := []struct {
		name  string
		query string
		want  map[string]float64
	}{
		{
			name:  "title_match",
			query: "price objection",
			want: map[string]float64{
				"discovery-pain-points": 0,
				"objection-pricing":     2,
				"email-cold-outreach":   0,
			},
		},
		{
			name:  "content_match",
			query: "pricing",
			want: map[string]float64{
				"discovery-pain-points": 0,
				"objection-pricing":     1,
				"email-cold-outreach":   0,
			},
		},
		{
			name:  "case_insensitive_title",
			query: "COLD OUTREACH",
			want: map[string]float64{
				"discovery-pain-points": 0,
				"objection-pricing":     0,
				"email-cold-outreach":   2,
			},
		},
		{
			name:  "no_match",
			query: "quarterly forecast",
			want: map[string]float64{
				"discovery-pain-points": 0,
				"objection-pricing":     0,
				"email-cold-outreach":   0,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FallbackScores(tc.query, docs)
			for id, want := range tc.want {
				if got[id] != want {
					t.Errorf("FallbackScores(%q)[%q]=%v, want %v", tc.query, id, got[id], want)
				}
			}
		})
	}
}

func TestBuildEmptyCollection(t *testing.T) {
	idx := Build(nil)
	if idx == nil {
		t.Fatal("Build of empty collection should still produce an index")
	}
	defer idx.Close()

	scores, err := idx.Query("anything")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("expected no hits, got %v", scores)
	}
}
