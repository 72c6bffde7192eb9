package processor

import "testing"

func labelRecordFor(setID, generic, brand string) map[string]any {
	return map[string]any{
		"set_id": setID,
		"openfda": map[string]any{
			"generic_name": []any{generic},
			"brand_name":   []any{brand},
		},
	}
}

func TestProcessSearchResults_DedupKeepsFirst(t *testing.T) {
	rawResults := []map[string]any{
		labelRecordFor("set-1", "atorvastatin", "LIPITOR"),
		labelRecordFor("set-2", "Atorvastatin", "lipitor"), // same identity, different case
		labelRecordFor("set-3", "metformin", "GLUCOPHAGE"),
	}

	drugs := ProcessSearchResults(rawResults, PairKey)

	if len(drugs) != 2 {
		t.Fatalf("expected 2 drugs, got %d", len(drugs))
	}
	if drugs[0].SetID != "set-1" {
		t.Errorf("first occurrence should win, got %q", drugs[0].SetID)
	}
	if drugs[1].SetID != "set-3" {
		t.Errorf("order should be preserved, got %q", drugs[1].SetID)
	}
}

func TestProcessSearchResults_SetIDKey(t *testing.T) {
	// Same name pair, distinct set IDs: PairKey collapses them, SetIDKey keeps both
	rawResults := []map[string]any{
		labelRecordFor("set-1", "atorvastatin", "LIPITOR"),
		labelRecordFor("set-2", "atorvastatin", "LIPITOR"),
	}

	if got := len(ProcessSearchResults(rawResults, PairKey)); got != 1 {
		t.Errorf("PairKey: expected 1 drug, got %d", got)
	}
	if got := len(ProcessSearchResults(rawResults, SetIDKey)); got != 2 {
		t.Errorf("SetIDKey: expected 2 drugs, got %d", got)
	}
}

func TestProcessSearchResults_NilKeyDefaultsToPair(t *testing.T) {
	rawResults := []map[string]any{
		labelRecordFor("set-1", "atorvastatin", "LIPITOR"),
		labelRecordFor("set-2", "atorvastatin", "LIPITOR"),
	}

	if got := len(ProcessSearchResults(rawResults, nil)); got != 1 {
		t.Errorf("expected 1 drug with default key, got %d", got)
	}
}

func TestProcessSearchResults_EmptyInput(t *testing.T) {
	drugs := ProcessSearchResults(nil, PairKey)
	if drugs == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(drugs) != 0 {
		t.Errorf("expected no drugs, got %d", len(drugs))
	}
}

func TestProcessSearchResults_Determinism(t *testing.T) {
	rawResults := []map[string]any{
		labelRecordFor("set-1", "a", "1"),
		labelRecordFor("set-2", "b", "2"),
		labelRecordFor("set-3", "a", "1"),
		labelRecordFor("set-4", "c", "3"),
	}

	first := ProcessSearchResults(rawResults, PairKey)
	for j := 0; j < 10; j++ {
		again := ProcessSearchResults(rawResults, PairKey)
		if len(again) != len(first) {
			t.Fatalf("result count changed between runs: %d vs %d", len(again), len(first))
		}
		for i := range first {
			if again[i].SetID != first[i].SetID {
				t.Fatalf("result order changed between runs at %d: %q vs %q", i, again[i].SetID, first[i].SetID)
			}
		}
	}
}
