package storage

import "testing"

func TestChunkIDsBatchBound(t *testing.T) {
	ids := make([]string, 1000)
	for i := range ids {
		ids[i] = "id"
	}

	chunks := chunkIDs(ids, deleteBatchSize)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d; want 3 (400+400+200)", len(chunks))
	}
	total := 0
	for i, c := range chunks {
		if len(c) > deleteBatchSize {
			t.Errorf("chunk %d has %d ids; must not exceed %d", i, len(c), deleteBatchSize)
		}
		total += len(c)
	}
	if total != 1000 {
		t.Errorf("chunks cover %d ids; want 1000", total)
	}
	if len(chunks[2]) != 200 {
		t.Errorf("last chunk = %d ids; want 200", len(chunks[2]))
	}
}

func TestChunkIDsEmpty(t *testing.T) {
	if chunks := chunkIDs(nil, deleteBatchSize); len(chunks) != 0 {
		t.Errorf("chunks = %d; want 0 for empty input", len(chunks))
	}
}

func TestPlaceholders(t *testing.T) {
	if got := placeholders(1, 3); got != "$1,$2,$3" {
		t.Errorf("placeholders(1,3) = %q", got)
	}
	if got := placeholders(17, 2); got != "$17,$18" {
		t.Errorf("placeholders(17,2) = %q", got)
	}
}
