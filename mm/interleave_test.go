package mm

import "testing"

func TestAllocInterleavedReturnsUsableMemory(t *testing.T) {
	p, err := AllocInterleaved(HugePageSize, true)
	if err != nil {
		t.Fatalf("AllocInterleaved: %v", err)
	}
	if p == nil {
		t.Fatalf("AllocInterleaved returned nil pointer")
	}
	FreeInterleaved(p, HugePageSize)
}

func TestInterleavedStatsAccumulate(t *testing.T) {
	before := InterleavedStats()
	beforeTotal := 0
	for _, v := range before {
		beforeTotal += v
	}
	p, err := AllocInterleaved(HugePageSize, true)
	if err != nil {
		t.Fatalf("AllocInterleaved: %v", err)
	}
	defer FreeInterleaved(p, HugePageSize)

	after := InterleavedStats()
	afterTotal := 0
	for _, v := range after {
		afterTotal += v
	}
	if afterTotal <= beforeTotal {
		t.Fatalf("InterleavedStats did not grow: before=%d after=%d", beforeTotal, afterTotal)
	}
}
