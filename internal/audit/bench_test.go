package audit

import (
	"os"
	"path/filepath"
	"testing"
)

func benchEntry() Entry {
	return Entry{
		RunID:      "run-bench",
		Category:   "transaction",
		Proposed:   3,
		Approved:   []string{"verifyRecipient", "checkGasPrice", "executeTransaction"},
		Confidence: 1.0,
		Reason:     "within epistemic boundaries",
		ConfigHash: "sha256:bench",
	}
}

func BenchmarkRecord_Single(b *testing.B) {
	path := filepath.Join(b.TempDir(), "bench.jsonl")
	dl, err := Open(path)
	if err != nil {
		b.Fatal(err)
	}
	defer dl.Close()

	entry := benchEntry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dl.Record(entry)
	}
}

func BenchmarkRecord_Sequential100(b *testing.B) {
	entry := benchEntry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		path := filepath.Join(b.TempDir(), "bench.jsonl")
		dl, err := Open(path)
		if err != nil {
			b.Fatal(err)
		}
		for j := 0; j < 100; j++ {
			dl.Record(entry)
		}
		dl.Close()
	}
}

func benchVerify(b *testing.B, n int) {
	b.Helper()
	path := filepath.Join(b.TempDir(), "bench.jsonl")
	dl, err := Open(path)
	if err != nil {
		b.Fatal(err)
	}
	entry := benchEntry()
	for i := 0; i < n; i++ {
		dl.Record(entry)
	}
	dl.Close()

	info, _ := os.Stat(path)
	b.ResetTimer()
	b.SetBytes(info.Size())

	for i := 0; i < b.N; i++ {
		result := Verify(path)
		if !result.Valid {
			b.Fatal("invalid chain:", result.Error)
		}
	}
}

func BenchmarkVerify_1000(b *testing.B) {
	benchVerify(b, 1000)
}

func BenchmarkVerify_10000(b *testing.B) {
	benchVerify(b, 10000)
}
