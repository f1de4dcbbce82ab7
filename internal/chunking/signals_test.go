package chunking

import "testing"

func TestAnalyze(t *testing.T) {
	text := "# Title\n\n## Sub\n\nFirst paragraph here.\n\nSecond paragraph here.\n\n1. one\n2. two\n3. three\n\n- bullet\n- bullet\n\n```go\nfunc main() {}\n```\n"
	sig := Analyze(text)

	if sig.FencedCodeBlocks != 1 {
		t.Errorf("FencedCodeBlocks = %d, want 1", sig.FencedCodeBlocks)
	}
	if sig.Headings != 2 {
		t.Errorf("Headings = %d, want 2", sig.Headings)
	}
	if sig.HeadingLevels[1] != 1 || sig.HeadingLevels[2] != 1 {
		t.Errorf("HeadingLevels = %v, want one level-1 and one level-2", sig.HeadingLevels)
	}
	if sig.OrderedListItems != 3 {
		t.Errorf("OrderedListItems = %d, want 3", sig.OrderedListItems)
	}
	if sig.ListItems != 5 {
		t.Errorf("ListItems = %d, want 5", sig.ListItems)
	}
	if sig.Paragraphs == 0 {
		t.Error("Paragraphs = 0, want > 0")
	}
	if sig.AvgSentenceLen <= 0 {
		t.Errorf("AvgSentenceLen = %f, want > 0", sig.AvgSentenceLen)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t"} {
		sig := Analyze(input)
		if sig.FencedCodeBlocks != 0 || sig.Headings != 0 || sig.ListItems != 0 || sig.Paragraphs != 0 {
			t.Errorf("Analyze(%q) = %+v, want zero signals", input, sig)
		}
	}
}

func TestAvgSentenceLength(t *testing.T) {
	// Two sentences of 10 and 20 runes.
	got := avgSentenceLength("aaaaaaaaaa. bbbbbbbbbbbbbbbbbbbb.")
	if got < 14 || got > 16 {
		t.Errorf("avgSentenceLength() = %f, want ~15", got)
	}

	if got := avgSentenceLength("..."); got != 0 {
		t.Errorf("avgSentenceLength(punctuation only) = %f, want 0", got)
	}
}
