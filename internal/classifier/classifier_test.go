package classifier

import "testing"

func TestCleanAbstract(t *testing.T) {
	in := `<p>This RNA study [see ref 12] was published at https://example.com/paper.pdf for review.</p>`
	got := CleanAbstract(in)
	want := "this rna study was published at for review."
	if got != want {
		t.Errorf("CleanAbstract() = %q, want %q", got, want)
	}
}

func TestCleanAbstractCollapsesWhitespace(t *testing.T) {
	got := CleanAbstract("Line one\n\n   Line   two")
	want := "line one line two"
	if got != want {
		t.Errorf("CleanAbstract() = %q, want %q", got, want)
	}
}

func TestRoundTo2DP(t *testing.T) {
	cases := map[float64]float64{
		0.12345: 0.12,
		0.125:   0.13,
		0.999:   1.0,
		0:       0,
	}
	for in, want := range cases {
		if got := roundTo2DP(in); got != want {
			t.Errorf("roundTo2DP(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestStubModelPredictsRNARelated(t *testing.T) {
	m := StubModel{}
	related, prob := m.Predict("this study examines mrna splicing in ribosome assembly")
	if !related {
		t.Error("expected rna-related = true")
	}
	if prob <= 0 {
		t.Errorf("expected positive probability, got %v", prob)
	}

	unrelated, prob2 := m.Predict("this study examines unrelated chemistry topics entirely")
	if unrelated {
		t.Error("expected rna-related = false for unrelated abstract")
	}
	if prob2 != 0 {
		t.Errorf("expected zero probability for no keyword hits, got %v", prob2)
	}
}

func TestStubModelEmptyAbstract(t *testing.T) {
	m := StubModel{}
	related, prob := m.Predict("")
	if related || prob != 0 {
		t.Errorf("Predict(\"\") = (%v, %v), want (false, 0)", related, prob)
	}
}
