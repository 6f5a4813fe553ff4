package worker

import (
	"testing"

	"github.com/RNAcentral/rnacentral-references/internal/litclient"
	"github.com/RNAcentral/rnacentral-references/internal/model"
)

func TestStripIdentifier(t *testing.T) {
	cases := []struct {
		query, identifier, want string
	}{
		{"UCA1:4 AND SRC:MED", "UCA1:4", "AND SRC:MED"},
		{"SRC:MED", "UCA1:4", "SRC:MED"},
		{"UCA1:4", "UCA1:4", ""},
	}
	for _, c := range cases {
		if got := stripIdentifier(c.query, c.identifier); got != c.want {
			t.Errorf("stripIdentifier(%q, %q) = %q, want %q", c.query, c.identifier, got, c.want)
		}
	}
}

func TestFilterSeen(t *testing.T) {
	hits := []litclient.Hit{
		{PMCID: "PMC100", CitedBy: 1},
		{PMCID: "PMC200", CitedBy: 2},
		{PMCID: "PMC300", CitedBy: 3},
	}
	got := filterSeen(hits, []string{"PMC100", "PMC300"})
	if len(got) != 1 || got[0].PMCID != "PMC200" {
		t.Errorf("filterSeen() = %+v, want only PMC200", got)
	}
}

func TestFilterSeenNoOverlap(t *testing.T) {
	hits := []litclient.Hit{{PMCID: "PMC1", CitedBy: 0}}
	got := filterSeen(hits, nil)
	if len(got) != 1 {
		t.Errorf("filterSeen() with no seen entries should keep everything, got %+v", got)
	}
}

func TestFlattenBodySentences(t *testing.T) {
	buckets := map[model.SectionBucket][]string{
		model.SectionResults: {"sentence one", "sentence two"},
		model.SectionIntro:   {"sentence three"},
	}
	got := flattenBodySentences(buckets)
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	counts := map[model.SectionBucket]int{}
	for _, g := range got {
		counts[g.Location]++
	}
	if counts[model.SectionResults] != 2 || counts[model.SectionIntro] != 1 {
		t.Errorf("bucket counts = %+v", counts)
	}
}
