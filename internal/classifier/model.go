package classifier

import "strings"

// rnaKeywords is the keyword set the heuristic StubModel scores against.
// It stands in for the pre-trained model weights named by the
// CLASSIFIER_MODEL_PATH config value — the Model interface is the seam a
// real implementation plugs into (see DESIGN.md).
var rnaKeywords = []string{
	"rna", "mrna", "trna", "rrna", "ncrna", "lncrna", "mirna", "sirna",
	"transcript", "transcription", "ribonucleic", "splicing", "riboswitch",
	"ribosome", "nucleotide",
}

// StubModel is a keyword-frequency heuristic used when no real model is
// configured. It satisfies Model.
type StubModel struct{}

// Predict reports rnaRelated = true when at least one keyword is present,
// with probability proportional to keyword density, capped at 0.99.
func (StubModel) Predict(abstract string) (bool, float64) {
	words := strings.Fields(abstract)
	if len(words) == 0 {
		return false, 0
	}

	hits := 0
	for _, w := range words {
		for _, kw := range rnaKeywords {
			if strings.Contains(w, kw) {
				hits++
				break
			}
		}
	}

	probability := float64(hits) / float64(len(words)) * 10
	if probability > 0.99 {
		probability = 0.99
	}
	return hits > 0, probability
}
