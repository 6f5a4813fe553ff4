package extractor

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"

	"github.com/RNAcentral/rnacentral-references/internal/model"
)

func mustParseFragment(t *testing.T, xml string) *xmlquery.Node {
	t.Helper()
	doc, err := xmlquery.Parse(strings.NewReader(xml))
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	sec := xmlquery.FindOne(doc, "//sec")
	if sec == nil {
		t.Fatalf("fragment has no <sec> element")
	}
	return sec
}

const sampleArticle = `<article article-type="research-article">
<front>
  <article-meta>
    <article-id pub-id-type="pmid">12345678</article-id>
    <article-id pub-id-type="doi">10.1000/xyz123</article-id>
    <title-group>
      <article-title>A study of URS0000000001_9606 in human cells</article-title>
    </title-group>
    <contrib-group>
      <contrib><name><surname>Smith</surname><given-names>Jane</given-names></name></contrib>
      <contrib><name><surname>Doe</surname><given-names>John</given-names></name></contrib>
    </contrib-group>
    <pub-date pub-type="epub"><year>2021</year></pub-date>
    <abstract>
      <p>We report that URS0000000001_9606 regulates cell growth in vitro.</p>
    </abstract>
  </article-meta>
</front>
<journal-meta><journal-title>Journal of Testing</journal-title></journal-meta>
<body>
  <sec>
    <title>Introduction and background</title>
    <p>Non-coding RNAs are important regulators of gene expression in many organisms across the tree of life.</p>
  </sec>
  <sec>
    <title>Results</title>
    <p>We found that URS0000000001_9606 was upregulated significantly during the stress response in treated samples.</p>
    <table-wrap><table><tr><td>noise data that must be dropped entirely</td></tr></table></table-wrap>
  </sec>
</body>
</article>`

func TestExtractMatches(t *testing.T) {
	article, matched, err := Extract("URS0000000001_9606", []byte(sampleArticle))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !matched {
		t.Fatal("expected article to match")
	}
	if !strings.Contains(article.Title, "URS0000000001_9606") {
		t.Errorf("title = %q, want identifier present", article.Title)
	}
	if !article.IDInTitle {
		t.Error("expected IDInTitle = true")
	}
	if !article.IDInAbstract {
		t.Error("expected IDInAbstract = true")
	}
	if len(article.AbstractSentences) == 0 {
		t.Error("expected at least one matching abstract sentence")
	}
	if !article.IDInBody {
		t.Error("expected IDInBody = true")
	}
	if got := article.BodySentences[model.SectionResults]; len(got) == 0 {
		t.Error("expected a results-bucket sentence")
	}
	if got := article.BodySentences[model.SectionIntro]; len(got) != 0 {
		t.Errorf("intro section should not match identifier, got %v", got)
	}
	if article.Author != "Smith, Jane; Doe, John" {
		t.Errorf("author = %q", article.Author)
	}
	if article.PMID != "12345678" || article.DOI != "10.1000/xyz123" {
		t.Errorf("pmid/doi = %q/%q", article.PMID, article.DOI)
	}
	if article.Year == nil || *article.Year != 2021 {
		t.Errorf("year = %v, want 2021", article.Year)
	}
	if article.Journal != "Journal of Testing" {
		t.Errorf("journal = %q", article.Journal)
	}
	if article.Type != "Research Article" {
		t.Errorf("type = %q", article.Type)
	}
	wantScore := len(article.AbstractSentences)
	for _, s := range article.BodySentences {
		wantScore += len(s)
	}
	if article.Score != wantScore {
		t.Errorf("score = %d, want %d", article.Score, wantScore)
	}
}

func TestExtractPreScreenMiss(t *testing.T) {
	_, matched, err := Extract("URS9999999999_9606", []byte(sampleArticle))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched {
		t.Fatal("expected no match when identifier absent from article")
	}
}

func TestExtractSyntheticOtherSentence(t *testing.T) {
	const xml = `<article article-type="research-article">
<front><article-meta>
  <title-group><article-title>Unrelated title text</article-title></title-group>
</article-meta></front>
<body><sec><title>Supplementary</title>
<supplementary-material>URS0000000002_9606 lives only here and should be sanitized away.</supplementary-material>
</sec></body></article>`

	article, matched, err := Extract("URS0000000002_9606", []byte(xml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !matched {
		t.Fatal("expected a match: identifier passed pre-screen even though sanitization removed its only mention")
	}
	if article.IDInAbstract {
		t.Error("expected IDInAbstract = false, the only mention was sanitized away")
	}
	if !article.IDInBody {
		t.Error("expected IDInBody = true via the synthetic fallback sentence")
	}
	others := article.BodySentences[model.SectionOther]
	if len(others) != 1 || !strings.Contains(others[0], "found in an image, table or supplementary material") {
		t.Errorf("other bucket = %v, want synthetic fallback sentence", others)
	}
}

func TestExtractTransTitleSkipped(t *testing.T) {
	const xml = `<article article-type="research-article">
<front><article-meta>
  <title-group>
    <article-title>URS0000000003_9606 study</article-title>
    <trans-title-group><trans-title>non english title</trans-title></trans-title-group>
  </title-group>
</article-meta></front>
<body><sec><title>Results</title><p>URS0000000003_9606 was measured in this non-English article body text.</p></sec></body>
</article>`

	_, matched, err := Extract("URS0000000003_9606", []byte(xml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched {
		t.Fatal("expected article with trans-title-group to be skipped")
	}
}

func TestSectionOfRules(t *testing.T) {
	cases := []struct {
		title string
		want  model.SectionBucket
	}{
		{"Introduction", model.SectionIntro},
		{"Results and analysis", model.SectionResults},
		{"Discussion", model.SectionDiscussion},
		{"Conclusions", model.SectionConclusion},
		{"Methods and materials", model.SectionMethod},
		{"Acknowledgements", model.SectionOther},
		{"", model.SectionOther},
	}
	for _, c := range cases {
		xml := "<sec><title>" + c.title + "</title></sec>"
		doc := mustParseFragment(t, xml)
		sec := doc
		if got := sectionOf(sec); got != c.want {
			t.Errorf("sectionOf(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}
