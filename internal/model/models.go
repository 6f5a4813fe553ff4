// Package model defines the shared data structures persisted by the Store
// and passed between the producer, consumer, and classifier binaries.
package model

import "time"

// JobStatus is the status column of a Job row. Transitions form a DAG:
// pending -> started -> {success, error}. No back-edges.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobStarted JobStatus = "started"
	JobSuccess JobStatus = "success"
	JobError   JobStatus = "error"
)

// ConsumerStatus is the status column of a Consumer row.
type ConsumerStatus string

const (
	ConsumerAvailable ConsumerStatus = "available"
	ConsumerBusy      ConsumerStatus = "busy"
	ConsumerError     ConsumerStatus = "error"
)

// SectionBucket is the section a body sentence was collected from.
type SectionBucket string

const (
	SectionIntro      SectionBucket = "intro"
	SectionResults    SectionBucket = "results"
	SectionDiscussion SectionBucket = "discussion"
	SectionConclusion SectionBucket = "conclusion"
	SectionMethod     SectionBucket = "method"
	SectionOther      SectionBucket = "other"
	SectionAbstract   SectionBucket = "abstract"
)

// Job mirrors litscan_job.
type Job struct {
	JobID       string // normalized (lower-cased) identifier; primary key
	DisplayID   string // original case as submitted
	Query       *string
	SearchLimit *int
	Status      JobStatus
	Submitted   time.Time
	Finished    *time.Time
	HitCount    *int
}

// Consumer mirrors litscan_consumer.
type Consumer struct {
	IP     string
	Status ConsumerStatus
	Port   string
	JobID  *string
}

// Article mirrors litscan_article.
type Article struct {
	PMCID       string
	Title       string
	Abstract    string
	Author      string
	PMID        string
	DOI         string
	Journal     string
	Type        string
	Year        *int
	Score       int
	CitedBy     int
	Retracted   bool
	RNARelated  *bool
	Probability *float64
}

// Result mirrors litscan_result. Unique on (PMCID, JobID).
type Result struct {
	ID           int64
	PMCID        string
	JobID        string
	IDInTitle    bool
	IDInAbstract bool
	IDInBody     bool
}

// AbstractSentence mirrors litscan_abstract_sentence.
type AbstractSentence struct {
	ID       int64
	ResultID int64
	Sentence string
}

// BodySentence mirrors litscan_body_sentence.
type BodySentence struct {
	ID       int64
	ResultID int64
	Sentence string
	Location SectionBucket
}

// Metadata mirrors litscan_database: "job_id belongs to dataset name,
// optionally as a child of primary_id".
type Metadata struct {
	ID        int64
	Name      string
	JobID     *string
	PrimaryID *string
}

// ManuallyAnnotated mirrors litscan_manually_annotated.
type ManuallyAnnotated struct {
	ID    int64
	PMCID string
	URS   string
}

// SearchHit is one (pmcid, citedByCount) pair returned by the external
// literature client's search operation.
type SearchHit struct {
	PMCID   string
	CitedBy int
}

// ExtractedArticle is the structured output of the Article Extractor
// (component B) for one article, ready to persist via the Store.
type ExtractedArticle struct {
	Title        string
	Abstract     string
	Author       string
	PMID         string
	DOI          string
	Journal      string
	Type         string
	Year         *int
	Score        int
	IDInTitle    bool
	IDInAbstract bool
	IDInBody     bool
	AbstractSentences []string
	BodySentences      map[SectionBucket][]string
}

// JobResult is the API-facing shape of GET /api/results/{job_id}.
type JobResult struct {
	JobID            string             `json:"job_id"`
	PMCID            string             `json:"pmcid"`
	Title            string             `json:"title"`
	Author           string             `json:"author"`
	PMID             string             `json:"pmid"`
	DOI              string             `json:"doi"`
	Year             *int               `json:"year"`
	Journal          string             `json:"journal"`
	Score            int                `json:"score"`
	CitedBy          int                `json:"cited_by"`
	Retracted        bool               `json:"retracted"`
	IDInTitle        bool               `json:"id_in_title"`
	IDInAbstract     bool               `json:"id_in_abstract"`
	IDInBody         bool               `json:"id_in_body"`
	AbstractSentence []string           `json:"abstract_sentence"`
	BodySentence     []JobBodySentence  `json:"body_sentence"`
}

// JobBodySentence is one body-sentence entry in the results API response.
type JobBodySentence struct {
	Location string `json:"location"`
	Sentence string `json:"sentence"`
}

// HitCountRow is one row of GET /api/hit_count.
type HitCountRow struct {
	URS      string `json:"urs"`
	HitCount int    `json:"hit_count"`
}
