// Package litclient wraps the external literature search API (EuropePMC):
// query construction, cursor-based paging, and full-text fetch.
package litclient

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const pageSize = 500

// Client talks to the EuropePMC REST API. Rate limiting is enforced with a
// token bucket capped at 10 requests/second, matching EuropePMC's
// documented 10/sec-or-500/min budget.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// New builds a Client against baseURL (e.g. the EUROPE_PMC config value).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
}

// Hit is one (pmcid, citedByCount) pair returned by a search page.
type Hit struct {
	PMCID   string
	CitedBy int
}

type searchResponse struct {
	XMLName        xml.Name `xml:"responseWrapper"`
	NextCursorMark string   `xml:"nextCursorMark"`
	ResultList     struct {
		Result []struct {
			PMCID        string `xml:"pmcid"`
			CitedByCount *int   `xml:"citedByCount"`
		} `xml:"result"`
	} `xml:"resultList"`
}

// BuildQuery constructs the EuropePMC query string:
//
//	("{id}"{opt ' AND '+query_filter} AND IN_EPMC:Y AND OPEN_ACCESS:Y AND NOT SRC:PPR{opt ' AND (FIRST_PDATE:[{since} TO today])'})
func BuildQuery(identifier, queryFilter string, sinceDate *time.Time) string {
	var sb strings.Builder
	sb.WriteString(`("`)
	sb.WriteString(identifier)
	sb.WriteString(`"`)
	if strings.TrimSpace(queryFilter) != "" {
		sb.WriteString(" AND ")
		sb.WriteString(queryFilter)
	}
	sb.WriteString(" AND IN_EPMC:Y AND OPEN_ACCESS:Y AND NOT SRC:PPR")
	if sinceDate != nil {
		sb.WriteString(" AND (FIRST_PDATE:[")
		sb.WriteString(sinceDate.Format("2006-01-02"))
		sb.WriteString(" TO today])")
	}
	sb.WriteString(")")
	return sb.String()
}

// Search runs one page of the EuropePMC query search. cursor is "*" for the
// first page. Returns the hits on this page and the next cursor mark, which
// is "" when there are no further pages.
func (c *Client) Search(ctx context.Context, query, cursor string) ([]Hit, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	if cursor == "" {
		cursor = "*"
	}
	u := c.baseURL + "/search?" + url.Values{
		"query":      {query},
		"pageSize":   {fmt.Sprintf("%d", pageSize)},
		"cursorMark": {cursor},
		"sort":       {"P_PDATE_D asc"},
		"format":     {"xml"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("litclient: search transport error", "err", err)
		return nil, "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("litclient: search non-2xx", "status", resp.StatusCode)
		return nil, "", nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("litclient: search read error", "err", err)
		return nil, "", nil
	}

	var parsed searchResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		slog.Warn("litclient: search parse error", "err", err)
		return nil, "", nil
	}

	var hits []Hit
	for _, r := range parsed.ResultList.Result {
		if r.PMCID == "" || r.CitedByCount == nil {
			continue
		}
		hits = append(hits, Hit{PMCID: r.PMCID, CitedBy: *r.CitedByCount})
	}

	next := strings.TrimSpace(parsed.NextCursorMark)
	if next == cursor {
		// EuropePMC repeats the last cursor on the final page.
		next = ""
	}
	return hits, next, nil
}

// FetchFullText retrieves the JATS-like full-text XML for pmcid, or nil if
// it is missing, unreachable, or non-2xx.
func (c *Client) FetchFullText(ctx context.Context, pmcid string) []byte {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil
	}

	u := c.baseURL + "/" + url.PathEscape(pmcid) + "/fullTextXML"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("litclient: full text transport error", "pmcid", pmcid, "err", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("litclient: full text non-2xx", "pmcid", pmcid, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("litclient: full text read error", "pmcid", pmcid, "err", err)
		return nil
	}
	return body
}
