package litclient

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type statusUpdateRequest struct {
	IDs []statusUpdateID `json:"ids"`
}

type statusUpdateID struct {
	Src   string `json:"src"`
	ExtID string `json:"extId"`
}

type statusUpdateResponse struct {
	ArticlesWithStatusUpdate []struct {
		ExtID         string   `json:"extId"`
		StatusUpdates []string `json:"statusUpdates"`
	} `json:"articlesWithStatusUpdate"`
}

// CheckRetractions queries the Status Update Search endpoint for a batch of
// PMCIDs (at most 30, per EuropePMC's documented limit) and returns the
// subset reported as RETRACTED. Grounded on original_source's
// find_retracted_articles.py.
func (c *Client) CheckRetractions(ctx context.Context, pmcids []string) ([]string, error) {
	if len(pmcids) == 0 {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqBody := statusUpdateRequest{IDs: make([]statusUpdateID, len(pmcids))}
	for i, p := range pmcids {
		reqBody.IDs[i] = statusUpdateID{Src: "PMC", ExtID: p}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/status-update-search", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("litclient: status-update-search transport error", "err", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("litclient: status-update-search non-2xx", "status", resp.StatusCode)
		return nil, nil
	}

	var parsed statusUpdateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		slog.Warn("litclient: status-update-search parse error", "err", err)
		return nil, nil
	}

	var retracted []string
	for _, item := range parsed.ArticlesWithStatusUpdate {
		for _, status := range item.StatusUpdates {
			if status == "RETRACTED" {
				retracted = append(retracted, item.ExtID)
				break
			}
		}
	}
	return retracted, nil
}
