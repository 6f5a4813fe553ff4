// Package submitapi implements the producer's job submission HTTP surface:
// single submit and multiple submit.
package submitapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/RNAcentral/rnacentral-references/internal/model"
	"github.com/RNAcentral/rnacentral-references/internal/store"
)

// defaultDatabaseName is used when a multiple-jobs submission does not name
// a database.
const defaultDatabaseName = "uninformed"

// defaultMultiQuery is the query filter applied to a multiple-jobs
// submission that does not supply its own query.
const defaultMultiQuery = `("rna" OR "mrna" OR "ncrna" OR "lncrna" OR "rrna" OR "sncrna")`

// API exposes the submission endpoints.
type API struct {
	store *store.Store
}

// New builds an API bound to st.
func New(st *store.Store) *API {
	return &API{store: st}
}

// Handler returns the net/http handler for the producer's full HTTP
// surface: submission, results, and hit-count lookups.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/submit-job", a.handleSubmitJob)
	mux.HandleFunc("POST /api/multiple-jobs", a.handleMultipleJobs)
	mux.HandleFunc("GET /api/results/{job_id}", a.handleGetResults)
	mux.HandleFunc("GET /api/hit_count", a.handleHitCount)
	return mux
}

type singleSubmitRequest struct {
	ID          string  `json:"id"`
	Query       *string `json:"query"`
	SearchLimit *int    `json:"search_limit"`
	Rescan      *bool   `json:"rescan"`
}

func (a *API) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	var req singleSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "malformed request body")
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, "id is required")
		return
	}

	jobID, err := a.upsertJob(r.Context(), req.ID, req.Query, req.SearchLimit, req.Rescan)
	if err != nil {
		slog.Error("submitapi: upsert job failed", "id", req.ID, "err", err)
		writeError(w, "could not save job")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"job_id": jobID})
}

// upsertJob implements the dedup/rescan path common to both endpoints:
// existing + rescan → wipe and re-queue; existing without rescan → return
// as-is; otherwise insert.
func (a *API) upsertJob(ctx context.Context, displayID string, query *string, searchLimit *int, rescan *bool) (string, error) {
	jobID := strings.ToLower(strings.TrimSpace(displayID))

	existing, found, err := a.store.SearchPerformed(ctx, jobID)
	if err != nil {
		return "", err
	}
	if found {
		if rescan != nil && *rescan {
			if err := a.store.ResetForRescan(ctx, existing, query, searchLimit); err != nil {
				return "", err
			}
		}
		return existing, nil
	}

	return a.store.SaveJob(ctx, jobID, displayID, query, searchLimit)
}

type multipleJobsRequest struct {
	JobID       []string `json:"job_id"`
	JobList     []string `json:"job_list"`
	PrimaryID   *string  `json:"primary_id"`
	ID          *string  `json:"id"`
	Database    *string  `json:"database"`
	Query       *string  `json:"query"`
	SearchLimit *int     `json:"search_limit"`
	Rescan      *bool    `json:"rescan"`
}

func (a *API) handleMultipleJobs(w http.ResponseWriter, r *http.Request) {
	var req multipleJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "malformed request body")
		return
	}

	ids := req.JobID
	if len(ids) == 0 {
		ids = req.JobList
	}

	var primaryID *string
	if req.PrimaryID != nil {
		primaryID = req.PrimaryID
	} else if req.ID != nil {
		primaryID = req.ID
	}

	if len(ids) == 0 && primaryID == nil {
		writeError(w, "job_id, job_list, primary_id, or id must be supplied")
		return
	}
	for _, displayID := range ids {
		if strings.TrimSpace(displayID) == "" {
			writeError(w, "job ids must be non-empty strings")
			return
		}
	}
	if primaryID != nil && strings.TrimSpace(*primaryID) == "" {
		writeError(w, "primary_id must be a non-empty string")
		return
	}

	database := defaultDatabaseName
	if req.Database != nil && strings.TrimSpace(*req.Database) != "" {
		database = *req.Database
	}

	query := req.Query
	if query == nil {
		defaultQuery := defaultMultiQuery
		query = &defaultQuery
	}

	var savedIDs []string
	for _, displayID := range ids {
		jobID, err := a.upsertJob(r.Context(), displayID, query, req.SearchLimit, req.Rescan)
		if err != nil {
			slog.Error("submitapi: upsert job failed", "id", displayID, "err", err)
			writeError(w, "could not save job")
			return
		}
		savedIDs = append(savedIDs, jobID)
	}

	var primaryJobID *string
	if primaryID != nil {
		jobID, err := a.upsertJob(r.Context(), *primaryID, query, req.SearchLimit, req.Rescan)
		if err != nil {
			slog.Error("submitapi: upsert primary job failed", "id", *primaryID, "err", err)
			writeError(w, "could not save job")
			return
		}
		primaryJobID = &jobID
	}

	for _, jobID := range savedIDs {
		jid := jobID
		if err := a.linkMetadata(r.Context(), &jid, database, primaryJobID); err != nil {
			slog.Error("submitapi: save metadata failed", "job_id", jid, "err", err)
			writeError(w, "could not save metadata")
			return
		}
	}

	switch {
	case primaryJobID != nil && len(savedIDs) > 0:
		if err := a.linkMetadata(r.Context(), primaryJobID, database, nil); err != nil {
			slog.Error("submitapi: save primary metadata failed", "job_id", *primaryJobID, "err", err)
			writeError(w, "could not save metadata")
			return
		}
	case primaryJobID != nil && len(savedIDs) == 0:
		if err := a.linkMetadata(r.Context(), nil, database, primaryJobID); err != nil {
			slog.Error("submitapi: save primary metadata failed", "primary_id", *primaryJobID, "err", err)
			writeError(w, "could not save metadata")
			return
		}
	}

	resp := map[string]any{"job_id": savedIDs, "name": database}
	if primaryJobID != nil {
		resp["primary_id"] = *primaryJobID
	}
	writeJSON(w, http.StatusCreated, resp)
}

// linkMetadata inserts the (job_id, database, primary_id) link only if it
// is not already known.
func (a *API) linkMetadata(ctx context.Context, jobID *string, database string, primaryID *string) error {
	_, found, err := a.store.SearchMetadata(ctx, jobID, database, primaryID)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return a.store.SaveMetadata(ctx, []store.MetadataInput{
		{JobID: jobID, Name: database, PrimaryID: primaryID},
	})
}

// handleGetResults implements GET /api/results/{job_id}: the lookup is
// case-insensitive, and body sentences are ordered by location.
func (a *API) handleGetResults(w http.ResponseWriter, r *http.Request) {
	jobID := strings.ToLower(r.PathValue("job_id"))

	results, err := a.store.GetJobResults(r.Context(), jobID)
	if err != nil {
		slog.Error("submitapi: get job results failed", "job_id", jobID, "err", err)
		writeError(w, "could not fetch results")
		return
	}
	if results == nil {
		results = make([]model.JobResult, 0)
	}
	writeJSON(w, http.StatusOK, results)
}

// handleHitCount implements GET /api/hit_count.
func (a *API) handleHitCount(w http.ResponseWriter, r *http.Request) {
	rows, err := a.store.GetHitCountByURS(r.Context())
	if err != nil {
		slog.Error("submitapi: get hit count failed", "err", err)
		writeError(w, "could not fetch hit counts")
		return
	}
	if rows == nil {
		rows = make([]model.HitCountRow, 0)
	}
	writeJSON(w, http.StatusOK, rows)
}

func writeError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"Error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
