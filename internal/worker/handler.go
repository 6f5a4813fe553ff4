package worker

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type submitJobRequest struct {
	JobID string `json:"job_id"`
}

// Handler returns the http.Handler for POST /submit-job. Malformed bodies
// return 400; otherwise 201 is returned immediately once the busy/started
// transitions are persisted.
func (w *Worker) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /submit-job", w.handleSubmitJob)
	return mux
}

func (w *Worker) handleSubmitJob(rw http.ResponseWriter, r *http.Request) {
	var req submitJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.JobID == "" {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"Error": "job_id is required"})
		return
	}

	if err := w.SubmitJob(r.Context(), req.JobID); err != nil {
		slog.Error("worker: submit job failed", "job_id", req.JobID, "err", err)
		writeJSON(rw, http.StatusBadRequest, map[string]string{"Error": "could not accept job"})
		return
	}

	writeJSON(rw, http.StatusCreated, map[string]string{"job_id": req.JobID})
}

func writeJSON(rw http.ResponseWriter, status int, body any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(body)
}
