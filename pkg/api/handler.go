package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"transcript-processor/pkg/models"
	"transcript-processor/pkg/pipeline"
	"transcript-processor/pkg/storage"
	"transcript-processor/pkg/transcript"
)

type Handlers struct {
	pipeline *pipeline.Manager
	store    storage.MemoryStore
	disk     storage.DiskStore
	logger   *logrus.Logger
	hub      *Hub
}

func NewHandlers(p *pipeline.Manager, store storage.MemoryStore, disk storage.DiskStore, logger *logrus.Logger) *Handlers {
	h := &Handlers{
		pipeline: p,
		store:    store,
		disk:     disk,
		logger:   logger,
		hub:      NewHub(logger),
	}
	p.SetNotifier(h.hub.Broadcast)
	return h
}

// Register wires all routes onto the router.
func (h *Handlers) Register(router *mux.Router) {
	router.HandleFunc("/analyze", h.AnalyzeHandler).Methods("POST")
	router.HandleFunc("/batches", h.SubmitBatchHandler).Methods("POST")
	router.HandleFunc("/batches/{id}", h.GetBatchHandler).Methods("GET")
	router.HandleFunc("/records/{filename}", h.GetRecordHandler).Methods("GET")
	router.HandleFunc("/participants/{id}/records", h.GetParticipantRecordsHandler).Methods("GET")
	router.HandleFunc("/ws", h.WebSocketHandler)
	router.HandleFunc("/health", h.HealthHandler).Methods("GET")
}

// AnalyzeHandler processes a single transcript synchronously. Accepts a
// multipart "file" upload or a form "text" field, plus a filename.
func (h *Handlers) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	text, filename, err := readDocument(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc := models.NewTranscriptDocument(filename, text)
	record, err := h.pipeline.AnalyzeSync(doc)
	if err != nil {
		if errors.Is(err, transcript.ErrParticipantNotFound) || errors.Is(err, transcript.ErrEmptyDocument) {
			writeJSON(w, http.StatusUnprocessableEntity, models.FileResult{
				Filename: filename,
				Status:   models.FileFailed,
				Reason:   err.Error(),
			})
			return
		}
		h.logger.WithField("filename", filename).WithError(err).Error("Analysis failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

type batchRequest struct {
	Documents []struct {
		Filename string `json:"filename"`
		Text     string `json:"text"`
	} `json:"documents"`
}

// SubmitBatchHandler enqueues a multi-file run and returns its batch id.
func (h *Handlers) SubmitBatchHandler(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(req.Documents) == 0 {
		http.Error(w, "documents is empty", http.StatusBadRequest)
		return
	}

	docs := make([]*models.TranscriptDocument, 0, len(req.Documents))
	for _, d := range req.Documents {
		if d.Filename == "" {
			http.Error(w, "every document needs a filename", http.StatusBadRequest)
			return
		}
		docs = append(docs, models.NewTranscriptDocument(d.Filename, d.Text))
	}

	batchID, err := h.pipeline.SubmitBatch(docs)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to submit batch: %v", err), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"batch_id":  batchID,
		"submitted": len(docs),
	})
}

func (h *Handlers) GetBatchHandler(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["id"]

	summary, err := h.pipeline.GetBatch(batchID)
	if err != nil {
		http.Error(w, "Batch not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *Handlers) GetRecordHandler(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	record, err := h.store.GetRecord(filename)
	if err == storage.ErrRecordNotFound && h.disk != nil {
		record, err = h.disk.GetRecord(filename)
	}
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) GetParticipantRecordsHandler(w http.ResponseWriter, r *http.Request) {
	patientID := strings.ToUpper(mux.Vars(r)["id"])

	records, err := h.store.ListByParticipant(patientID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if len(records) > limit {
		records = records[:limit]
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"patient_id": patientID,
		"records":    records,
		"count":      len(records),
	})
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"records": h.store.Count(),
	})
}

// readDocument pulls transcript text and filename out of the request: a
// multipart file upload, or form fields "text" and "filename".
func readDocument(r *http.Request) (text, filename string, err error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil && err != http.ErrNotMultipart {
		return "", "", fmt.Errorf("invalid form data")
	}

	filename = r.FormValue("filename")

	if file, header, fErr := r.FormFile("file"); fErr == nil {
		defer file.Close()
		data, rErr := io.ReadAll(file)
		if rErr != nil {
			return "", "", fmt.Errorf("failed to read uploaded file")
		}
		if filename == "" {
			filename = header.Filename
		}
		return string(data), filename, nil
	}

	text = r.FormValue("text")
	if filename == "" {
		return "", "", fmt.Errorf("filename is required")
	}
	return text, filename, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
