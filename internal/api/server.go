package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"studyflow/internal/config"
	"studyflow/internal/logger"
	"studyflow/internal/models"
	"studyflow/internal/source"
	"studyflow/internal/util"
)

// Generator runs one study operation.
type Generator interface {
	Run(ctx context.Context, op models.Operation, src source.Source) (models.Result, error)
}

type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error)
}

type Server struct {
	cfg     config.Config
	gen     Generator
	history HistoryReader
	log     *logger.Logger
}

func NewServer(cfg config.Config, gen Generator, history HistoryReader, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{cfg: cfg, gen: gen, history: history, log: log}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/generate/", s.handleGenerate)
	mux.HandleFunc("/history", s.handleHistory)
	return withRequestID(withRequestLog(s.log, withCORS(s.cfg.AllowedOrigin, mux)))
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/generate/"), "/")
	op, err := models.ParseOperation(name)
	if err != nil {
		writeErr(w, http.StatusNotFound, fmt.Errorf("unknown operation %q", name))
		return
	}
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	src, err := s.readSource(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if src.Document != nil {
		s.log.Info("document received",
			"request_id", logger.RequestID(r.Context()),
			"filename", src.Document.Filename,
			"bytes", len(src.Document.Data),
			"sha256", util.ShortDigest(src.Document.Data),
		)
	}

	res, err := s.gen.Run(r.Context(), op, src)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// readSource accepts either a JSON body {"text": "..."} or a multipart form with a
// "text" field and/or a "file" upload.
func (s *Server) readSource(w http.ResponseWriter, r *http.Request) (source.Source, error) {
	maxBytes := s.cfg.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		return readMultipartSource(r, maxBytes)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return source.Source{}, fmt.Errorf("parse form: %w", err)
		}
		if vals, ok := r.PostForm["text"]; ok && len(vals) > 0 {
			return source.InlineText(vals[0]), nil
		}
		return source.Source{}, nil
	default:
		var req struct {
			Text *string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return source.Source{}, nil
			}
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return source.Source{}, err
			}
			return source.Source{}, fmt.Errorf("invalid json: %w", err)
		}
		if req.Text == nil {
			return source.Source{}, nil
		}
		return source.InlineText(*req.Text), nil
	}
}

// An empty "text" field next to a file is treated as absent: browser forms always send it.
func readMultipartSource(r *http.Request, maxBytes int64) (source.Source, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return source.Source{}, err
		}
		return source.Source{}, fmt.Errorf("parse multipart: %w", err)
	}
	var src source.Source
	if vals := r.MultipartForm.Value["text"]; len(vals) > 0 {
		src = source.InlineText(vals[0])
	}

	f, fh, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return src, nil
	case err != nil:
		return source.Source{}, fmt.Errorf("read upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return source.Source{}, fmt.Errorf("read upload: %w", err)
	}
	if src.HasText && strings.TrimSpace(src.Text) == "" {
		src = source.Source{}
	}
	src.Document = &source.Document{Filename: fh.Filename, Data: data}
	return src, nil
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	limit := s.cfg.HistoryLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}
	recs, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.log.Error("history read failed", "request_id", logger.RequestID(r.Context()), "error", err.Error())
		writeErr(w, http.StatusInternalServerError, fmt.Errorf("history read failed: %w", err))
		return
	}
	if recs == nil {
		recs = []models.HistoryRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"kind":    apiErr.Kind,
			"message": apiErr.Message,
		},
	})
}
