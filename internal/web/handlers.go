package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"stocktrack/internal/core"
	"stocktrack/internal/logging"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		respondError(w, r, fmt.Errorf("database unreachable: %w", err))
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.ListFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
	}

	products, err := s.service.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.service.Categories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in core.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, r, &core.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	product, err := s.service.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{"product": product})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var in core.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, r, &core.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	product, err := s.service.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"product": product})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.service.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	history, err := s.service.History(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"history": history})
}

// handleImport accepts a multipart upload under the "file" field. The upload
// is staged to a temp file so the multipart body is fully read and size
// checked before any row touches the store.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, &core.ImportError{Err: fmt.Errorf("missing file upload: %w", err)})
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp(s.cfg.Import.TempDir, "import-*.csv")
	if err != nil {
		respondError(w, r, fmt.Errorf("staging upload: %w", err))
		return
	}
	defer func() {
		tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil {
			logging.FromContext(r.Context()).Warn("removing staged upload",
				"path", tmp.Name(), "error", err)
		}
	}()

	if _, err := tmp.ReadFrom(file); err != nil {
		respondError(w, r, &core.ImportError{Err: fmt.Errorf("staging upload: %w", err)})
		return
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		respondError(w, r, fmt.Errorf("staging upload: %w", err))
		return
	}

	result, err := s.service.Import(r.Context(), tmp)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// handleExport renders the CSV into memory first so a storage fault can
// still produce a clean error response instead of a truncated download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.service.Export(r.Context(), &buf); err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Error("writing export", "error", err)
	}
}

// productID parses the {id} route parameter. A non-numeric id behaves like
// an unknown product.
func productID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &core.NotFoundError{ID: 0}
	}
	return id, nil
}
