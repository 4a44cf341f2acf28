// pkg/server/upload.go
package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/zhaowt/limitup-export/pkg/excel"
	"github.com/zhaowt/limitup-export/pkg/model"
	"github.com/zhaowt/limitup-export/pkg/normalize"
)

// handleUpload accepts a multipart xlsx upload in the excelFile field, runs
// the pipeline and returns a JSON preview of the result. The optional
// maxConstraint form field overrides the configured page budget.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "multipart parse error: "+err.Error())
		return
	}

	file, header, err := r.FormFile("excelFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, "excelFile field is required")
		return
	}
	defer file.Close()

	maxConstraint := s.cfg.MaxConstraint
	if raw := r.FormValue("maxConstraint"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("maxConstraint must be a positive integer, got %q", raw))
			return
		}
		maxConstraint = parsed
	}

	// The upload is spooled to disk and removed on both success and failure
	// paths via the deferred cleanup.
	tmpPath, err := saveTempUpload(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save upload: "+err.Error())
		return
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			s.logger.Warn("Failed to remove temp upload", zap.String("path", tmpPath), zap.Error(err))
		}
	}()

	tmpFile, err := os.Open(tmpPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reopen upload: "+err.Error())
		return
	}
	defer tmpFile.Close()

	rows, columns, err := excel.ReadSheet(tmpFile)
	if err != nil {
		// A workbook we cannot decode is an unexpected failure, not a
		// caller error; only a missing file or unresolved columns are 400s.
		s.logger.Error("Failed to parse workbook", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to parse workbook: "+err.Error())
		return
	}

	result, err := s.processor.Process(rows, columns, maxConstraint)
	if err != nil {
		var missing *normalize.MissingColumnError
		if errors.As(err, &missing) {
			writeError(w, http.StatusBadRequest, missing.Error())
			return
		}
		s.logger.Error("Pipeline failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "processing failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, previewResult(result, s.cfg.PreviewRows))
}

// previewResult caps every page's Data at previewRows rows for the JSON
// response. Page record counts still reflect the full page.
func previewResult(result *model.ProcessResult, previewRows int) *model.ProcessResult {
	if previewRows <= 0 {
		return result
	}

	preview := *result
	preview.Pages = make([]model.Page, len(result.Pages))
	for i, page := range result.Pages {
		if len(page.Data) > previewRows {
			page.Data = page.Data[:previewRows]
		}
		preview.Pages[i] = page
	}
	return &preview
}

// saveTempUpload spools the multipart file to a temp path and returns it.
func saveTempUpload(file io.Reader, filename string) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return tmp.Name(), nil
}
