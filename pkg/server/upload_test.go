package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zhaowt/limitup-export/pkg/config"
	"github.com/zhaowt/limitup-export/pkg/excel"
	"github.com/zhaowt/limitup-export/pkg/model"
	"github.com/zhaowt/limitup-export/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Port:           8080,
		MaxUploadBytes: 32 << 20,
		MaxConstraint:  33,
		PreviewRows:    5,
		SheetName:      "Sheet1",
		LogLevel:       "info",
		LogFormat:      "json",
	}

	processor, err := pipeline.NewProcessor(zap.NewNop())
	require.NoError(t, err)

	srv, err := New(cfg, zap.NewNop(), processor)
	require.NoError(t, err)
	return srv
}

// buildWorkbook encodes rows into an xlsx payload for upload tests.
func buildWorkbook(t *testing.T, columns []string, rows []model.Row) []byte {
	t.Helper()
	data, err := excel.WriteSheet("Sheet1", columns, rows)
	require.NoError(t, err)
	return data
}

// multipartBody builds a multipart request body carrying the workbook in
// the excelFile field plus any extra form fields.
func multipartBody(t *testing.T, workbook []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if workbook != nil {
		part, err := w.CreateFormFile("excelFile", "limitup.xlsx")
		require.NoError(t, err)
		_, err = part.Write(workbook)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func limitupColumns() []string {
	return []string{"代码", "最终涨停时间", "连续涨停天数(天)", "涨停原因", "涨停原因类别"}
}

func limitupRow(code, timeStr, days, reason, category string) model.Row {
	return model.Row{
		"代码":        code,
		"最终涨停时间":    timeStr,
		"连续涨停天数(天)": days,
		"涨停原因":      reason,
		"涨停原因类别":    category,
	}
}

func TestHandleUpload(t *testing.T) {
	t.Run("valid upload returns preview", func(t *testing.T) {
		srv := newTestServer(t)
		workbook := buildWorkbook(t, limitupColumns(), []model.Row{
			limitupRow("600000", "09:30", "2", "AI", "算力+芯片"),
			limitupRow("600001", "09:25", "5", "重组", "并购"),
		})
		body, contentType := multipartBody(t, workbook, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		srv.handleUpload(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var result model.ProcessResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, 2, result.RecordCount)
		assert.Equal(t, 33, result.MaxConstraint)
		require.Len(t, result.Pages, 1)
		// 5-day streak sorts first.
		assert.Equal(t, "600001", result.Pages[0].Data[0].String("代码"))
	})

	t.Run("maxConstraint form field honored", func(t *testing.T) {
		srv := newTestServer(t)
		workbook := buildWorkbook(t, limitupColumns(), []model.Row{
			limitupRow("600000", "09:30", "1", "AI", "x"),
			limitupRow("600001", "09:31", "1", "AI", "x"),
			limitupRow("600002", "09:32", "1", "AI", "x"),
		})
		body, contentType := multipartBody(t, workbook, map[string]string{"maxConstraint": "3"})

		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		srv.handleUpload(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var result model.ProcessResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, 3, result.MaxConstraint)
		// 2*1 + 1 = 3 per page: one row each.
		assert.Len(t, result.Pages, 3)
	})

	t.Run("missing file is a 400", func(t *testing.T) {
		srv := newTestServer(t)
		body, contentType := multipartBody(t, nil, map[string]string{"maxConstraint": "10"})

		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		srv.handleUpload(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "excelFile")
	})

	t.Run("unresolvable columns are a 400", func(t *testing.T) {
		srv := newTestServer(t)
		workbook := buildWorkbook(t, []string{"代码", "名称"}, []model.Row{
			{"代码": "600000", "名称": "浦发银行"},
		})
		body, contentType := multipartBody(t, workbook, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		srv.handleUpload(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed maxConstraint is a 400", func(t *testing.T) {
		srv := newTestServer(t)
		workbook := buildWorkbook(t, limitupColumns(), []model.Row{
			limitupRow("600000", "09:30", "1", "AI", "x"),
		})
		body, contentType := multipartBody(t, workbook, map[string]string{"maxConstraint": "zero"})

		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		srv.handleUpload(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("corrupt workbook is a 500", func(t *testing.T) {
		srv := newTestServer(t)
		body, contentType := multipartBody(t, []byte("definitely not a zip archive"), nil)

		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		srv.handleUpload(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "failed to parse workbook")
	})

	t.Run("GET is rejected", func(t *testing.T) {
		srv := newTestServer(t)
		req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
		rec := httptest.NewRecorder()

		srv.handleUpload(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	srv.handleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestPreviewResult(t *testing.T) {
	rows := make([]model.Row, 8)
	for i := range rows {
		rows[i] = model.Row{"代码": "x"}
	}
	result := &model.ProcessResult{
		RecordCount: 8,
		Pages:       []model.Page{{PageNumber: 1, RecordCount: 8, Data: rows}},
	}

	preview := previewResult(result, 5)

	require.Len(t, preview.Pages, 1)
	assert.Len(t, preview.Pages[0].Data, 5)
	// Full counts are preserved alongside the truncated preview.
	assert.Equal(t, 8, preview.Pages[0].RecordCount)
	assert.Len(t, result.Pages[0].Data, 8)
}
