package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderdesk/notice-validator/internal/api"
	"github.com/lenderdesk/notice-validator/internal/common"
	"github.com/lenderdesk/notice-validator/internal/doctext"
	"github.com/lenderdesk/notice-validator/internal/export"
	"github.com/lenderdesk/notice-validator/internal/pipeline"
)

const noticeText = `INTEREST PAYMENT NOTICE

Principal Amount: $1,000,000.00
Interest Rate: 5.25%
Interest Period Start Date: 01/01/2024
Interest Period End Date: 03/31/2024
Interest Amount: $13,125.00
`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	router := api.NewRouter(
		nil,
		pipeline.NewPipeline(nil),
		doctext.NewDispatcher(common.DocTextConfig{PdftotextBin: "pdftotext"}),
		export.NewService(nil),
		10<<20,
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExtractEndpoint(t *testing.T) {
	srv := testServer(t)

	t.Run("text body", func(t *testing.T) {
		body, err := json.Marshal(map[string]string{"text": noticeText})
		require.NoError(t, err)

		resp, decoded := postJSON(t, srv.URL+"/api/v1/extract", string(body))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "1000000", decoded["principal_amount"])
		assert.Equal(t, "0.0525", decoded["interest_rate"])
	})

	t.Run("pages body", func(t *testing.T) {
		body, err := json.Marshal(map[string][]string{"pages": {noticeText}})
		require.NoError(t, err)

		resp, decoded := postJSON(t, srv.URL+"/api/v1/extract", string(body))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "13125", decoded["notice_interest_amount"])
	})

	t.Run("blank text rejected", func(t *testing.T) {
		resp, decoded := postJSON(t, srv.URL+"/api/v1/extract", `{"pages": ["", "  "]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, decoded["error"], "no text")
	})

	t.Run("malformed json rejected", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/api/v1/extract", `{"text": `)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestValidateEndpoint(t *testing.T) {
	srv := testServer(t)

	t.Run("incomplete record reports findings", func(t *testing.T) {
		resp, decoded := postJSON(t, srv.URL+"/api/v1/validate", `{"principal_amount": "1000000"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, false, decoded["is_valid"])
		assert.NotEmpty(t, decoded["errors"])
	})

	t.Run("complete record passes", func(t *testing.T) {
		resp, decoded := postJSON(t, srv.URL+"/api/v1/validate", `{
			"principal_amount": "1000000",
			"interest_rate": "0.0525",
			"start_date": "2024-01-01",
			"end_date": "2024-04-01",
			"notice_interest_amount": "13270.83"
		}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, decoded["is_valid"])
	})

	t.Run("bad decimal rejected", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/api/v1/validate", `{"principal_amount": "one million"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCalculateEndpoint(t *testing.T) {
	srv := testServer(t)

	t.Run("computes interest with details", func(t *testing.T) {
		resp, decoded := postJSON(t, srv.URL+"/api/v1/calculate", `{
			"principal": "1000000",
			"rate": "0.0525",
			"start_date": "2024-01-01",
			"end_date": "2024-03-31"
		}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "13125", decoded["expected_interest"])
		assert.Equal(t, float64(90), decoded["days_calculated"])
	})

	t.Run("schema rejects missing field", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/api/v1/calculate", `{
			"principal": "1000000",
			"start_date": "2024-01-01",
			"end_date": "2024-03-31"
		}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("schema rejects malformed date", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/api/v1/calculate", `{
			"principal": "1000000",
			"rate": "0.0525",
			"start_date": "01/01/2024",
			"end_date": "2024-03-31"
		}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("inverted range is unprocessable", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/api/v1/calculate", `{
			"principal": "1000000",
			"rate": "0.0525",
			"start_date": "2024-03-31",
			"end_date": "2024-01-01"
		}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestReconcileEndpoint(t *testing.T) {
	srv := testServer(t)

	t.Run("failing notice", func(t *testing.T) {
		resp, decoded := postJSON(t, srv.URL+"/api/v1/reconcile", `{
			"record": {
				"principal_amount": "1000000",
				"interest_rate": "0.0525",
				"start_date": "2024-01-01",
				"end_date": "2024-03-31",
				"notice_interest_amount": "15000"
			},
			"calculation": {"expected_interest": "13125", "days_calculated": 90}
		}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		verdict, ok := decoded["verdict"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "FAIL", verdict["status"])
		assert.NotEmpty(t, decoded["recommendations"])
		assert.Contains(t, decoded["summary"], "VALIDATION FAILED")
	})

	t.Run("missing notice amount is unprocessable", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/api/v1/reconcile", `{
			"record": {
				"principal_amount": "1000000",
				"interest_rate": "0.0525",
				"start_date": "2024-01-01",
				"end_date": "2024-03-31"
			},
			"calculation": {"expected_interest": "13125"}
		}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("schema rejects missing calculation", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/api/v1/reconcile", `{
			"record": {"principal_amount": "1000000"}
		}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func uploadNotice(t *testing.T, url, filename, contents string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, contents)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestValidateNoticeUpload(t *testing.T) {
	srv := testServer(t)

	t.Run("full pipeline over txt upload", func(t *testing.T) {
		resp := uploadNotice(t, srv.URL+"/api/v1/notices/validate", "notice.txt", noticeText)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var run map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
		verdict, ok := run["verdict"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "PASS", verdict["status"])
	})

	t.Run("xlsx format streams a workbook", func(t *testing.T) {
		resp := uploadNotice(t, srv.URL+"/api/v1/notices/validate?format=xlsx", "notice.txt", noticeText)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotEmpty(t, body)
	})

	t.Run("unsupported extension rejected", func(t *testing.T) {
		resp := uploadNotice(t, srv.URL+"/api/v1/notices/validate", "notice.docx", noticeText)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing file field rejected", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("name", "value"))
		require.NoError(t, mw.Close())

		resp, err := http.Post(srv.URL+"/api/v1/notices/validate", mw.FormDataContentType(), &buf)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
