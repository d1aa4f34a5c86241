package integration_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"ideahub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadFile отправляет multipart-форму с одним файлом
func uploadFile(t *testing.T, ts *helpers.TestServer, token, filename, contentType string, data []byte) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", ts.Server.URL+"/api/v1/uploads", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	defer res.Body.Close()

	return res, string(body)
}

// TestFileUploadAndServe - загрузка файла и отдача по handle
func TestFileUploadAndServe(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	token, _ := helpers.CreateAndLoginMember(t, ts)

	content := []byte("%PDF-1.4 fake pdf content")
	res, bodyStr := uploadFile(t, ts, token, "proof.pdf", "application/pdf", content)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var uploaded struct {
		Handle string `json:"handle"`
	}
	parseJSON(t, bodyStr, &uploaded)
	require.NotEmpty(t, uploaded.Handle)

	// Файл отдается по handle без авторизации
	getRes, getBody := ts.SendRequest(t, "GET", "/api/v1/files/"+uploaded.Handle, "", nil)
	assert.Equal(t, http.StatusOK, getRes.StatusCode)
	assert.Equal(t, string(content), getBody)
	assert.Equal(t, "application/pdf", getRes.Header.Get("Content-Type"))
}

// TestFileUpload_TypeRejected - недопустимый MIME-тип отклоняется
func TestFileUpload_TypeRejected(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	token, _ := helpers.CreateAndLoginMember(t, ts)

	res, bodyStr := uploadFile(t, ts, token, "script.sh", "application/x-sh", []byte("#!/bin/sh"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Ответ: "+bodyStr)
}

// TestFileUpload_RequiresAuth
func TestFileUpload_RequiresAuth(t *testing.T) {
	t.Parallel()

	ts := newServer(t)

	res, _ := uploadFile(t, ts, "", "proof.pdf", "application/pdf", []byte("data"))
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestFileServe_Missing - по несуществующему handle отдаем 404
func TestFileServe_Missing(t *testing.T) {
	t.Parallel()

	ts := newServer(t)

	res, _ := ts.SendRequest(t, "GET", "/api/v1/files/2020/01/nothing.pdf", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
