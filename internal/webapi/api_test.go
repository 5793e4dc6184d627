package webapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atelier-mireille/backend/config"
	"github.com/atelier-mireille/backend/internal/app"
	"github.com/atelier-mireille/backend/internal/domain"
	"github.com/atelier-mireille/backend/internal/notify"
	"github.com/atelier-mireille/backend/internal/store"
	"github.com/atelier-mireille/backend/internal/uploads"
	"github.com/atelier-mireille/backend/internal/webserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app       *app.Application
	store     *store.Store
	uploadDir string
}

// setupAPI wires the full HTTP surface against an in-memory database and
// an unreachable notification channel.
func setupAPI(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	uploadDir := filepath.Join(t.TempDir(), "uploads")
	cfg := *config.DefaultAppConfig
	cfg.Web.UploadDir = uploadDir

	application := app.NewApplication(&cfg)
	application.OverrideDB(db)

	// notification channel simulated as unreachable: creation must still
	// succeed and report nothing about delivery
	deadSrv := httptest.NewServer(http.NotFoundHandler())
	deadURL := deadSrv.URL
	deadSrv.Close()
	channel := notify.NewTelegramChannel(config.NotifyConfig{
		BotToken:   "123:abc",
		ChatID:     "42",
		APIBaseURL: deadURL,
		Timeout:    1,
	})

	st := store.New(db, "")
	webserver.Init(application)
	Register(&Env{
		Store:    st,
		Uploads:  uploads.NewStore(uploadDir),
		Notifier: notify.NewDispatcher(channel, application, true),
	})

	return &testEnv{app: application, store: st, uploadDir: uploadDir}
}

func doJSON(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	webserver.Instance().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCreateProductMissingFields(t *testing.T) {
	setupAPI(t)

	rec := doJSON(t, http.MethodPost, "/products", map[string]interface{}{
		"name": "Solitaire ring", "images": []string{"ring.jpg"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "price")

	rec = doJSON(t, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestProductLifecycle(t *testing.T) {
	setupAPI(t)

	// price may arrive as a bare number or a string
	rec := doJSON(t, http.MethodPost, "/products", map[string]interface{}{
		"name": "Solitaire ring", "price": 1250,
		"images": []string{"a.jpg", "b.jpg"}, "category": "rings",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)
	id := int64(created["id"].(float64))
	assert.Equal(t, "1250", created["price"])

	rec = doJSON(t, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, []interface{}{"a.jpg", "b.jpg"}, list[0]["images"])

	rec = doJSON(t, http.MethodPut, fmt.Sprintf("/products/%d", id), map[string]interface{}{
		"name": "Solitaire ring", "price": "1490", "images": []string{"a.jpg"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "1490", decodeBody(t, rec)["price"])

	rec = doJSON(t, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUnknownProduct(t *testing.T) {
	setupAPI(t)
	rec := doJSON(t, http.MethodPut, "/products/999", map[string]interface{}{
		"name": "X", "price": "1", "images": []string{},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type filePart struct {
	field string
	name  string
	ctype string
	data  []byte
}

func multipartRequest(t *testing.T, path string, fields map[string]string, files []filePart) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, fp := range files {
		h := map[string][]string{
			"Content-Disposition": {fmt.Sprintf(`form-data; name=%q; filename=%q`, fp.field, fp.name)},
			"Content-Type":        {fp.ctype},
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(fp.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	webserver.Instance().ServeHTTP(rec, req)
	return rec
}

func orderFields() map[string]string {
	return map[string]string{
		"name":        "Camille",
		"email":       "camille@example.com",
		"projectType": "engagement ring",
		"description": "white gold, solitaire",
	}
}

func TestCreateOrderSucceedsDespiteUnreachableNotifier(t *testing.T) {
	te := setupAPI(t)

	rec := multipartRequest(t, "/custom-orders", orderFields(), []filePart{
		{"images", "inspiration.jpg", "image/jpeg", []byte("jpeg-bytes")},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.NotZero(t, body["id"])
	_, hasErr := body["error"]
	assert.False(t, hasErr, "notification outcome must not surface")

	rows, err := te.store.ListOrders(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].ImageList, 1)
	// resolved to a bare filename under the deployment rule
	assert.False(t, strings.Contains(rows[0].ImageList[0], string(os.PathSeparator)))
}

func TestCreateOrderMissingRequiredField(t *testing.T) {
	setupAPI(t)
	fields := orderFields()
	delete(fields, "email")
	rec := multipartRequest(t, "/custom-orders", fields, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderOversizedImageRejectsWholeSubmission(t *testing.T) {
	te := setupAPI(t)

	files := []filePart{
		{"images", "a.jpg", "image/jpeg", []byte("ok")},
		{"images", "b.jpg", "image/jpeg", []byte("ok")},
		{"images", "c.jpg", "image/jpeg", []byte("ok")},
		{"images", "huge.jpg", "image/jpeg", bytes.Repeat([]byte("a"), int(uploads.MaxFileSize)+1)},
	}
	rec := multipartRequest(t, "/custom-orders", orderFields(), files)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// no order row was created
	rows, err := te.store.ListOrders(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.NoError(t, err)
	assert.Empty(t, rows)

	// accepted siblings were rolled back
	entries, err := os.ReadDir(te.uploadDir)
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestCreateOrderRejectsNonImage(t *testing.T) {
	setupAPI(t)
	rec := multipartRequest(t, "/custom-orders", orderFields(), []filePart{
		{"images", "notes.txt", "text/plain", []byte("hello")},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", decodeBody(t, rec)["code"])
}

func TestContactFlow(t *testing.T) {
	setupAPI(t)

	rec := multipartRequest(t, "/contact", map[string]string{
		"prenom": "Anne", "nom": "Martin", "description": "resize a ring",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = multipartRequest(t, "/contact", map[string]string{
		"prenom": "Anne", "nom": "Martin", "telephone": "0601020304",
		"description": "resize a ring",
	}, []filePart{{"image", "ring.jpg", "image/jpeg", []byte("jpeg")}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := int64(decodeBody(t, rec)["id"].(float64))

	rec = doJSON(t, http.MethodGet, "/contact-requests", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = doJSON(t, http.MethodDelete, fmt.Sprintf("/contact-requests/%d", id), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, http.MethodDelete, fmt.Sprintf("/contact-requests/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	setupAPI(t)
	rec := doJSON(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
