package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"candideit/auth"
	"candideit/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DummyImage stands in for an uploaded picture.
var DummyImage = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00dummy image\xff\xd9")

// NewTestDB returns a migrated in-memory database private to the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// transactions must never wait for a second connection
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, repository.AutoMigrate(db))
	require.NoError(t, repository.RegisterMetrics(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string, password string) *repository.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user, err := repository.NewUserRepository(db).CreateUser(&repository.User{
		Username:     username,
		Email:        username + "@example.net",
		PasswordHash: hash,
	})
	require.NoError(t, err)
	return user
}

func CreateElection(t *testing.T, db *gorm.DB, owner *repository.User, name string, slug string) *repository.Election {
	t.Helper()
	election, err := repository.NewElectionRepository(db).Create(&repository.Election{
		Name:    name,
		Slug:    slug,
		OwnerID: owner.ID,
	})
	require.NoError(t, err)
	election.Owner = owner
	return election
}

func CreateCandidate(t *testing.T, db *gorm.DB, election *repository.Election, name string) *repository.Candidate {
	t.Helper()
	candidate, err := repository.NewCandidateRepository(db).Create(&repository.Candidate{
		ElectionID: election.ID,
		Name:       name,
	})
	require.NoError(t, err)
	return candidate
}

func AuthCookie(t *testing.T, user *repository.User) *http.Cookie {
	t.Helper()
	token, err := auth.CreateToken(user)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func perform(r http.Handler, req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func PerformRequest(r http.Handler, method string, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	return perform(r, req, cookies)
}

func PerformForm(r http.Handler, method string, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return perform(r, req, cookies)
}

// PerformMultipart posts fields and files, files keyed by field name with
// the file name as the value.
func PerformMultipart(t *testing.T, r http.Handler, path string, fields map[string]string, files map[string]string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for field, filename := range files {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(DummyImage))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return perform(r, req, cookies)
}

func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// FileHeader builds the header of an uploaded DummyImage named filename.
func FileHeader(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()
	return FileHeaderWithContent(t, filename, DummyImage)
}

func FileHeaderWithContent(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}
