package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealdesk/dealdesk/internal/auth"
	"github.com/dealdesk/dealdesk/internal/config"
	"github.com/dealdesk/dealdesk/internal/database"
	"github.com/dealdesk/dealdesk/internal/database/emails"
	"github.com/dealdesk/dealdesk/internal/database/imports"
	"github.com/dealdesk/dealdesk/internal/database/templates"
	"github.com/dealdesk/dealdesk/internal/entities"
	"github.com/dealdesk/dealdesk/internal/importer"
)

const testExport = `<taskTemplates>
  <template>
    <name>Buyer Side</name>
    <type>BUYER</type>
    <tasks>
      <task>
        <subject>Order inspection</subject>
        <dueDateAdjust active="Y" days="-3" from="CLOSING_DATE"/>
        <sortOrder>1</sortOrder>
      </task>
    </tasks>
  </template>
</taskTemplates>`

type testEnv struct {
	router      *gin.Engine
	db          *database.Database
	authService *auth.Service
	imports     *imports.Repository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_" + t.Name() + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	templateStore := templates.NewRepository(db.DB)
	emailStore := emails.NewRepository(db.DB)
	importStore := imports.NewRepository(db.DB)
	pipeline := importer.NewPipeline(templateStore, emailStore, importStore, nil)

	authService := auth.NewService(db.DB, config.Auth{
		TokenExpiry: time.Hour,
		BcryptCost:  bcrypt.MinCost,
	})

	router := NewRouter(RouterConfig{
		Database:      db,
		AuthService:   authService,
		Pipeline:      pipeline,
		ImportStore:   importStore,
		TemplateStore: templateStore,
		Version:       "test",
	})

	return &testEnv{
		router:      router,
		db:          db,
		authService: authService,
		imports:     importStore,
	}
}

// tokenFor creates a user with the given role and returns a valid API token.
func (env *testEnv) tokenFor(t *testing.T, username string, role entities.UserRole) string {
	t.Helper()
	user, err := env.authService.CreateUser(username, username+"@example.com", "pw-long-enough", role)
	require.NoError(t, err)
	token, err := env.authService.GenerateToken(user.ID)
	require.NoError(t, err)
	return token
}

func (env *testEnv) postImport(token, body string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(TemplateImportRequest{
		Filename: "export.xml",
		Document: body,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/imports/templates", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestImportRequiresAuthentication(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postImport("", testExport)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The request never reached the pipeline: no import record exists.
	_, total, err := env.imports.List(10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestImportRejectsNonCoordinators(t *testing.T) {
	env := setupTestEnv(t)
	token := env.tokenFor(t, "agent1", entities.UserRoleAgent)

	w := env.postImport(token, testExport)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Rejected before parsing: no import record, no templates.
	_, total, err := env.imports.List(10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	var count int64
	env.db.DB.Model(&entities.WorkflowTemplate{}).Count(&count)
	assert.Zero(t, count)
}

func TestImportAllowsCoordinator(t *testing.T) {
	env := setupTestEnv(t)
	token := env.tokenFor(t, "coord1", entities.UserRoleCoordinator)

	w := env.postImport(token, testExport)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TemplateImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.TemplatesImported)
	assert.Equal(t, 1, resp.TasksImported)
	assert.Equal(t, 0, resp.EmailsImported)
	assert.NotZero(t, resp.ImportID)

	record, err := env.imports.Get(resp.ImportID)
	require.NoError(t, err)
	assert.Equal(t, entities.ImportStatusCompleted, record.Status)
}

func TestImportAllowsAdmin(t *testing.T) {
	env := setupTestEnv(t)
	token := env.tokenFor(t, "admin1", entities.UserRoleAdmin)

	w := env.postImport(token, testExport)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestImportEmptyDocumentFailsRun(t *testing.T) {
	env := setupTestEnv(t)
	token := env.tokenFor(t, "coord2", entities.UserRoleCoordinator)

	w := env.postImport(token, `<taskTemplates></taskTemplates>`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp TemplateImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "no template definitions")

	// The failed run is still recorded for the audit trail.
	record, err := env.imports.Get(resp.ImportID)
	require.NoError(t, err)
	assert.Equal(t, entities.ImportStatusFailed, record.Status)
}

func TestImportMissingDocument(t *testing.T) {
	env := setupTestEnv(t)
	token := env.tokenFor(t, "coord3", entities.UserRoleCoordinator)

	w := env.postImport(token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportMultipartUpload(t *testing.T) {
	env := setupTestEnv(t)
	token := env.tokenFor(t, "coord4", entities.UserRoleCoordinator)

	var buf bytes.Buffer
	mw := newMultipartFile(t, &buf, "file", "export.xml", testExport)

	req := httptest.NewRequest(http.MethodPost, "/api/imports/templates", &buf)
	req.Header.Set("Content-Type", mw)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TemplateImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.TemplatesImported)
}

func TestImportInvalidToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postImport("bogus-token", testExport)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
