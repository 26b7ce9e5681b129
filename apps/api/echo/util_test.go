package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/agenda/core"
	"github.com/trezcool/agenda/core/session"
	inmemdb "github.com/trezcool/agenda/storage/database/inmem"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func testConfig() *core.Config {
	return &core.Config{
		Env:       "TEST",
		TestMode:  true,
		AppName:   "School Agenda",
		SecretKey: "test-secret",
		Server: core.ServerConfig{
			Address:            ":0",
			ShutdownTimeout:    time.Second,
			JWTExpirationDelta: time.Hour,
		},
	}
}

func setup(t *testing.T) (*Server, *session.Store) {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	auth, err := session.NewDemoAuthenticator(inmemdb.NewIdentityRepository(db))
	require.NoError(t, err)
	store := session.NewStore(auth, 0, nopLogger{})

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	srv := NewServer(ServerDeps{
		Conf:           testConfig(),
		Logger:         nopLogger{},
		Sessions:       store,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return srv, store
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	require.NoError(t, err, "json.Marshal()")
	return data
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, "status code")
	if tt.wantData == nil {
		assert.Empty(t, rec.Body.String())
		return
	}
	assert.JSONEq(t, string(tt.wantData), rec.Body.String())
}

func runHTTPTests(t *testing.T, srv *Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// login logs the handle in through the API and returns the session token.
func login(t *testing.T, srv *Server, h *session.Handle, name string) string {
	t.Helper()
	body := marshalObj(t, LoginRequest{SessionID: h.ID, Name: name, Password: session.DemoPassword})
	req, rec := newRequest(http.MethodPost, "/v1/session/login", body)
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}
