package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/tests"
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

// setup wires a fresh in-memory service stack behind a test server.
func setup(t *testing.T) (echoapi.Server, *testutil.Services) {
	t.Helper()

	svcs := testutil.NewServices(t)
	conf := *svcs.Conf
	conf.Debug = false // error payloads take their production shape

	app := echoapi.NewServer(
		&echoapi.Options{
			DisableReqLogs: true,
			Conf:           &conf,
			Logger:         testutil.NewLogger(),
			ClassSvc:       svcs.Class,
			CourseSvc:      svcs.Course,
			FileSvc:        svcs.File,
			ShareSvc:       svcs.Share,
		},
	)
	return app, svcs
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func jsonMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("jsonMarshal() failed: %v", err)
	}
	return data
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("%s %s code = %d, want %d; body %s", tt.method, tt.path, rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData != nil {
		if got := bytes.TrimSpace(rec.Body.Bytes()); !bytes.Equal(got, tt.wantData) {
			t.Errorf("%s %s body = %s, want %s", tt.method, tt.path, got, tt.wantData)
		}
	}
}
