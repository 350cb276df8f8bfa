package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/trezcool/darasa/core/class"
	"github.com/trezcool/darasa/core/file"
	"github.com/trezcool/darasa/core/share"
	emailsvc "github.com/trezcool/darasa/services/email"
	"github.com/trezcool/darasa/tests"
)

func seedSharedClass(t *testing.T, svcs *testutil.Services) (class.Class, file.File) {
	t.Helper()

	crs := testutil.CreateCourse(t, svcs.Course, "English A2", "")
	f := testutil.CreateFile(t, svcs.File, "board.png", []byte("png bytes"))
	cls, err := svcs.Class.Create(class.NewClass{
		Date:     "2026-02-03",
		CourseID: crs.ID,
		Activities: []class.NewActivity{
			{Type: class.TypeVocabulary, Text: "weather words", Files: []file.Ref{f.Ref()}},
		},
		Homework: "study page 12",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return cls, f
}

func Test_shareApi_url(t *testing.T) {
	app, svcs := setup(t)
	cls, _ := seedSharedClass(t, svcs)

	req, rec := newRequest(http.MethodGet, "/v1/classes/"+cls.ID+"/share/url")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.Contains(resp.URL, "?share=") {
		t.Errorf("unexpected share url %q", resp.URL)
	}

	req, rec = newRequest(http.MethodGet, "/v1/classes/class_nope/share/url")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{method: "GET", path: "/v1/classes/class_nope/share/url", wantCode: http.StatusNotFound}, rec)
}

func Test_shareApi_jsonAndText(t *testing.T) {
	app, svcs := setup(t)
	cls, f := seedSharedClass(t, svcs)

	req, rec := newRequest(http.MethodGet, "/v1/classes/"+cls.ID+"/share/json")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
	}
	var p share.Portable
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decoding portable: %v", err)
	}
	if p.Class.ID != cls.ID || p.Files[f.ID].Data != f.Data {
		t.Errorf("unexpected portable %+v", p)
	}

	req, rec = newRequest(http.MethodGet, "/v1/classes/"+cls.ID+"/share/text")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
	}
	text := rec.Body.String()
	for _, want := range []string{"CLASS PLAN - 2026-02-03", "1. [VOCABULARY] weather words", "HOMEWORK:"} {
		if !strings.Contains(text, want) {
			t.Errorf("plain text missing %q:\n%s", want, text)
		}
	}
}

func Test_shareApi_importShared(t *testing.T) {
	senderSvcs := testutil.NewServices(t)
	cls, f := seedSharedClass(t, senderSvcs)

	p, err := senderSvcs.Share.Export(cls.ID)
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	param, err := senderSvcs.Share.EncodeParam(p)
	if err != nil {
		t.Fatalf("EncodeParam() failed: %v", err)
	}

	app, svcs := setup(t) // receiving side
	req, rec := newRequest(http.MethodPost, "/v1/import/share", []byte(param))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
	}
	var imported class.Class
	if err := json.Unmarshal(rec.Body.Bytes(), &imported); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if imported.ID == cls.ID {
		t.Error("import kept the sender's class id")
	}
	if _, err := svcs.File.Get(f.ID); err != nil {
		t.Errorf("imported blob missing: %v", err)
	}

	// garbage payloads are client errors
	req, rec = newRequest(http.MethodPost, "/v1/import/share", []byte("%%% not base64 %%%"))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{method: "POST", path: "/v1/import/share", wantCode: http.StatusBadRequest}, rec)

	req, rec = newRequest(http.MethodPost, "/v1/import/share", []byte(param[:len(param)/3]))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{method: "POST", path: "/v1/import/share", wantCode: http.StatusBadRequest}, rec)
}

func Test_shareApi_email(t *testing.T) {
	app, svcs := setup(t)
	cls, _ := seedSharedClass(t, svcs)

	tests := []httpTest{
		{name: "ok", body: []byte(`{"to":["colleague@test.cd"]}`), wantCode: http.StatusAccepted},
		{
			name:     "no recipients",
			body:     []byte(`{"to":[]}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad address",
			body:     []byte(`{"to":["lol"]}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sent := len(emailsvc.SentMessages)
			tt.method, tt.path = http.MethodPost, "/v1/classes/"+cls.ID+"/share/email"
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusAccepted && len(emailsvc.SentMessages) != sent+1 {
				t.Errorf("want 1 sent message, got %d", len(emailsvc.SentMessages)-sent)
			}
		})
	}
}

func Test_shareApi_backup(t *testing.T) {
	app, svcs := setup(t)
	cls, f := seedSharedClass(t, svcs)

	req, rec := newRequest(http.MethodGet, "/v1/backup")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
	}
	doc := rec.Body.Bytes()
	var b share.Backup
	if err := json.Unmarshal(doc, &b); err != nil {
		t.Fatalf("decoding backup: %v", err)
	}
	if b.Version != "1.0" || len(b.Classes) != 1 {
		t.Fatalf("unexpected backup %+v", b)
	}

	// restore into a fresh store
	app2, svcs2 := setup(t)
	req, rec = newRequest(http.MethodPost, "/v1/backup", doc)
	app2.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		method:   "POST",
		path:     "/v1/backup",
		wantCode: http.StatusOK,
		wantData: jsonMarshal(t, map[string]int{"classes": 1, "courses": 1, "files": 1}),
	}, rec)

	restored, err := svcs2.Class.Get(cls.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if restored.Date != cls.Date {
		t.Errorf("restored date = %s, want %s", restored.Date, cls.Date)
	}
	if _, err := svcs2.File.Get(f.ID); err != nil {
		t.Errorf("restored blob missing: %v", err)
	}

	req, rec = newRequest(http.MethodPost, "/v1/backup", []byte("{oops"))
	app2.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{method: "POST", path: "/v1/backup", wantCode: http.StatusBadRequest}, rec)
}
