package share_test

import (
	"encoding/base64"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/class"
	"github.com/trezcool/darasa/core/file"
	"github.com/trezcool/darasa/core/share"
	emailsvc "github.com/trezcool/darasa/services/email"
	"github.com/trezcool/darasa/tests"
)

// seedClass creates a class carrying an activity file, a link and a homework
// block, returning it with its file.
func seedClass(t *testing.T, svcs *testutil.Services) (class.Class, file.File) {
	t.Helper()

	crs := testutil.CreateCourse(t, svcs.Course, "English A2", "")
	f := testutil.CreateFile(t, svcs.File, "board.png", []byte("png bytes"))
	c, err := svcs.Class.Create(class.NewClass{
		Date:     "2026-02-03",
		CourseID: crs.ID,
		Activities: []class.NewActivity{
			{Type: class.TypeVocabulary, Text: "Météo: ça caille ❄️", Files: []file.Ref{f.Ref()}},
			{Type: class.TypeGame, Text: "bingo", Links: []class.Link{{Name: "rules", URL: "https://example.com/bingo"}}},
		},
		Homework: "réviser les unités 1–3",
	})
	require.NoError(t, err)
	return c, f
}

func Test_Service_Export(t *testing.T) {
	svcs := testutil.NewServices(t)
	c, f := seedClass(t, svcs)

	p, err := svcs.Share.Export(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, p.Class.ID)
	assert.Equal(t, c.Date, p.Date)
	assert.False(t, p.ShareDate.IsZero())
	require.Contains(t, p.Files, f.ID)
	assert.Equal(t, f.Data, p.Files[f.ID].Data)

	// the portable form shares no state with the registry's record
	p.Class.Activities[0].Text = "tampered"
	stored, err := svcs.Class.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Météo: ça caille ❄️", stored.Activities[0].Text)

	_, err = svcs.Share.Export("class_unknown")
	assert.Equal(t, class.ErrNotFound, err)
}

func Test_Service_Export_skipsDanglingRefs(t *testing.T) {
	svcs := testutil.NewServices(t)
	c, f := seedClass(t, svcs)

	require.NoError(t, svcs.File.Delete(f.ID))

	p, err := svcs.Share.Export(c.ID)
	require.NoError(t, err)
	assert.Empty(t, p.Files)
	// the ref itself stays on the activity
	assert.Equal(t, f.ID, p.Class.Activities[0].Files[0].ID)
}

func Test_Service_EncodeDecodeParam(t *testing.T) {
	svcs := testutil.NewServices(t)
	c, _ := seedClass(t, svcs)

	p, err := svcs.Share.Export(c.ID)
	require.NoError(t, err)
	param, err := svcs.Share.EncodeParam(p)
	require.NoError(t, err)

	got, err := svcs.Share.DecodeParam(param)
	require.NoError(t, err)
	assert.Equal(t, p.Class, got.Class)
	assert.Equal(t, p.Files, got.Files)
	assert.Equal(t, "Météo: ça caille ❄️", got.Activities[0].Text)

	tests := []struct {
		name  string
		param string
	}{
		{name: "empty", param: "   "},
		{name: "bad base64", param: "not/base64!!"},
		{name: "bad JSON", param: base64.StdEncoding.EncodeToString([]byte("{oops"))},
		{name: "truncated", param: param[:len(param)/2]},
		{name: "missing fields", param: base64.StdEncoding.EncodeToString([]byte(`{"id":"x"}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svcs.Share.DecodeParam(tt.param)
			assert.True(t, share.IsDecodeError(err), "want DecodeError, got %v", err)
		})
	}
}

func Test_Service_Import(t *testing.T) {
	sender := testutil.NewServices(t)
	c, f := seedClass(t, sender)

	p, err := sender.Share.Export(c.ID)
	require.NoError(t, err)
	param, err := sender.Share.EncodeParam(p)
	require.NoError(t, err)

	// receiving side starts from an empty store
	receiver := testutil.NewServices(t)
	decoded, err := receiver.Share.DecodeParam(param)
	require.NoError(t, err)
	imported, err := receiver.Share.Import(decoded)
	require.NoError(t, err)

	assert.NotEqual(t, c.ID, imported.ID)
	assert.Equal(t, c.Date, imported.Date)
	require.Len(t, imported.Activities, len(c.Activities))
	assert.Equal(t, c.Activities[0].Text, imported.Activities[0].Text)

	// the blob landed under its original id
	got, err := receiver.File.Get(f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.Data, got.Data)
}

func Test_Service_Import_rejectsBadPayloads(t *testing.T) {
	svcs := testutil.NewServices(t)

	// an invalid file blocks the whole import; nothing is written
	p := share.Portable{
		Class: class.Class{
			Date:       "2026-02-03",
			Activities: []class.Activity{{Type: class.TypeActivity, Text: "x"}},
		},
		Files: map[string]file.File{
			"file_bad": {ID: "file_bad", Name: "notes.txt", Type: "text/plain", Size: 3, Data: "data:text/plain;base64,YWJj"},
		},
	}
	_, err := svcs.Share.Import(p)
	assert.True(t, share.IsDecodeError(err), "want DecodeError, got %v", err)

	n, err := svcs.File.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
	classes, err := svcs.Class.List()
	require.NoError(t, err)
	assert.Empty(t, classes)

	// only blank activities
	_, err = svcs.Share.Import(share.Portable{
		Class: class.Class{
			Date:       "2026-02-03",
			Activities: []class.Activity{{Type: class.TypeActivity, Text: "   "}},
		},
	})
	assert.True(t, share.IsDecodeError(err), "want DecodeError, got %v", err)
}

func Test_Service_ShareURL(t *testing.T) {
	svcs := testutil.NewServices(t)
	c, _ := seedClass(t, svcs)

	u, err := svcs.Share.ShareURL(c.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u, svcs.Conf.FrontendBaseURL+"?share="), "unexpected url %q", u)

	param := strings.TrimPrefix(u, svcs.Conf.FrontendBaseURL+"?share=")
	p, err := svcs.Share.DecodeParam(param)
	require.NoError(t, err)
	assert.Equal(t, c.Date, p.Date)
}

func Test_Service_PlainText(t *testing.T) {
	svcs := testutil.NewServices(t)
	c, _ := seedClass(t, svcs)

	text, err := svcs.Share.PlainText(c.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "CLASS PLAN - 2026-02-03\n"+strings.Repeat("=", 50)))
	assert.Contains(t, text, "ACTIVITIES:")
	assert.Contains(t, text, "1. [VOCABULARY] Météo: ça caille ❄️")
	assert.Contains(t, text, "Files: board.png")
	assert.Contains(t, text, "2. [GAME] bingo")
	assert.Contains(t, text, "Links: rules (https://example.com/bingo)")
	assert.Contains(t, text, "HOMEWORK:\nréviser les unités 1–3")

	// no homework block when there is none
	crs := testutil.CreateCourse(t, svcs.Course, "French B1", "")
	bare := testutil.CreateClass(t, svcs.Class, "2026-02-04", crs.ID)
	text, err = svcs.Share.PlainText(bare.ID)
	require.NoError(t, err)
	assert.NotContains(t, text, "HOMEWORK:")
}

func Test_Service_EmailShare(t *testing.T) {
	svcs := testutil.NewServices(t)
	c, _ := seedClass(t, svcs)

	sent := len(emailsvc.SentMessages)
	err := svcs.Share.EmailShare(c.ID, []mail.Address{{Address: "colleague@test.cd"}})
	require.NoError(t, err)

	require.Len(t, emailsvc.SentMessages, sent+1)
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	assert.Equal(t, "Class plan - 2026-02-03", msg.Subject)
	assert.Contains(t, msg.TextContent, svcs.Conf.FrontendBaseURL+"?share=")
	assert.Contains(t, msg.TextContent, "CLASS PLAN - 2026-02-03")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "class-2026-02-03.json", msg.Attachments[0].Filename)

	err = svcs.Share.EmailShare(c.ID, nil)
	require.Error(t, err)
}
