package class

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/file"
)

func TestClass_FileIDs(t *testing.T) {
	a := file.Ref{ID: "file_a", Name: "a.png"}
	b := file.Ref{ID: "file_b", Name: "b.png"}
	c := file.Ref{ID: "file_c", Name: "c.pdf"}

	cls := Class{
		Activities: []Activity{
			{Type: TypeActivity, Text: "x", Files: []file.Ref{a, b}},
			{Type: TypeReview, Text: "y", Files: []file.Ref{b, a}}, // dups
		},
		HomeworkFiles: []file.Ref{c, a},
	}

	// order preserved, duplicates dropped, homework included
	assert.Equal(t, []string{"file_a", "file_b", "file_c"}, cls.FileIDs())
	assert.True(t, cls.ReferencesFile("file_c"))
	assert.False(t, cls.ReferencesFile("file_z"))

	assert.Empty(t, Class{}.FileIDs())
}

func TestClass_HasHomework(t *testing.T) {
	tests := []struct {
		name string
		c    Class
		want bool
	}{
		{name: "none", c: Class{}},
		{name: "text", c: Class{Homework: "read p. 12"}, want: true},
		{name: "files only", c: Class{HomeworkFiles: []file.Ref{{ID: "file_a"}}}, want: true},
		{name: "links only", c: Class{HomeworkLinks: []Link{{Name: "quiz", URL: "https://x.test"}}}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.HasHomework())
		})
	}
}

func TestLink_Hostname(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "plain", url: "https://kahoot.it/challenge/123", want: "kahoot.it"},
		{name: "with port", url: "http://localhost:8000/x", want: "localhost"},
		{name: "unparseable", url: "::notaurl::", want: "::notaurl::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Link{URL: tt.url}.Hostname())
		})
	}
}
