package testutil

import (
	"encoding/base64"
	"log"
	"os"
	"testing"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/class"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/file"
	"github.com/trezcool/darasa/core/share"
	emailsvc "github.com/trezcool/darasa/services/email"
	logsvc "github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/kvdb"
	"github.com/trezcool/darasa/storage/kvstore"
)

// NewConfig returns a config suitable for tests: in-memory storage and
// the default upload limits.
func NewConfig() *core.Config {
	conf := &core.Config{
		Env:             "TEST",
		Debug:           true,
		TestMode:        true,
		AppName:         "Darasa",
		FrontendBaseURL: "http://localhost:8000",
		DefaultFromName: "Darasa",
		DefaultFromAddr: "noreply@localhost",
	}
	conf.Storage.Engine = "memory"
	conf.Upload.MaxBytes = 10 * 1024 * 1024
	conf.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "application/pdf"}
	return conf
}

// PrepareDB opens a fresh in-memory store.
func PrepareDB(t *testing.T) *kvdb.DB {
	t.Helper()

	db, err := kvdb.Open(kvstore.OpenMemory(), NewLogger())
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

func NewLogger() core.Logger {
	return logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
}

// Services bundles a fully wired service stack over one store.
type Services struct {
	Conf   *core.Config
	DB     *kvdb.DB
	File   *file.Service
	Course *course.Service
	Class  *class.Service
	Share  *share.Service
	Mail   core.EmailService
}

// NewServices wires the full stack over a fresh in-memory store.
func NewServices(t *testing.T) *Services {
	t.Helper()

	conf := NewConfig()
	db := PrepareDB(t)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	fileSvc := file.NewService(conf, kvdb.NewFileRepository(db))
	courseSvc := course.NewService(kvdb.NewCourseRepository(db))
	classSvc := class.NewService(kvdb.NewClassRepository(db), fileSvc, courseSvc)
	courseSvc.BindCascader(classSvc)
	return &Services{
		Conf:   conf,
		DB:     db,
		File:   fileSvc,
		Course: courseSvc,
		Class:  classSvc,
		Share:  share.NewService(conf, classSvc, courseSvc, fileSvc, db, mailSvc),
		Mail:   mailSvc,
	}
}

func CreateCourse(t *testing.T, svc *course.Service, name, color string) course.Course {
	t.Helper()

	crs, err := svc.Create(course.NewCourse{Name: name, Color: color})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateClass(t *testing.T, svc *class.Service, date, courseID string, activities ...class.NewActivity) class.Class {
	t.Helper()

	if len(activities) == 0 {
		activities = []class.NewActivity{{Type: class.TypeActivity, Text: "warm up"}}
	}
	cls, err := svc.Create(class.NewClass{Date: date, CourseID: courseID, Activities: activities})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return cls
}

// PNGDataURL builds a valid png data URL over payload.
func PNGDataURL(payload []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
}

// CreateFile stores a small png blob.
func CreateFile(t *testing.T, svc *file.Service, name string, payload []byte) file.File {
	t.Helper()

	f, err := svc.Put(file.NewFile{
		Name: name,
		Type: "image/png",
		Size: int64(len(payload)),
		Data: PNGDataURL(payload),
	})
	if err != nil {
		t.Fatalf("CreateFile() failed: %v", err)
	}
	return f
}
