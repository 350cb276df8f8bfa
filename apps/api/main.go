package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
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

func main() {
	conf := core.NewConfig()
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if conf.RollbarToken != "" && !conf.Debug {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	// set up storage
	var kv core.KV
	var err error
	if conf.Storage.Engine == "memory" {
		kv = kvstore.OpenMemory()
	} else {
		kv, err = kvstore.OpenSQLite(conf.StoragePath())
		errAndDie(std, err)
	}
	defer func() { _ = kv.Close() }()

	db, err := kvdb.Open(kv, logger)
	errAndDie(std, err)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	fileSvc := file.NewService(conf, kvdb.NewFileRepository(db))
	courseSvc := course.NewService(kvdb.NewCourseRepository(db))
	classSvc := class.NewService(kvdb.NewClassRepository(db), fileSvc, courseSvc)
	courseSvc.BindCascader(classSvc)
	shareSvc := share.NewService(conf, classSvc, courseSvc, fileSvc, db, mailSvc)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:   conf.ServerAddress(),
			Conf:      conf,
			Logger:    logger,
			ClassSvc:  classSvc,
			CourseSvc: courseSvc,
			FileSvc:   fileSvc,
			ShareSvc:  shareSvc,
		},
	)

	go app.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case <-app.ShutdownSignal():
		std.Print("integrity issue; shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		std.Printf("shutdown: %v", err)
	}
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
