package main

import (
	"log"
	"os"

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

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// set up storage
	kv, err := kvstore.OpenSQLite(conf.StoragePath())
	errAndDie(err)
	defer kv.Close()

	db, err := kvdb.Open(kv, logsvc.NewStdLogger(logger))
	errAndDie(err)

	// set up services
	fileSvc := file.NewService(conf, kvdb.NewFileRepository(db))
	courseSvc := course.NewService(kvdb.NewCourseRepository(db))
	classSvc := class.NewService(kvdb.NewClassRepository(db), fileSvc, courseSvc)
	courseSvc.BindCascader(classSvc)
	shareSvc := share.NewService(conf, classSvc, courseSvc, fileSvc, db, emailsvc.NewConsoleService(conf))

	// start CLI
	cli := commandLine{
		classSvc:  classSvc,
		courseSvc: courseSvc,
		fileSvc:   fileSvc,
		shareSvc:  shareSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
