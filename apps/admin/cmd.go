package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/trezcool/darasa/core/class"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/file"
	"github.com/trezcool/darasa/core/share"
)

var (
	readLineFunc = func() (string, error) { // mockable
		sc := bufio.NewScanner(os.Stdin)
		sc.Scan()
		return sc.Text(), sc.Err()
	}

	errHelp = errors.New("help provided")
)

type commandLine struct {
	classSvc  *class.Service
	courseSvc *course.Service
	fileSvc   *file.Service
	shareSvc  *share.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  export -out FILE - write a full backup document to FILE")
	fmt.Println("  import -in FILE  - replace all data with the backup document in FILE")
	fmt.Println("  stats            - print class, file and storage counts")
	fmt.Println("  clear            - delete all classes, courses and files")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOut := exportCmd.String("out", "", "Destination file for the backup document.")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importIn := importCmd.String("in", "", "Backup document to restore from.")

	switch args[1] {
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportOut == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.exportBackup(*exportOut)
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importIn == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importBackup(*importIn)
	case "stats":
		return cli.stats()
	case "clear":
		fmt.Print("This deletes every class, course and file. Type 'yes' to continue: ")
		answer, err := readLineFunc()
		fmt.Println()
		if err != nil {
			return err
		}
		if answer != "yes" {
			return errHelp
		}
		return cli.clear()
	default:
		cli.printUsage()
		return errHelp
	}
}
