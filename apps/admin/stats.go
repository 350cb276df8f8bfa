package main

import (
	"fmt"

	"github.com/trezcool/darasa/core/class"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/file"
)

// stats prints the store tallies.
func (cli *commandLine) stats() error {
	st, err := cli.classSvc.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("classes: %d\nfiles:   %d\nstorage: %d bytes\n", st.Classes, st.Files, st.StorageBytes)
	return nil
}

// clear wipes all three registries.
func (cli *commandLine) clear() error {
	if err := cli.classSvc.ReplaceAll([]class.Class{}); err != nil {
		return err
	}
	if err := cli.courseSvc.ReplaceAll([]course.Course{}); err != nil {
		return err
	}
	if err := cli.fileSvc.ReplaceAll([]file.File{}); err != nil {
		return err
	}
	fmt.Println("store cleared")
	return nil
}
