package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// exportBackup writes the full-store backup document to path.
func (cli *commandLine) exportBackup(path string) error {
	b, err := cli.shareSvc.ExportBackup()
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return err
	}
	fmt.Printf("exported %d classes, %d courses, %d files to %s\n",
		len(b.Classes), len(b.Courses), len(b.Files), path)
	return nil
}

// importBackup replaces all data with the backup document at path.
func (cli *commandLine) importBackup(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	b, err := cli.shareSvc.ImportBackup(raw)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d classes, %d courses, %d files from %s\n",
		len(b.Classes), len(b.Courses), len(b.Files), path)
	return nil
}
