// Package storage persists the most recent run report so it can be viewed
// again without re-running the pipeline.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/getupkeep/upkeep-cli/report"
)

const defaultStateDir = "Library/Application Support/upkeep"
const defaultStateFilename = "lastrun.json"

func statePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, defaultStateDir, defaultStateFilename), nil
}

// WriteLastRun replaces the stored report with r.
func WriteLastRun(r *report.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	path, err := statePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}
	return nil
}

// ReadLastRun returns the most recently stored report. The error is
// os.ErrNotExist when no run has been stored yet.
func ReadLastRun() (*report.Report, error) {
	path, err := statePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
