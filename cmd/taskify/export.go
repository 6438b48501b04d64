package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Joseda-hg/taskify/internal/model"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every task and note as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		tasks, err := app.ws.Tasks.List(ctx)
		if err != nil {
			return err
		}
		notes, err := app.ws.Notes.List(ctx)
		if err != nil {
			return err
		}

		data, err := encodeExport(exportFormat, exportDocument{
			Owner:      app.ws.Owner,
			ExportedAt: time.Now().UTC(),
			Tasks:      tasks,
			Notes:      notes,
		})
		if err != nil {
			return err
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err := os.Stdout.Write(data)
			return err
		}
		if err := atomic.WriteFile(exportOutput, bytes.NewReader(data)); err != nil {
			return err
		}
		app.log.WithField("path", exportOutput).WithField("tasks", len(tasks)).WithField("notes", len(notes)).Info("export written")
		return nil
	},
}

type exportDocument struct {
	Owner      string       `json:"owner" yaml:"owner"`
	ExportedAt time.Time    `json:"exportedAt" yaml:"exported_at"`
	Tasks      []model.Task `json:"tasks" yaml:"tasks"`
	Notes      []model.Note `json:"notes" yaml:"notes"`
}

func encodeExport(format string, doc exportDocument) ([]byte, error) {
	if doc.Tasks == nil {
		doc.Tasks = []model.Task{}
	}
	if doc.Notes == nil {
		doc.Notes = []model.Note{}
	}

	var buf bytes.Buffer
	switch format {
	case "yaml", "yml":
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return nil, err
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}
	case "json":
		if err := writeJSON(&buf, doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q: use yaml or json", format)
	}
	return buf.Bytes(), nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "yaml or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
}

