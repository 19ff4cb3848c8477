package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/p-n-ai/freecourses/internal/course"
	"github.com/p-n-ai/freecourses/internal/curriculum"
)

func TestRun_ExportsShippedBank(t *testing.T) {
	out := filepath.Join(t.TempDir(), "marketing.xlsx")

	err := run([]string{"-content", "../../content", "-course", "marketing", "-out", out}, io.Discard)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	questions, err := curriculum.ReadBank(data)
	if err != nil {
		t.Fatalf("ReadBank() error = %v", err)
	}
	if len(questions) != 30 {
		t.Fatalf("len(questions) = %d, want 30", len(questions))
	}

	loader, err := curriculum.NewLoader("../../content")
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	c, _ := loader.Registry().Get("marketing")
	for i, q := range questions {
		want, _ := c.Bank.QuestionAt(i)
		if q != want {
			t.Errorf("question %d = %+v, want %+v", i, q, want)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"missing course flag", []string{"-content", "../../content"}, nil},
		{"unknown course", []string{"-content", "../../content", "-course", "cooking", "-out", filepath.Join(dir, "a.xlsx")}, course.ErrUnknownCourse},
		{"course without exam", []string{"-content", "../../content", "-course", "web", "-out", filepath.Join(dir, "b.xlsx")}, course.ErrNoExam},
		{"bad flag", []string{"-nope"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, io.Discard)
			if err == nil {
				t.Fatal("run() should return error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
