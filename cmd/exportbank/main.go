// Command exportbank writes a course's question bank to the spreadsheet
// layout that a course file's bank_file can point at.
//
//	exportbank -content ./content -course marketing -out marketing.xlsx
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/p-n-ai/freecourses/internal/course"
	"github.com/p-n-ai/freecourses/internal/curriculum"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("exportbank", flag.ContinueOnError)
	fs.SetOutput(stderr)
	contentPath := fs.String("content", "./content", "content directory")
	courseID := fs.String("course", "", "course ID to export")
	out := fs.String("out", "", "output .xlsx path (default <course>.xlsx)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *courseID == "" {
		return fmt.Errorf("-course is required")
	}
	if *out == "" {
		*out = *courseID + ".xlsx"
	}

	loader, err := curriculum.NewLoader(*contentPath)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	c, ok := loader.Registry().Get(course.CourseID(*courseID))
	if !ok {
		return fmt.Errorf("course %q: %w", *courseID, course.ErrUnknownCourse)
	}
	if !c.HasExam() {
		return fmt.Errorf("course %q: %w", *courseID, course.ErrNoExam)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *out, err)
	}
	if err := curriculum.WriteBank(f, c.Bank); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", *out, err)
	}

	slog.Info("bank exported", "course", *courseID, "questions", c.Bank.Size(), "path", *out)
	return nil
}
