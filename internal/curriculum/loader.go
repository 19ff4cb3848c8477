// Package curriculum loads course content and locale bundles from the
// filesystem.
package curriculum

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/p-n-ai/freecourses/internal/course"
	"github.com/p-n-ai/freecourses/internal/locale"
)

const (
	localeSuffix = ".locale.yaml"
	courseSuffix = ".course.yaml"
)

// ErrInvalidCourse is returned for course files that fail validation.
var ErrInvalidCourse = errors.New("invalid course")

// Loader reads every locale bundle and course under a content root.
type Loader struct {
	rootDir  string
	bundles  map[locale.Locale]locale.Bundle
	courses  []course.Course
	order    map[course.CourseID]int
	digest   hash.Hash
	catalog  *locale.Catalog
	registry *course.Registry
	version  string
}

// NewLoader loads and validates all content under rootDir.
func NewLoader(rootDir string) (*Loader, error) {
	digest, err := blake2b.New256(nil)
	if err != nil {
		return nil, fmt.Errorf("content digest: %w", err)
	}
	l := &Loader{
		rootDir: rootDir,
		bundles: make(map[locale.Locale]locale.Bundle),
		order:   make(map[course.CourseID]int),
		digest:  digest,
	}

	if err := l.loadAll(); err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}

	l.catalog, err = locale.NewCatalog(l.bundles)
	if err != nil {
		return nil, fmt.Errorf("building locale catalog: %w", err)
	}

	sort.SliceStable(l.courses, func(i, j int) bool {
		return l.order[l.courses[i].ID] < l.order[l.courses[j].ID]
	})
	l.registry, err = course.NewRegistry(l.courses...)
	if err != nil {
		return nil, fmt.Errorf("building course registry: %w", err)
	}
	if err := l.checkCourseText(); err != nil {
		return nil, err
	}

	l.version = hex.EncodeToString(l.digest.Sum(nil))[:16]

	slog.Info("content loaded",
		"root", rootDir,
		"courses", len(l.courses),
		"locales", len(l.bundles),
		"version", l.version,
	)
	return l, nil
}

// Catalog returns the validated locale catalog.
func (l *Loader) Catalog() *locale.Catalog {
	return l.catalog
}

// Registry returns the loaded courses in display order.
func (l *Loader) Registry() *course.Registry {
	return l.registry
}

// Version is a short fingerprint of every content file that was read.
func (l *Loader) Version() string {
	return l.version
}

func (l *Loader) loadAll() error {
	return filepath.Walk(l.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		switch {
		case strings.HasSuffix(path, localeSuffix):
			return l.loadLocale(path)
		case strings.HasSuffix(path, courseSuffix):
			return l.loadCourse(path)
		}
		return nil
	})
}

// readFile reads path and folds it into the content digest.
func (l *Loader) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rel, _ := filepath.Rel(l.rootDir, path)
	l.digest.Write([]byte(filepath.ToSlash(rel)))
	l.digest.Write([]byte{0})
	l.digest.Write(data)
	return data, nil
}

func (l *Loader) loadLocale(path string) error {
	name := strings.TrimSuffix(filepath.Base(path), localeSuffix)
	loc, ok := locale.Parse(name)
	if !ok {
		slog.Warn("skipping bundle for unsupported locale", "path", path, "locale", name)
		return nil
	}

	data, err := l.readFile(path)
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := validate(localeSchema, doc); err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, locale.ErrConfigurationIncomplete)
	}

	var b locale.Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	l.bundles[loc] = b
	return nil
}

func (l *Loader) loadCourse(path string) error {
	data, err := l.readFile(path)
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := validate(courseSchema, doc); err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, ErrInvalidCourse)
	}

	var cf CourseFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	modules := make([]course.Module, len(cf.Modules))
	for i, m := range cf.Modules {
		modules[i] = course.Module{Title: m.Title, Body: m.Body}
	}
	c := course.Course{
		ID:      course.CourseID(cf.ID),
		Modules: course.NewModuleIndex(modules),
	}
	for _, tf := range cf.Technologies {
		c.Technologies = append(c.Technologies, course.Technology{Name: tf.Name, Summary: tf.Summary})
	}

	if cf.Exam != nil {
		questions, err := l.examQuestions(path, cf.Exam)
		if err != nil {
			return err
		}
		c.Bank, err = course.NewBank(questions)
		if err != nil {
			return fmt.Errorf("%s: %v: %w", path, err, ErrInvalidCourse)
		}
	}

	l.courses = append(l.courses, c)
	l.order[c.ID] = cf.Order
	return nil
}

func (l *Loader) examQuestions(coursePath string, exam *ExamFile) ([]course.Question, error) {
	if exam.BankFile == "" {
		questions := make([]course.Question, len(exam.Questions))
		for i, q := range exam.Questions {
			questions[i] = q.question()
		}
		return questions, nil
	}

	bankPath := filepath.Join(filepath.Dir(coursePath), exam.BankFile)
	data, err := l.readFile(bankPath)
	if err != nil {
		return nil, fmt.Errorf("%s: reading bank: %w", coursePath, err)
	}
	questions, err := ReadBank(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", bankPath, err, ErrInvalidCourse)
	}
	return questions, nil
}

// checkCourseText requires a card title for every loaded course in the
// primary bundle; the catalog already guarantees the other locales match it.
func (l *Loader) checkCourseText() error {
	primary := l.catalog.Resolve(locale.Primary)
	for _, c := range l.registry.All() {
		if _, ok := primary.Course(string(c.ID)); !ok {
			return fmt.Errorf("course %q has no card text: %w", c.ID, locale.ErrConfigurationIncomplete)
		}
	}
	return nil
}
