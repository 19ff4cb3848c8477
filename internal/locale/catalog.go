package locale

import (
	"errors"
	"fmt"
	"sort"
)

// ErrConfigurationIncomplete is returned when a locale bundle is missing or
// lacks a required field.
var ErrConfigurationIncomplete = errors.New("configuration incomplete")

// CourseText holds the localized card text of one course.
type CourseText struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Modules     string `yaml:"modules" json:"modules"`
	Exam        string `yaml:"exam" json:"exam"`
}

// Bundle is the full set of display strings for one locale.
type Bundle struct {
	Title     string                `yaml:"title" json:"title"`
	Subtitle  string                `yaml:"subtitle" json:"subtitle"`
	Back      string                `yaml:"back" json:"back"`
	StartExam string                `yaml:"start_exam" json:"start_exam"`
	Question  string                `yaml:"question" json:"question"`
	Score     string                `yaml:"score" json:"score"`
	Retry     string                `yaml:"retry" json:"retry"`
	Courses   map[string]CourseText `yaml:"courses" json:"courses"`
}

// Course returns the card text for a course ID.
func (b Bundle) Course(id string) (CourseText, bool) {
	t, ok := b.Courses[id]
	return t, ok
}

// clone returns b with its own copy of the course map.
func (b Bundle) clone() Bundle {
	courses := make(map[string]CourseText, len(b.Courses))
	for id, t := range b.Courses {
		courses[id] = t
	}
	b.Courses = courses
	return b
}

func (b Bundle) missing() []string {
	var fields []string
	for name, v := range map[string]string{
		"title":      b.Title,
		"subtitle":   b.Subtitle,
		"back":       b.Back,
		"start_exam": b.StartExam,
		"question":   b.Question,
		"score":      b.Score,
		"retry":      b.Retry,
	} {
		if v == "" {
			fields = append(fields, name)
		}
	}
	for id, c := range b.Courses {
		for name, v := range map[string]string{
			"title":       c.Title,
			"description": c.Description,
			"modules":     c.Modules,
			"exam":        c.Exam,
		} {
			if v == "" {
				fields = append(fields, "courses."+id+"."+name)
			}
		}
	}
	sort.Strings(fields)
	return fields
}

// Catalog maps every supported locale to a complete bundle. It is
// immutable once built: bundles are copied in and copied out.
type Catalog struct {
	bundles map[Locale]Bundle
}

// NewCatalog validates that every supported locale has a complete bundle
// and that all bundles describe the same courses as the primary one.
func NewCatalog(bundles map[Locale]Bundle) (*Catalog, error) {
	primary, ok := bundles[Primary]
	if !ok {
		return nil, fmt.Errorf("locale %s: bundle missing: %w", Primary, ErrConfigurationIncomplete)
	}

	c := &Catalog{bundles: make(map[Locale]Bundle, len(supported))}
	for _, l := range supported {
		b, ok := bundles[l]
		if !ok {
			return nil, fmt.Errorf("locale %s: bundle missing: %w", l, ErrConfigurationIncomplete)
		}
		if fields := b.missing(); len(fields) > 0 {
			return nil, fmt.Errorf("locale %s: missing %v: %w", l, fields, ErrConfigurationIncomplete)
		}
		for id := range primary.Courses {
			if _, ok := b.Courses[id]; !ok {
				return nil, fmt.Errorf("locale %s: course %q untranslated: %w", l, id, ErrConfigurationIncomplete)
			}
		}
		c.bundles[l] = b.clone()
	}
	return c, nil
}

// Resolve returns a copy of the bundle for l, or of the primary bundle
// when l is not a supported locale.
func (c *Catalog) Resolve(l Locale) Bundle {
	b, ok := c.bundles[l]
	if !ok {
		b = c.bundles[Primary]
	}
	return b.clone()
}
