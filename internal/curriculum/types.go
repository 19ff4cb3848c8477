package curriculum

import "github.com/p-n-ai/freecourses/internal/course"

// CourseFile is a course definition loaded from a *.course.yaml file.
type CourseFile struct {
	ID           string           `yaml:"id"`
	Order        int              `yaml:"order"`
	Modules      []ModuleFile     `yaml:"modules"`
	Technologies []TechnologyFile `yaml:"technologies"`
	Exam         *ExamFile        `yaml:"exam"`
}

// TechnologyFile is an entry of the optional technology grid.
type TechnologyFile struct {
	Name    string `yaml:"name"`
	Summary string `yaml:"summary"`
}

// ModuleFile is one lesson of a course.
type ModuleFile struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// ExamFile lists the questions inline or points at a spreadsheet next to
// the course file.
type ExamFile struct {
	BankFile  string         `yaml:"bank_file"`
	Questions []QuestionFile `yaml:"questions"`
}

// QuestionFile is a multiple-choice question; Answer is the zero-based
// index of the correct option.
type QuestionFile struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Answer  int      `yaml:"answer"`
}

func (q QuestionFile) question() course.Question {
	cq := course.Question{Prompt: q.Prompt, Correct: q.Answer}
	copy(cq.Options[:], q.Options)
	return cq
}
