package curriculum

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/freecourses/internal/course"
)

// BankSheet is the worksheet holding exam questions in a bank spreadsheet.
const BankSheet = "Questions"

var bankHeader = []any{"Prompt", "Option A", "Option B", "Option C", "Option D", "Answer"}

// ReadBank parses a bank spreadsheet. The first row is a header; each
// following row is prompt, four options and the answer letter A-D.
// Blank rows are skipped.
func ReadBank(data []byte) ([]course.Question, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(BankSheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", BankSheet, err)
	}

	var questions []course.Question
	for i, row := range rows {
		if i == 0 || blank(row) {
			continue
		}
		if len(row) < len(bankHeader) {
			return nil, fmt.Errorf("row %d: want %d cells, got %d", i+1, len(bankHeader), len(row))
		}
		answer, err := answerIndex(row[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		q := course.Question{Prompt: strings.TrimSpace(row[0]), Correct: answer}
		for j := range q.Options {
			q.Options[j] = strings.TrimSpace(row[1+j])
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// WriteBank writes a bank in the spreadsheet layout ReadBank expects.
func WriteBank(w io.Writer, bank *course.Bank) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", BankSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(BankSheet, "A1", &bankHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, q := range bank.Questions() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{q.Prompt, q.Options[0], q.Options[1], q.Options[2], q.Options[3], string(rune('A' + q.Correct))}
		if err := f.SetSheetRow(BankSheet, cell, &row); err != nil {
			return fmt.Errorf("writing question %d: %w", i+1, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing spreadsheet: %w", err)
	}
	return nil
}

func answerIndex(cell string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(cell))
	if len(s) != 1 || s[0] < 'A' || s[0] >= 'A'+course.OptionCount {
		return 0, fmt.Errorf("answer %q: want a letter A-D", cell)
	}
	return int(s[0] - 'A'), nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
