package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/tutorhub/pkg/models"
	"github.com/xuri/excelize/v2"
)

// TutorCreator creates tutors
type TutorCreator interface {
	Create(ctx context.Context, in models.CreateTutor) (*models.Tutor, error)
}

// TopicCreator creates topics
type TopicCreator interface {
	Create(ctx context.Context, in models.CreateTopic) (*models.Topic, error)
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	SheetName         string // Name of the sheet to import (Excel only)
	StartRow          int    // The row to start importing from (1-based index)
	FirstNameColumn   string
	LastNameColumn    string
	EmailColumn       string
	ProfileColumn     string
	TitleColumn       string
	DescriptionColumn string
	FormatColumn      string
	DurationColumn    string
	LevelColumn       string
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName:         "Sheet1",
		StartRow:          2, // skip header
		FirstNameColumn:   "A",
		LastNameColumn:    "B",
		EmailColumn:       "C",
		ProfileColumn:     "D",
		TitleColumn:       "E",
		DescriptionColumn: "F",
		FormatColumn:      "G",
		DurationColumn:    "H",
		LevelColumn:       "I",
	}
}

func (c ImportConfig) validateColumns() error {
	columns := map[string]string{
		"first name":  c.FirstNameColumn,
		"last name":   c.LastNameColumn,
		"email":       c.EmailColumn,
		"profile":     c.ProfileColumn,
		"title":       c.TitleColumn,
		"description": c.DescriptionColumn,
		"format":      c.FormatColumn,
		"duration":    c.DurationColumn,
		"level":       c.LevelColumn,
	}
	for name, column := range columns {
		if column != "" && columnToIndex(column) < 0 {
			return fmt.Errorf("invalid %s column %q", name, column)
		}
	}
	return nil
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	Processed     int
	TutorsCreated int
	TopicsCreated int
	Skipped       int
	Errors        []string
}

type importer struct {
	config  ImportConfig
	tutors  TutorCreator
	topics  TopicCreator
	byEmail map[string]int64
	result  *ImportResult
}

// Import reads tutors and their topics from an Excel or CSV file
func Import(ctx context.Context, config ImportConfig, tutors TutorCreator, topics TopicCreator) (*ImportResult, error) {
	imp := &importer{
		config:  config,
		tutors:  tutors,
		topics:  topics,
		byEmail: make(map[string]int64),
		result:  &ImportResult{Errors: make([]string, 0)},
	}
	if err := config.validateColumns(); err != nil {
		return nil, err
	}

	var rows [][]string
	var err error
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		rowNum := i + 1
		if rowNum < config.StartRow || isBlank(row) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return imp.result, err
		}

		imp.result.Processed++
		if err := imp.processRow(ctx, row); err != nil {
			imp.result.Skipped++
			imp.result.Errors = append(imp.result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return imp.result, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// processRow creates the row's tutor unless an earlier row already did,
// then its topic when a title is present
func (imp *importer) processRow(ctx context.Context, row []string) error {
	cell := func(column string) string {
		if column == "" {
			return ""
		}
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	tutor := models.CreateTutor{
		FirstName: cell(imp.config.FirstNameColumn),
		LastName:  cell(imp.config.LastNameColumn),
		Email:     cell(imp.config.EmailColumn),
		Profile:   cell(imp.config.ProfileColumn),
	}
	if tutor.Email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	key := strings.ToLower(tutor.Email)
	tutorID, exists := imp.byEmail[key]
	if !exists {
		if tutor.FirstName == "" || tutor.LastName == "" {
			return fmt.Errorf("first and last name are required for %s", tutor.Email)
		}
		created, err := imp.tutors.Create(ctx, tutor)
		if err != nil {
			return fmt.Errorf("failed to create tutor: %w", err)
		}
		tutorID = created.ID
		imp.byEmail[key] = tutorID
		imp.result.TutorsCreated++
	}

	title := cell(imp.config.TitleColumn)
	if title == "" {
		return nil
	}

	_, err := imp.topics.Create(ctx, models.CreateTopic{
		TutorID:     tutorID,
		Title:       title,
		Description: optional(cell(imp.config.DescriptionColumn)),
		Format:      optional(cell(imp.config.FormatColumn)),
		Duration:    optional(cell(imp.config.DurationColumn)),
		Level:       optional(cell(imp.config.LevelColumn)),
	})
	if err != nil {
		return fmt.Errorf("failed to create topic %q: %w", title, err)
	}
	imp.result.TopicsCreated++
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// columnToIndex converts an Excel column letter to a zero-based index.
// It returns -1 when column is empty or contains anything but letters.
func columnToIndex(column string) int {
	if column == "" {
		return -1
	}
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
