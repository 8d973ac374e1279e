package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteTemplate writes a workbook with the import header row and one example row
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	example := map[string]interface{}{
		ColumnFirstName:  "Олена",
		ColumnLastName:   "Сидоренко",
		ColumnGroup:      "КН-102",
		ColumnCourseName: "Фізика",
		ColumnTeacher:    "Гриценко Петро",
		ColumnSemester:   2,
		ColumnYear:       2024,
		ColumnDepartment: "Фізики",
		ColumnLecture:    88,
		ColumnPractice:   75,
	}
	for i, header := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header %q: %w", header, err)
		}
		cell, _ = excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheet, cell, example[header]); err != nil {
			return fmt.Errorf("failed to write example %q: %w", header, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}
