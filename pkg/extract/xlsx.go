package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Xlsx renders every sheet of a workbook as pipe-delimited rows under a
// sheet header, dropping rows that are entirely blank.
func Xlsx(data []byte) (string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("Excelブックの解析に失敗しました（.xlsx形式か確認してください）: %w", err)
	}
	defer wb.Close()

	var sheets []string
	for _, name := range wb.GetSheetList() {
		rows, err := wb.GetRows(name)
		if err != nil {
			return "", fmt.Errorf("シート %q の読み取りに失敗しました: %w", name, err)
		}

		var lines []string
		for _, row := range rows {
			blank := true
			for _, cell := range row {
				if strings.TrimSpace(cell) != "" {
					blank = false
					break
				}
			}
			if !blank {
				lines = append(lines, strings.Join(row, " | "))
			}
		}
		sheets = append(sheets, fmt.Sprintf("【シート: %s】\n%s", name, strings.Join(lines, "\n")))
	}
	return strings.Join(sheets, "\n\n"), nil
}
