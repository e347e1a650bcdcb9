package extract

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestXlsx(t *testing.T) {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	if err := wb.SetSheetRow(sheet, "A1", &[]interface{}{"項目", "記入内容"}); err != nil {
		t.Fatal(err)
	}
	if err := wb.SetSheetRow(sheet, "A2", &[]interface{}{"事業所名", "株式会社テスト"}); err != nil {
		t.Fatal(err)
	}
	// Row 3 left blank on purpose
	if err := wb.SetSheetRow(sheet, "A4", &[]interface{}{"計画期間", "2026年4月〜2027年3月"}); err != nil {
		t.Fatal(err)
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	got, err := Xlsx(buf.Bytes())
	if err != nil {
		t.Fatalf("Xlsx: %v", err)
	}

	if !strings.Contains(got, "【シート: "+sheet+"】") {
		t.Errorf("missing sheet header:\n%s", got)
	}
	if !strings.Contains(got, "項目 | 記入内容") {
		t.Errorf("missing pipe-delimited header row:\n%s", got)
	}
	if !strings.Contains(got, "事業所名 | 株式会社テスト") {
		t.Errorf("missing data row:\n%s", got)
	}

	// A single-sheet workbook with the blank row dropped has no empty
	// lines at all.
	if strings.Contains(got, "\n\n") {
		t.Errorf("blank row was not dropped:\n%s", got)
	}
}

func TestXlsxInvalidData(t *testing.T) {
	if _, err := Xlsx([]byte("これはExcelファイルではありません")); err == nil {
		t.Error("non-workbook bytes must fail")
	}
}

func TestDocxInvalidData(t *testing.T) {
	if _, err := Docx([]byte("これはWord文書ではありません")); err == nil {
		t.Error("non-document bytes must fail")
	}
}
