package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"dicingserver/catalog"
)

var testHeaders = []string{
	"Артикул диска",
	"Тип резки",
	"Толщина пластины, мкм",
	"Ширина реза, мкм",
	"Диаметр ступицы, мм",
	"Внешний диаметр, мм",
	"Размер зерна",
	"Сколы (медиана), мкм",
	"Скорость резки, мм/мин",
	"Срок службы диска, резов",
}

// buildWorkbook собирает книгу в памяти: карта лист -> строки
func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for sheet, rows := range sheets {
		if first {
			f.SetSheetName(f.GetSheetName(0), sheet)
			first = false
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				t.Fatalf("NewSheet(%q): %v", sheet, err)
			}
		}
		for rowIdx, row := range rows {
			for colIdx, value := range row {
				cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					t.Fatalf("CoordinatesToCellName: %v", err)
				}
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					t.Fatalf("SetCellValue: %v", err)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func headerRow() []interface{} {
	row := make([]interface{}, len(testHeaders))
	for i, h := range testHeaders {
		row[i] = h
	}
	return row
}

// TestParseWorkbookSheetPerMaterial проверяет разбор книги с листом на материал
func TestParseWorkbookSheetPerMaterial(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		"SiC": {
			headerRow(),
			{"SIC-300-45-H08", "Полный рез", 300, 45, 8, 52, 6, 12.5, 40, 15000},
			{"SIC-320-45-H08", "Полурез", 320, 45, 8, 52, 6, 14, 38, 14000},
		},
	})

	records, warnings, err := ParseWorkbook(r)
	if err != nil {
		t.Fatalf("ParseWorkbook() вернул ошибку: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("неожиданные предупреждения: %v", warnings)
	}
	if len(records) != 2 {
		t.Fatalf("получено %d записей, ожидалось 2", len(records))
	}

	r0 := records[0]
	if r0.Material != catalog.MaterialSiC {
		t.Errorf("Material = %q, ожидалось %q (из имени листа)", r0.Material, catalog.MaterialSiC)
	}
	if r0.CutType != catalog.CutTypeFull {
		t.Errorf("CutType = %q, ожидалось %q", r0.CutType, catalog.CutTypeFull)
	}
	if r0.ThicknessMicrons != 300 || r0.KerfWidthMicrons != 45 {
		t.Errorf("размеры не разобраны: %+v", r0)
	}
	if r0.ChippingMicrons != 12.5 {
		t.Errorf("ChippingMicrons = %g, ожидалось 12.5", r0.ChippingMicrons)
	}
	if r0.LifespanCuts != 15000 {
		t.Errorf("LifespanCuts = %d, ожидалось 15000", r0.LifespanCuts)
	}
}

// TestParseWorkbookSchemaMismatch проверяет отказ по несоответствию схемы
// с перечислением колонок
func TestParseWorkbookSchemaMismatch(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		"SiC": {
			{"Артикул диска", "Тип резки", "Толщина пластины, мкм", "Непонятная колонка"},
			{"SIC-300-45-H08", "Полный рез", 300, "x"},
		},
	})

	_, _, err := ParseWorkbook(r)
	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("ожидался SchemaMismatchError, получено %v", err)
	}
	if mismatch.Sheet != "SiC" {
		t.Errorf("Sheet = %q, ожидалось SiC", mismatch.Sheet)
	}
	if len(mismatch.Missing) == 0 {
		t.Errorf("ожидался непустой список отсутствующих колонок")
	}
	foundExtra := false
	for _, extra := range mismatch.Extra {
		if extra == "Непонятная колонка" {
			foundExtra = true
		}
	}
	if !foundExtra {
		t.Errorf("лишняя колонка не названа: %v", mismatch.Extra)
	}
}

// TestParseWorkbookUnknownSheetNeedsMaterialColumn проверяет, что для листа
// с произвольным именем колонка Material обязательна
func TestParseWorkbookUnknownSheetNeedsMaterialColumn(t *testing.T) {
	headers := append([]interface{}{"Материал пластины"}, headerRow()...)
	r := buildWorkbook(t, map[string][][]interface{}{
		"Каталог 2026": {
			headers,
			append([]interface{}{"Кремний"},
				"SI-300-30-H05", "Полный рез", 300, 30, 5, 52, 4, 8, 55, 20000),
		},
	})

	records, _, err := ParseWorkbook(r)
	if err != nil {
		t.Fatalf("ParseWorkbook() вернул ошибку: %v", err)
	}
	if records[0].Material != catalog.MaterialSilicon {
		t.Errorf("Material = %q, ожидалось значение из колонки", records[0].Material)
	}

	// Без колонки Material произвольный лист не проходит проверку схемы
	r = buildWorkbook(t, map[string][][]interface{}{
		"Каталог 2026": {
			headerRow(),
			{"SI-300-30-H05", "Полный рез", 300, 30, 5, 52, 4, 8, 55, 20000},
		},
	})
	_, _, err = ParseWorkbook(r)
	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("ожидался SchemaMismatchError, получено %v", err)
	}
}

// TestParseWorkbookRowWarnings проверяет пропуск некорректных строк
// с предупреждениями вместо отказа
func TestParseWorkbookRowWarnings(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		"SiC": {
			headerRow(),
			{"", "Полный рез", 300, 45, 8, 52, 6, 12, 40, 15000},          // нет артикула
			{"SIC-0-45-H08", "Полный рез", 0, 45, 8, 52, 6, 12, 40, 15000}, // нулевая толщина
			{"SIC-300-45-H08", "Полный рез", 300, 45, 8, 52, 6, 12, 40, 15000},
		},
	})

	records, warnings, err := ParseWorkbook(r)
	if err != nil {
		t.Fatalf("ParseWorkbook() вернул ошибку: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("получено %d записей, ожидалась 1", len(records))
	}
	if len(warnings) != 2 {
		t.Errorf("получено %d предупреждений, ожидалось 2: %v", len(warnings), warnings)
	}
	for _, w := range warnings {
		if !strings.Contains(w, "SiC") {
			t.Errorf("предупреждение не называет лист: %q", w)
		}
	}
}

// TestParseWorkbookTolerantNumbers проверяет разбор чисел с запятой
func TestParseWorkbookTolerantNumbers(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		"SiC": {
			headerRow(),
			{"SIC-300-45-H08", "Полный рез", "300", "45,5", "8", "52", "6", "12,5", "40", "15000"},
		},
	})

	records, _, err := ParseWorkbook(r)
	if err != nil {
		t.Fatalf("ParseWorkbook() вернул ошибку: %v", err)
	}
	if records[0].KerfWidthMicrons != 45.5 {
		t.Errorf("KerfWidthMicrons = %g, ожидалось 45.5", records[0].KerfWidthMicrons)
	}
	if records[0].ChippingMicrons != 12.5 {
		t.Errorf("ChippingMicrons = %g, ожидалось 12.5", records[0].ChippingMicrons)
	}
}

// TestParseWorkbookEmpty проверяет отказ для книги без корректных записей
func TestParseWorkbookEmpty(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		"SiC": {headerRow()},
	})

	_, _, err := ParseWorkbook(r)
	if err == nil {
		t.Fatalf("ожидалась ошибка для книги без записей")
	}
}
