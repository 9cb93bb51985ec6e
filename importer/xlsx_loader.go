// Package importer загружает каталог дисков из внешних файлов.
// Внешние русскоязычные заголовки колонок и имена листов преобразуются во
// внутреннюю схему ровно один раз на границе: ядро работает только с
// enum-типизированными записями и никогда не видит сырых заголовков.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"dicingserver/catalog"
)

// column внутренний идентификатор колонки схемы
type column string

const (
	colArticleCode column = "ArticleCode"
	colMaterial    column = "Material"
	colCutType     column = "CutType"
	colThickness   column = "ThicknessMicrons"
	colKerfWidth   column = "KerfWidthMicrons"
	colHubDiameter column = "HubDiameterMm"
	colOuterDiam   column = "OuterDiameterMm"
	colGrainSize   column = "GrainSize"
	colChipping    column = "ChippingMicrons"
	colCutRate     column = "CutRateMmPerMin"
	colLifespan    column = "LifespanCuts"
)

// headerAliases внешние заголовки (канонические английские и русские из
// исходной базы) в нижнем регистре
var headerAliases = map[string]column{
	"articlecode":                colArticleCode,
	"артикул диска":              colArticleCode,
	"артикул":                    colArticleCode,
	"material":                   colMaterial,
	"материал пластины":          colMaterial,
	"cuttype":                    colCutType,
	"тип резки":                  colCutType,
	"thicknessmicrons":           colThickness,
	"толщина пластины, мкм":      colThickness,
	"kerfwidthmicrons":           colKerfWidth,
	"ширина реза, мкм":           colKerfWidth,
	"hubdiametermm":              colHubDiameter,
	"диаметр ступицы, мм":        colHubDiameter,
	"outerdiametermm":            colOuterDiam,
	"внешний диаметр, мм":        colOuterDiam,
	"grainsize":                  colGrainSize,
	"размер зерна":               colGrainSize,
	"chippingmicrons":            colChipping,
	"сколы (медиана), мкм":       colChipping,
	"cutratemmpermin":            colCutRate,
	"скорость резки, мм/мин":     colCutRate,
	"lifespancuts":               colLifespan,
	"срок службы диска, резов":   colLifespan,
}

// requiredColumns полный набор колонок схемы.
// Material допускается брать из имени листа, если колонки нет.
var requiredColumns = []column{
	colArticleCode, colMaterial, colCutType,
	colThickness, colKerfWidth, colHubDiameter, colOuterDiam, colGrainSize,
	colChipping, colCutRate, colLifespan,
}

// SchemaMismatchError загруженный набор данных не соответствует схеме.
// Ядро никогда не угадывает смысл колонок: лишние и отсутствующие
// перечисляются явно.
type SchemaMismatchError struct {
	Sheet   string
	Missing []string
	Extra   []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("лист %q не соответствует схеме: отсутствуют колонки %v, лишние колонки %v",
		e.Sheet, e.Missing, e.Extra)
}

// ParseWorkbook читает книгу Excel с каталогом дисков.
// Каждый лист содержит диски одного материала пластины: имя листа задает
// материал, если в листе нет колонки Material. Возвращает записи в порядке
// следования листов и строк плюс предупреждения по пропущенным строкам.
func ParseWorkbook(r io.Reader) ([]catalog.DiscRecord, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось открыть книгу Excel: %w", err)
	}
	defer f.Close()

	var records []catalog.DiscRecord
	var warnings []string

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("в книге нет листов")
	}

	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, nil, fmt.Errorf("не удалось прочитать лист %q: %w", sheet, err)
		}
		if len(rows) < 2 {
			// Пустой лист или только заголовок
			continue
		}

		sheetMaterial, sheetHasMaterial := catalog.ParseMaterial(sheet)

		mapping, err := mapHeaders(sheet, rows[0], sheetHasMaterial)
		if err != nil {
			return nil, nil, err
		}

		for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
			row := rows[rowIdx]
			if isEmptyRow(row) {
				continue
			}

			record, rowWarnings := parseRow(row, mapping, sheetMaterial)
			for _, w := range rowWarnings {
				warnings = append(warnings, fmt.Sprintf("лист %q, строка %d: %s", sheet, rowIdx+1, w))
			}
			if record == nil {
				continue
			}
			records = append(records, *record)
		}
	}

	if len(records) == 0 {
		return nil, warnings, fmt.Errorf("в книге не найдено ни одной корректной записи")
	}
	return records, warnings, nil
}

// mapHeaders сопоставляет заголовки листа внутренней схеме.
// Несоответствие схемы — ошибка немедленно, до разбора данных.
func mapHeaders(sheet string, headers []string, sheetHasMaterial bool) (map[column]int, error) {
	mapping := make(map[column]int, len(headers))
	var extra []string

	for i, header := range headers {
		normalized := strings.ToLower(strings.TrimSpace(header))
		if normalized == "" {
			continue
		}
		col, ok := headerAliases[normalized]
		if !ok {
			extra = append(extra, strings.TrimSpace(header))
			continue
		}
		if _, dup := mapping[col]; !dup {
			mapping[col] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := mapping[col]; ok {
			continue
		}
		if col == colMaterial && sheetHasMaterial {
			continue
		}
		missing = append(missing, string(col))
	}

	if len(missing) > 0 || len(extra) > 0 {
		return nil, &SchemaMismatchError{Sheet: sheet, Missing: missing, Extra: extra}
	}
	return mapping, nil
}

// parseRow разбирает одну строку листа. Возвращает nil и предупреждение,
// если строка не образует корректную запись.
func parseRow(row []string, mapping map[column]int, sheetMaterial catalog.Material) (*catalog.DiscRecord, []string) {
	var warnings []string

	cell := func(col column) string {
		idx, ok := mapping[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	num := func(col column) float64 {
		raw := cell(col)
		if raw == "" {
			return 0
		}
		v, err := parseFloat(raw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("колонка %s: не число %q", col, raw))
			return 0
		}
		return v
	}

	article := cell(colArticleCode)
	if article == "" {
		warnings = append(warnings, "пропущена строка без артикула")
		return nil, warnings
	}

	material := sheetMaterial
	if raw := cell(colMaterial); raw != "" {
		m, ok := catalog.ParseMaterial(raw)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("неизвестный материал %q", raw))
		} else {
			material = m
		}
	}

	cutType := catalog.CutTypeUnknown
	if raw := cell(colCutType); raw != "" {
		ct, ok := catalog.ParseCutType(raw)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("неизвестный тип резки %q", raw))
		} else {
			cutType = ct
		}
	}

	record := catalog.DiscRecord{
		ArticleCode:      article,
		Material:         material,
		CutType:          cutType,
		ThicknessMicrons: num(colThickness),
		KerfWidthMicrons: num(colKerfWidth),
		HubDiameterMm:    num(colHubDiameter),
		OuterDiameterMm:  num(colOuterDiam),
		GrainSize:        int(num(colGrainSize)),
		ChippingMicrons:  num(colChipping),
		CutRateMmPerMin:  num(colCutRate),
		LifespanCuts:     int(num(colLifespan)),
	}

	// Толщина и ширина реза в каталоге всегда положительны
	if record.ThicknessMicrons <= 0 || record.KerfWidthMicrons <= 0 {
		warnings = append(warnings, fmt.Sprintf("артикул %s: неположительная толщина или ширина реза, строка пропущена", article))
		return nil, warnings
	}

	return &record, warnings
}

// parseFloat толерантный разбор числа из ячейки
func parseFloat(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	return strconv.ParseFloat(cleaned, 64)
}

// isEmptyRow проверяет, пуста ли строка листа
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
