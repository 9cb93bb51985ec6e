package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"dicingserver/decoder"
)

// parameterFields сопоставление названия параметра из CSV условных
// обозначений полю грамматики. Названия в файлах поставщиков двуязычные,
// сравнение идет по вхождению ключа.
var parameterFields = map[string]decoder.Field{
	"материал":   decoder.FieldMaterial,
	"material":   decoder.FieldMaterial,
	"тип резки":  decoder.FieldCutType,
	"cut type":   decoder.FieldCutType,
}

// LoadGrammarCSV загружает словари условных обозначений артикула из CSV
// (формат исходной базы: Параметр;Обозначение;Значение;Единица) и
// возвращает грамматику по умолчанию с замененными словарями.
//
// Файлы выгружаются из разных систем и приходят как в UTF-8 (иногда с BOM),
// так и в Windows-1251; кодировка определяется по валидности UTF-8.
func LoadGrammarCSV(path string) (*decoder.Grammar, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл обозначений: %w", err)
	}
	return parseGrammarCSV(raw)
}

func parseGrammarCSV(raw []byte) (*decoder.Grammar, error) {
	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	grammar := decoder.DefaultGrammar()
	vocabs := make(map[decoder.Field]map[string]string)

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("строка %d: %w", line+1, err)
		}
		line++

		if line == 1 || len(record) < 3 {
			// Заголовок и неполные строки пропускаются
			continue
		}

		field, ok := matchParameter(record[0])
		if !ok {
			continue
		}
		token := strings.ToUpper(strings.TrimSpace(record[1]))
		value := strings.TrimSpace(record[2])
		if token == "" || value == "" {
			continue
		}
		if vocabs[field] == nil {
			vocabs[field] = make(map[string]string)
		}
		vocabs[field][token] = value
	}

	if len(vocabs) == 0 {
		return nil, fmt.Errorf("в файле обозначений не найдено ни одного словаря")
	}

	for i := range grammar.Segments {
		seg := &grammar.Segments[i]
		if seg.Kind != decoder.SegmentVocab {
			continue
		}
		if vocab, ok := vocabs[seg.Field]; ok {
			seg.Vocab = vocab
		}
	}
	return grammar, nil
}

// matchParameter находит поле грамматики по названию параметра
func matchParameter(name string) (decoder.Field, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for key, field := range parameterFields {
		if strings.Contains(normalized, key) {
			return field, true
		}
	}
	return "", false
}

// decodeText приводит содержимое файла к UTF-8.
// BOM срезается; невалидный UTF-8 трактуется как Windows-1251.
func decodeText(raw []byte) (string, error) {
	if len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF {
		raw = raw[3:]
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("не удалось определить кодировку файла: %w", err)
	}
	return string(decoded), nil
}
