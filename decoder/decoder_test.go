package decoder

import (
	"errors"
	"testing"

	"dicingserver/catalog"
)

// TestDecodeKnownCode проверяет расшифровку полностью корректного артикула
func TestDecodeKnownCode(t *testing.T) {
	d := NewDecoder(nil)

	spec, err := d.Decode("SIC-300-45-H08")
	if err != nil {
		t.Fatalf("Decode() вернул ошибку: %v", err)
	}
	if spec.Material != catalog.MaterialSiC {
		t.Errorf("Material = %q, ожидалось %q", spec.Material, catalog.MaterialSiC)
	}
	if spec.ThicknessMicrons != 300 {
		t.Errorf("ThicknessMicrons = %g, ожидалось 300", spec.ThicknessMicrons)
	}
	if spec.KerfWidthMicrons != 45 {
		t.Errorf("KerfWidthMicrons = %g, ожидалось 45", spec.KerfWidthMicrons)
	}
	if spec.HubDiameterMm != 8 {
		t.Errorf("HubDiameterMm = %g, ожидалось 8", spec.HubDiameterMm)
	}
	if len(spec.Warnings) != 0 {
		t.Errorf("Warnings = %v, ожидался пустой список", spec.Warnings)
	}
}

// TestDecodeNormalization проверяет нечувствительность к регистру и пробелам
func TestDecodeNormalization(t *testing.T) {
	d := NewDecoder(nil)

	a, err := d.Decode("  sic-300-45-h08 ")
	if err != nil {
		t.Fatalf("Decode() вернул ошибку: %v", err)
	}
	b, err := d.Decode("SIC-300-45-H08")
	if err != nil {
		t.Fatalf("Decode() вернул ошибку: %v", err)
	}
	if !a.StructuralEqual(b) {
		t.Errorf("расшифровки различаются: %+v и %+v", a, b)
	}
}

// TestDecodeDeterminism проверяет, что повторные вызовы дают идентичный результат
func TestDecodeDeterminism(t *testing.T) {
	d := NewDecoder(nil)

	first, err := d.Decode("SI-525-30-H05")
	if err != nil {
		t.Fatalf("Decode() вернул ошибку: %v", err)
	}
	for i := 0; i < 100; i++ {
		next, err := d.Decode("SI-525-30-H05")
		if err != nil {
			t.Fatalf("итерация %d: Decode() вернул ошибку: %v", i, err)
		}
		if !next.StructuralEqual(first) {
			t.Fatalf("итерация %d: расшифровка изменилась: %+v и %+v", i, next, first)
		}
	}
}

// TestDecodeMalformed проверяет ошибки структурного несовпадения
func TestDecodeMalformed(t *testing.T) {
	d := NewDecoder(nil)

	tests := []struct {
		name string
		code string
	}{
		{"слишком мало сегментов", "SIC-300"},
		{"слишком много сегментов", "SIC-300-45-H08-X"},
		{"пустая строка", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Decode(tt.code)
			var malformed *MalformedCodeError
			if !errors.As(err, &malformed) {
				t.Fatalf("Decode(%q): ожидался MalformedCodeError, получено %v", tt.code, err)
			}
			if malformed.Segment != -1 {
				t.Errorf("Segment = %d, ожидалось -1 для структурного несовпадения", malformed.Segment)
			}
		})
	}
}

// TestDecodePartialTolerance проверяет, что неизвестный токен словаря дает
// предупреждение, а остальные сегменты разбираются
func TestDecodePartialTolerance(t *testing.T) {
	d := NewDecoder(nil)

	spec, err := d.Decode("XXX-300-45-H08")
	if err != nil {
		t.Fatalf("Decode() вернул ошибку: %v", err)
	}
	if len(spec.Warnings) != 1 {
		t.Fatalf("Warnings = %v, ожидалось ровно одно предупреждение", spec.Warnings)
	}
	if spec.Material != catalog.MaterialUnknown {
		t.Errorf("Material = %q, ожидалось нейтральное значение", spec.Material)
	}
	if spec.ThicknessMicrons != 300 || spec.KerfWidthMicrons != 45 || spec.HubDiameterMm != 8 {
		t.Errorf("числовые сегменты не разобраны: %+v", spec)
	}
}

// TestDecodeBadPrefix проверяет деградацию необязательного сегмента с префиксом
func TestDecodeBadPrefix(t *testing.T) {
	d := NewDecoder(nil)

	spec, err := d.Decode("SIC-300-45-X08")
	if err != nil {
		t.Fatalf("Decode() вернул ошибку: %v", err)
	}
	if len(spec.Warnings) != 1 {
		t.Fatalf("Warnings = %v, ожидалось одно предупреждение", spec.Warnings)
	}
	if spec.HubDiameterMm != 0 {
		t.Errorf("HubDiameterMm = %g, ожидалось нейтральное значение 0", spec.HubDiameterMm)
	}
	if spec.Material != catalog.MaterialSiC {
		t.Errorf("Material = %q, остальные сегменты должны разбираться", spec.Material)
	}
}

// TestRoundTrip проверяет, что кодирование расшифровки восстанавливает артикул
func TestRoundTrip(t *testing.T) {
	d := NewDecoder(nil)

	codes := []string{
		"SIC-300-45-H08",
		"SI-525-30-H05",
		"SAP-430-60-H10",
	}
	for _, code := range codes {
		spec, err := d.Decode(code)
		if err != nil {
			t.Fatalf("Decode(%q) вернул ошибку: %v", code, err)
		}
		encoded, err := d.Encode(spec)
		if err != nil {
			t.Fatalf("Encode() вернул ошибку: %v", err)
		}
		if encoded != code {
			t.Errorf("Encode(Decode(%q)) = %q", code, encoded)
		}
	}
}

// TestEncodeUnencodable проверяет ошибку кодирования значения без токена
func TestEncodeUnencodable(t *testing.T) {
	d := NewDecoder(nil)

	spec := DiscSpec{
		Material:         catalog.Material("Diamond"),
		ThicknessMicrons: 300,
		KerfWidthMicrons: 45,
		HubDiameterMm:    8,
	}
	_, err := d.Encode(spec)
	var unencodable *UnencodableValueError
	if !errors.As(err, &unencodable) {
		t.Fatalf("ожидался UnencodableValueError, получено %v", err)
	}
	if unencodable.Field != FieldMaterial {
		t.Errorf("Field = %q, ожидалось %q", unencodable.Field, FieldMaterial)
	}
}

// TestValidate проверяет строгую проверку формата
func TestValidate(t *testing.T) {
	d := NewDecoder(nil)

	tests := []struct {
		code string
		want bool
	}{
		{"SIC-300-45-H08", true},
		{"si-525-30-h05", true},
		{"XXX-300-45-H08", false}, // неизвестный материал
		{"SIC-300", false},        // не хватает сегментов
		{"", false},
	}
	for _, tt := range tests {
		if got := d.Validate(tt.code); got != tt.want {
			t.Errorf("Validate(%q) = %v, ожидалось %v", tt.code, got, tt.want)
		}
	}
}

// TestDecodeBatchIsolation проверяет локализацию ошибок в пакетном режиме
func TestDecodeBatchIsolation(t *testing.T) {
	d := NewDecoder(nil)

	results := d.DecodeBatch([]string{"SIC-300-45-H08", "мусор", "SI-525-30-H05"})
	if len(results) != 3 {
		t.Fatalf("получено %d результатов, ожидалось 3", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("первый артикул: неожиданная ошибка %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Errorf("второй артикул: ожидалась ошибка")
	}
	if results[2].Err != nil {
		t.Errorf("третий артикул: неожиданная ошибка %v", results[2].Err)
	}
}

// TestDecodeConsistentWithRecord проверяет согласованность расшифровки
// артикула с полями самой записи каталога
func TestDecodeConsistentWithRecord(t *testing.T) {
	d := NewDecoder(nil)

	records := []catalog.DiscRecord{
		{ArticleCode: "SIC-300-45-H08", Material: catalog.MaterialSiC,
			ThicknessMicrons: 300, KerfWidthMicrons: 45, HubDiameterMm: 8},
		{ArticleCode: "SI-525-30-H05", Material: catalog.MaterialSilicon,
			ThicknessMicrons: 525, KerfWidthMicrons: 30, HubDiameterMm: 5},
		{ArticleCode: "GAA-100-20-H05", Material: catalog.MaterialGaAs,
			ThicknessMicrons: 100, KerfWidthMicrons: 20, HubDiameterMm: 5},
	}
	for _, rec := range records {
		spec, err := d.Decode(rec.ArticleCode)
		if err != nil {
			t.Fatalf("Decode(%q) вернул ошибку: %v", rec.ArticleCode, err)
		}
		if spec.Material != rec.Material {
			t.Errorf("%s: Material = %q, в записи %q", rec.ArticleCode, spec.Material, rec.Material)
		}
		if spec.ThicknessMicrons != rec.ThicknessMicrons {
			t.Errorf("%s: ThicknessMicrons = %g, в записи %g", rec.ArticleCode, spec.ThicknessMicrons, rec.ThicknessMicrons)
		}
		if spec.KerfWidthMicrons != rec.KerfWidthMicrons {
			t.Errorf("%s: KerfWidthMicrons = %g, в записи %g", rec.ArticleCode, spec.KerfWidthMicrons, rec.KerfWidthMicrons)
		}
		if spec.HubDiameterMm != rec.HubDiameterMm {
			t.Errorf("%s: HubDiameterMm = %g, в записи %g", rec.ArticleCode, spec.HubDiameterMm, rec.HubDiameterMm)
		}
	}
}

// TestFixedWidthGrammar проверяет разбор грамматики фиксированной ширины
func TestFixedWidthGrammar(t *testing.T) {
	g := &Grammar{
		Segments: []SegmentSpec{
			{
				Name:  "материал",
				Field: FieldMaterial,
				Kind:  SegmentVocab,
				Width: 2,
				Vocab: map[string]string{"SI": "Silicon", "SC": "SiC"},
			},
			{Name: "толщина", Field: FieldThickness, Kind: SegmentNumeric, Width: 3},
		},
	}
	d := NewDecoder(g)

	spec, err := d.Decode("SC300")
	if err != nil {
		t.Fatalf("Decode() вернул ошибку: %v", err)
	}
	if spec.Material != catalog.MaterialSiC || spec.ThicknessMicrons != 300 {
		t.Errorf("расшифровка %+v не совпала с ожидаемой", spec)
	}

	if _, err := d.Decode("SC30"); err == nil {
		t.Errorf("ожидалась ошибка для артикула неверной длины")
	}
}
