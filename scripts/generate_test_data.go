package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"
)

// Генератор тестового каталога дисков: книга XLSX с листом на материал
// и русскими заголовками колонок, как в исходной базе поставщика.

var headers = []string{
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

// материал -> токен артикула из встроенной грамматики
var materials = []struct {
	sheet string
	token string
}{
	{"Silicon", "SI"},
	{"SiC", "SIC"},
	{"GaAs", "GAA"},
	{"Sapphire", "SAP"},
	{"GaN", "GAN"},
	{"Glass", "GLS"},
}

var cutTypes = []string{"Полный рез", "Полурез", "Канавка"}

func main() {
	gofakeit.Seed(0)

	rowsPerSheet := 40
	outDir := filepath.Join("tests", "data")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, m := range materials {
		sheet := m.sheet
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				log.Fatalf("Failed to create sheet %s: %v", sheet, err)
			}
		}

		for col, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				log.Fatalf("Failed to write header: %v", err)
			}
		}

		for row := 0; row < rowsPerSheet; row++ {
			thickness := float64(gofakeit.Number(5, 30) * 25) // 125..750 мкм
			kerf := float64(gofakeit.Number(20, 80))
			hub := float64(gofakeit.Number(5, 12))
			article := fmt.Sprintf("%s-%.0f-%.0f-H%02.0f", m.token, thickness, kerf, hub)

			values := []interface{}{
				article,
				gofakeit.RandomString(cutTypes),
				thickness,
				kerf,
				hub,
				float64(gofakeit.Number(50, 58)),
				gofakeit.Number(2, 30),
				gofakeit.Float64Range(5, 40),
				gofakeit.Float64Range(10, 120),
				gofakeit.Number(1000, 50000),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					log.Fatalf("Failed to write cell: %v", err)
				}
			}
		}
		fmt.Printf("Generated sheet %s: %d rows\n", sheet, rowsPerSheet)
	}

	filename := filepath.Join(outDir, "test_catalog.xlsx")
	if err := f.SaveAs(filename); err != nil {
		log.Fatalf("Failed to save workbook: %v", err)
	}
	fmt.Printf("Catalog written to %s\n", filename)
}
