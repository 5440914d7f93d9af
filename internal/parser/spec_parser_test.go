package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// testRow is one data row of a generated specification workbook.
type testRow struct {
	kind   RowKind
	name   string
	amount string
	cost   string
	wage   string
}

func product(name, amount, cost, wage string) testRow {
	return testRow{kind: RowProductHeader, name: name, amount: amount, cost: cost, wage: wage}
}

func part(name, amount string) testRow {
	return testRow{kind: RowPartHeader, name: name, amount: amount}
}

func cont(name, cost string) testRow {
	return testRow{kind: RowContinuation, name: name, cost: cost}
}

// buildWorkbook writes a styled specification sheet the way the
// production office formats them: marker fill on header name cells,
// bold on product headers, data from row 11.
func buildWorkbook(t *testing.T, rows []testRow) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	_, err := f.NewSheet(DefaultSheetName)
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))

	require.NoError(t, f.SetCellValue(DefaultSheetName, "B1", headerName))
	require.NoError(t, f.SetCellValue(DefaultSheetName, "L1", headerTotalRub))
	require.NoError(t, f.SetCellValue(DefaultSheetName, "O1", headerWage))

	productStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"33CCFF"}},
		Font: &excelize.Font{Bold: true},
	})
	require.NoError(t, err)

	partStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"33CCFF"}},
	})
	require.NoError(t, err)

	for i, row := range rows {
		idx := DefaultStartRow + i
		setCell := func(col int, value string) {
			if value == "" {
				return
			}
			cell, err := excelize.CoordinatesToCellName(col, idx)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(DefaultSheetName, cell, value))
		}

		setCell(colName, row.name)
		setCell(colAmount, row.amount)
		setCell(colCost, row.cost)
		setCell(colWage, row.wage)

		nameCell, err := excelize.CoordinatesToCellName(colName, idx)
		require.NoError(t, err)
		switch row.kind {
		case RowProductHeader:
			require.NoError(t, f.SetCellStyle(DefaultSheetName, nameCell, nameCell, productStyle))
		case RowPartHeader:
			require.NoError(t, f.SetCellStyle(DefaultSheetName, nameCell, nameCell, partStyle))
		}
	}

	t.Cleanup(func() { _ = f.Close() })
	return f
}

func parseWorkbook(t *testing.T, rows []testRow, blacklist ...string) ([]EmittedProduct, error) {
	t.Helper()
	f := buildWorkbook(t, rows)
	return NewSpecParser(f, Options{Blacklist: blacklist}).Parse()
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RowBlank, Classify(SheetRow{}))
	assert.Equal(t, RowProductHeader, Classify(SheetRow{Name: "Изделие", Marker: true, Bold: true}))
	assert.Equal(t, RowPartHeader, Classify(SheetRow{Name: "Часть", Marker: true}))
	assert.Equal(t, RowContinuation, Classify(SheetRow{Name: "Провод", Bold: true}))
	assert.Equal(t, RowContinuation, Classify(SheetRow{Name: "Провод"}))
}

func TestSheetReader_MarkerAndBold(t *testing.T) {
	t.Parallel()

	f := buildWorkbook(t, []testRow{
		product("Изделие", "2", "1000", "200"),
		part("Часть", "1"),
		cont("Провод", "500"),
	})
	reader := NewSheetReader(f, DefaultSheetName, DefaultMarkerColor)

	row, err := reader.Row(DefaultStartRow)
	require.NoError(t, err)
	assert.True(t, row.Marker)
	assert.True(t, row.Bold)
	assert.Equal(t, "Изделие", row.Name)

	row, err = reader.Row(DefaultStartRow + 1)
	require.NoError(t, err)
	assert.True(t, row.Marker)
	assert.False(t, row.Bold)

	row, err = reader.Row(DefaultStartRow + 2)
	require.NoError(t, err)
	assert.False(t, row.Marker)

	row, err = reader.Row(DefaultStartRow + 3)
	require.NoError(t, err)
	assert.Equal(t, RowBlank, Classify(row))
}

func TestParse_EndToEnd(t *testing.T) {
	t.Parallel()

	products, err := parseWorkbook(t, []testRow{
		product("Изделие", "2", "1000", "200"),
		part("Часть", "1"),
		cont("Комплектующие", "500"),
	})
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "1", p.Number)
	assert.Equal(t, "Изделие", p.Name)
	assert.EqualValues(t, 2, p.Amount)
	assert.EqualValues(t, 100, p.Price) // floor(200 / 2)
	require.Len(t, p.Parts, 1)
	assert.Equal(t, "Часть", p.Parts[0].Name)
	assert.Equal(t, "50.00", p.Parts[0].Payment.StringFixed(2))
}

func TestParse_RangeExpandedProduct(t *testing.T) {
	t.Parallel()

	products, err := parseWorkbook(t, []testRow{
		product("А1 - А3", "3", "900", "300"),
		part("Часть", "1"),
		cont("Комплектующие", "450"),
	})
	require.NoError(t, err)
	require.Len(t, products, 3)

	// pay = floor(300 / 3) = 100, payment = ((450/1)/900)*100 = 50.00
	wantNames := []string{"А1", "А2", "А3"}
	wantNumbers := []string{"1-1", "1-2", "1-3"}
	for i, p := range products {
		assert.Equal(t, wantNames[i], p.Name)
		assert.Equal(t, wantNumbers[i], p.Number)
		assert.EqualValues(t, 1, p.Amount)
		assert.EqualValues(t, 100, p.Price)
		require.Len(t, p.Parts, 1)
		assert.Equal(t, "50.00", p.Parts[0].Payment.StringFixed(2))
	}
}

func TestParse_SkippedProduct(t *testing.T) {
	t.Parallel()

	products, err := parseWorkbook(t, []testRow{
		product("Изделие 1", "1", "1000", "100"),
		part("Часть 1", "1"),
		cont("Комплектующие", "100"),
		product("Не оценено", "1", "500", "0"), // wage numerator 0: not yet priced
		part("Часть 2", "1"),
		cont("Комплектующие", "999"),
		product("Изделие 2", "1", "1000", "100"),
		part("Часть 3", "1"),
		cont("Комплектующие", "200"),
	})
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Изделие 1", products[0].Name)
	assert.Equal(t, "Изделие 2", products[1].Name)

	// The skipped product's rows leak into nothing: the second
	// product's part price reflects only its own continuation rows.
	require.Len(t, products[1].Parts, 1)
	assert.Equal(t, "20.00", products[1].Parts[0].Payment.StringFixed(2))

	// Numbering width counts non-skipped headers only.
	assert.Equal(t, "1", products[0].Number)
	assert.Equal(t, "2", products[1].Number)
}

func TestParse_BlacklistDiscardsAllParts(t *testing.T) {
	t.Parallel()

	products, err := parseWorkbook(t, []testRow{
		product("Изделие", "1", "1000", "100"),
		part("Часть", "1"),
		cont("Комплектующие", "300"),
		cont("Лист стальной", "100"), // matches the blacklist
		part("Ещё часть", "1"),
		cont("Комплектующие", "200"),
	}, "Лист*")
	require.NoError(t, err)
	require.Len(t, products, 1)

	// Parts were scanned and accumulated, then wiped.
	assert.Empty(t, products[0].Parts)
	assert.Equal(t, "Изделие", products[0].Name)
}

func TestParse_BlacklistedPartHeader(t *testing.T) {
	t.Parallel()

	products, err := parseWorkbook(t, []testRow{
		product("Изделие", "1", "1000", "100"),
		part("Лист", "1"), // blacklisted part header opens no part
		cont("Комплектующие", "500"),
		product("Изделие 2", "1", "1000", "100"),
		part("Часть", "1"),
		cont("Комплектующие", "100"),
	}, "Лист")
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Empty(t, products[0].Parts)
	require.Len(t, products[1].Parts, 1)
	assert.Equal(t, "10.00", products[1].Parts[0].Payment.StringFixed(2))
}

func TestParse_BlankRowTerminatesScan(t *testing.T) {
	t.Parallel()

	rows := []testRow{
		product("Изделие", "1", "1000", "100"),
		part("Часть", "1"),
		cont("Комплектующие", "100"),
		{kind: RowBlank},
		product("После пропуска", "1", "1000", "100"),
	}
	f := buildWorkbook(t, rows)

	products, err := NewSpecParser(f, Options{}).Parse()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Изделие", products[0].Name)
}

func TestParse_ZeroUnitPriceAborts(t *testing.T) {
	t.Parallel()

	_, err := parseWorkbook(t, []testRow{
		product("Изделие", "1", "", "100"), // no unit price
		part("Часть", "1"),
		cont("Комплектующие", "100"),
	})
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestParse_MalformedRangeAborts(t *testing.T) {
	t.Parallel()

	_, err := parseWorkbook(t, []testRow{
		product("А5 - А1", "2", "1000", "100"),
		part("Часть", "1"),
		cont("Комплектующие", "100"),
	})
	require.ErrorIs(t, err, ErrMalformedRange)
}

func TestValidate_EmptyProduct(t *testing.T) {
	t.Parallel()

	_, err := parseWorkbook(t, []testRow{
		product("Изделие 1", "1", "1000", "100"),
		product("Изделие 2", "1", "1000", "100"),
	})
	require.ErrorIs(t, err, ErrEmptyProduct)
}

func TestValidate_EquipmentWithoutProduct(t *testing.T) {
	t.Parallel()

	_, err := parseWorkbook(t, []testRow{
		part("Часть", "1"),
		product("Изделие", "1", "1000", "100"),
	})
	require.ErrorIs(t, err, ErrEquipmentWithoutProduct)
}

func TestValidate_MissingSheet(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	_, err := NewSpecParser(f, Options{}).Parse()
	require.ErrorIs(t, err, ErrSheetFormat)
}

func TestValidate_WrongHeaderCell(t *testing.T) {
	t.Parallel()

	f := buildWorkbook(t, []testRow{
		product("Изделие", "1", "1000", "100"),
		cont("Комплектующие", "100"),
	})
	require.NoError(t, f.SetCellValue(DefaultSheetName, "B1", "Название"))

	_, err := NewSpecParser(f, Options{}).Parse()
	require.ErrorIs(t, err, ErrSheetFormat)
}

func TestObjectNumberFromFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "4821", ObjectNumberFromFilename("4821 Щит управления.xlsx"))
	assert.Equal(t, "спецификация.xlsx", ObjectNumberFromFilename("спецификация.xlsx"))
	assert.Equal(t, "", ObjectNumberFromFilename("   "))
}
