package importer

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"prodtrack/internal/config"
	"prodtrack/internal/model"
	"prodtrack/internal/store"
)

// specRow is one data row of a generated specification workbook.
type specRow struct {
	name   string
	amount string
	cost   string
	wage   string
	// header marks the name cell with the marker fill; bold additionally
	// makes it a product header.
	header bool
	bold   bool
}

// writeWorkbook builds a styled specification file on disk and returns
// its path. The file name carries the object number.
func writeWorkbook(t *testing.T, filename string, rows []specRow) string {
	t.Helper()

	cfg := config.DefaultConfig().Import

	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet(cfg.SheetName); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("delete default sheet: %v", err)
	}

	for cell, value := range map[string]string{
		"B1": "Наименование",
		"L1": "Итого\nруб",
		"O1": "З/п",
	} {
		if err := f.SetCellValue(cfg.SheetName, cell, value); err != nil {
			t.Fatalf("set header %s: %v", cell, err)
		}
	}

	productStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"33CCFF"}},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		t.Fatalf("product style: %v", err)
	}
	partStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"33CCFF"}},
	})
	if err != nil {
		t.Fatalf("part style: %v", err)
	}

	for i, row := range rows {
		idx := cfg.StartRow + i
		for col, value := range map[int]string{2: row.name, 8: row.amount, 12: row.cost, 15: row.wage} {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col, idx)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(cfg.SheetName, cell, value); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}

		if row.header {
			style := partStyle
			if row.bold {
				style = productStyle
			}
			nameCell, err := excelize.CoordinatesToCellName(2, idx)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellStyle(cfg.SheetName, nameCell, nameCell, style); err != nil {
				t.Fatalf("set style: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), filename)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "prodtrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// runImport drains the progress stream and returns the final done
// report, failing the test on any error event.
func runImport(t *testing.T, c *Coordinator, opts ImportOptions) *model.ImportReport {
	t.Helper()

	var report *model.ImportReport
	for event := range c.Import(opts) {
		switch event.Type {
		case "error":
			t.Fatalf("import failed: %s", event.Message)
		case "done":
			r, ok := event.Data.(*model.ImportReport)
			if !ok {
				t.Fatalf("done event without report: %+v", event)
			}
			report = r
		}
	}
	if report == nil {
		t.Fatalf("stream ended without a done event")
	}
	return report
}

func TestCoordinator_Import(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, "4821 Щит управления.xlsx", []specRow{
		{name: "Щит", amount: "2", cost: "1000", wage: "200", header: true, bold: true},
		{name: "Сборка", amount: "1", header: true},
		{name: "Провод", cost: "500"},
	})

	st := newTestStore(t)
	c := NewCoordinator(st, config.DefaultConfig().Import)

	report := runImport(t, c, ImportOptions{FilePath: path})

	if report.ObjectNumber != "4821" {
		t.Fatalf("unexpected object number: %q", report.ObjectNumber)
	}
	if report.Products != 1 || report.Parts != 1 {
		t.Fatalf("unexpected counts: %d products, %d parts", report.Products, report.Parts)
	}

	obj, products, err := st.GetObject(report.ObjectID)
	if err != nil {
		t.Fatalf("get object: %v", err)
	}
	if obj == nil || obj.ObjNumber != "4821" {
		t.Fatalf("object not persisted: %+v", obj)
	}
	if len(products) != 1 {
		t.Fatalf("unexpected product count: %d", len(products))
	}
	p := products[0]
	if p.ProdNumber != "1" || p.Name != "Щит" || p.Amount != 2 || p.Price != 100 {
		t.Fatalf("unexpected product: %+v", p)
	}
	if len(p.Parts) != 1 || p.Parts[0].Name != "Сборка" || p.Parts[0].Price != "50.00" {
		t.Fatalf("unexpected parts: %+v", p.Parts)
	}

	logs, err := st.ListImportLogs(10)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != "completed" || logs[0].Products != 1 {
		t.Fatalf("unexpected import log: %+v", logs[0])
	}
}

func TestCoordinator_SourceNameOverride(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, "upload.xlsx", []specRow{
		{name: "Щит", amount: "1", cost: "100", wage: "80", header: true, bold: true},
	})

	st := newTestStore(t)
	c := NewCoordinator(st, config.DefaultConfig().Import)

	report := runImport(t, c, ImportOptions{
		FilePath:   path,
		SourceName: "7700 Щит распределительный.xlsx",
	})
	if report.ObjectNumber != "7700" {
		t.Fatalf("unexpected object number: %q", report.ObjectNumber)
	}
}

func TestCoordinator_BlacklistSnapshot(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, "5100 Пульт.xlsx", []specRow{
		{name: "Пульт", amount: "1", cost: "1000", wage: "300", header: true, bold: true},
		{name: "Метизы М6", amount: "1", header: true},
		{name: "Болт", cost: "200"},
	})

	st := newTestStore(t)
	if _, err := st.AddBlacklistPattern("Метизы*"); err != nil {
		t.Fatalf("add blacklist pattern: %v", err)
	}
	c := NewCoordinator(st, config.DefaultConfig().Import)

	report := runImport(t, c, ImportOptions{FilePath: path})
	if report.Products != 1 || report.Parts != 0 {
		t.Fatalf("unexpected counts: %d products, %d parts", report.Products, report.Parts)
	}
}

func TestCoordinator_FailedRunPersistsNothing(t *testing.T) {
	t.Parallel()

	// Two consecutive product headers without parts between them.
	path := writeWorkbook(t, "6600 Шкаф.xlsx", []specRow{
		{name: "Шкаф", amount: "1", cost: "100", wage: "50", header: true, bold: true},
		{name: "Шкаф 2", amount: "1", cost: "100", wage: "50", header: true, bold: true},
	})

	st := newTestStore(t)
	c := NewCoordinator(st, config.DefaultConfig().Import)

	var failed bool
	for event := range c.Import(ImportOptions{FilePath: path}) {
		if event.Type == "error" {
			failed = true
		}
		if event.Type == "done" {
			t.Fatalf("unexpected done event: %+v", event)
		}
	}
	if !failed {
		t.Fatalf("expected an error event")
	}

	objects, err := st.ListObjects()
	if err != nil {
		t.Fatalf("list objects: %v", err)
	}
	if len(objects) != 0 {
		t.Fatalf("catalog not empty after failed run: %d objects", len(objects))
	}

	logs, err := st.ListImportLogs(10)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != "failed" || logs[0].ErrorMessage == "" {
		t.Fatalf("unexpected import log: %+v", logs[0])
	}
}

func TestCoordinator_UnreadableFile(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	c := NewCoordinator(st, config.DefaultConfig().Import)

	var failed bool
	for event := range c.Import(ImportOptions{
		FilePath:   filepath.Join(t.TempDir(), "1234 нет файла.xlsx"),
		SourceName: "1234 нет файла.xlsx",
	}) {
		if event.Type == "error" {
			failed = true
		}
	}
	if !failed {
		t.Fatalf("expected an error event")
	}
}
