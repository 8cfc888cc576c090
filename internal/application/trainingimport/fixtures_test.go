package trainingimport_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	app "github.com/ekaterinavoj/validity-view/internal/application/trainingimport"
	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func testCatalogue() app.Catalogue {
	return app.Catalogue{
		Employees: []domain.EmployeeRef{
			{ID: "emp-1", EmployeeNumber: "E001", Email: "alice@example.com"},
			{ID: "emp-2", EmployeeNumber: "E002", Email: "bob@example.com"},
			{ID: "emp-3", Email: "carol@example.com"},
		},
		TrainingTypes: []domain.TrainingTypeRef{
			{ID: "t-bozp", Name: "BOZP - Základní", Facility: "fac-1", PeriodDays: 365},
			{ID: "t-atex", Name: "ATEX", Facility: "fac-1", PeriodDays: 730},
			{ID: "t-heights", Name: "Práce ve výškách", Facility: "fac-2", PeriodDays: 365},
			{ID: "t-aid", Name: "První pomoc", Facility: "fac-1", PeriodDays: 730},
		},
		ExistingTrainings: []domain.ExistingTrainingRef{
			{ID: "tr-1", EmployeeID: "emp-1", TrainingTypeID: "t-atex", LastTrainingDate: date("2023-03-01")},
		},
	}
}

func row(number, email, typeName, facility, lastDate string) domain.ImportRow {
	return domain.ImportRow{
		EmployeeNumber:   number,
		Email:            email,
		TrainingTypeName: typeName,
		FacilityCode:     facility,
		LastTrainingDate: lastDate,
	}
}

// testRows covers every disposition. Row numbers start at 2.
func testRows() []domain.ImportRow {
	return []domain.ImportRow{
		row("E001", "", "BOZP - Základní", "fac-1", "2024-01-10"),      // 2 valid
		row("E002", "", "BOZP - Zakladni 2023", "fac-1", "2024-01-10"), // 3 auto_matched
		row("E002", "", "Prace ve vyskach", "fac-1", "2024-01-10"),     // 4 suggestion, cross facility
		row("E001", "", "ATEX", "fac-1", "2024-01-10"),                 // 5 duplicate
		row("E002", "", "BOZP - Základní", "fac-1", ""),                // 6 error: missing date
		row("", "", "ATEX", "fac-1", "2024-01-10"),                     // 7 error: no identity
		row("E999", "", "ATEX", "fac-1", "2024-01-10"),                 // 8 error: unknown employee
		row("E002", "", "Svařování", "fac-1", "2024-01-10"),            // 9 error: unknown type
		row("E002", "", "Prv pomoc", "fac-1", "2024-01-10"),            // 10 suggestion, same facility
		row("E002", "", "ATEX", "fac-1", "10.01.2024"),                 // 11 error: date format
		row("E002", "", "ATEX", "fac-1", "2024-02-30"),                 // 12 error: invalid date
		row("", "Carol@Example.com", "atex", "FAC-1", "2024-01-10"),    // 13 valid by email
	}
}

type fakeCatalogueReader struct {
	catalogue app.Catalogue
	err       error
	excluded  []bool
}

func (f *fakeCatalogueReader) ListEmployees(ctx context.Context) ([]domain.EmployeeRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.catalogue.Employees, nil
}

func (f *fakeCatalogueReader) ListTrainingTypes(ctx context.Context) ([]domain.TrainingTypeRef, error) {
	return f.catalogue.TrainingTypes, nil
}

func (f *fakeCatalogueReader) ListExistingTrainings(ctx context.Context, excludeDeleted bool) ([]domain.ExistingTrainingRef, error) {
	f.excluded = append(f.excluded, excludeDeleted)
	return f.catalogue.ExistingTrainings, nil
}

type updateCall struct {
	id     string
	fields domain.TrainingUpdate
}

type fakeWriter struct {
	mu sync.Mutex

	inserts       [][]domain.NewTrainingRecord
	updates       []updateCall
	failInsertAt  map[int]bool
	failUpdateIDs map[string]bool
	cancelledCtx  bool

	// onInsert runs inside InsertTrainings with the 0-based call index.
	onInsert func(call int)
}

func (f *fakeWriter) InsertTrainings(ctx context.Context, rows []domain.NewTrainingRecord) error {
	f.mu.Lock()
	call := len(f.inserts)
	f.inserts = append(f.inserts, append([]domain.NewTrainingRecord(nil), rows...))
	hook := f.onInsert
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if ctx.Err() != nil {
		f.cancelledCtx = true
	}
	if f.failInsertAt[call] {
		return fmt.Errorf("insert chunk %d: %w", call, errors.New("constraint violation"))
	}
	return nil
}

func (f *fakeWriter) UpdateTraining(ctx context.Context, id string, fields domain.TrainingUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updates = append(f.updates, updateCall{id: id, fields: fields})
	if f.failUpdateIDs[id] {
		return domain.ErrTrainingNotFound
	}
	return nil
}

func (f *fakeWriter) insertedRows() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := 0
	for _, chunk := range f.inserts {
		total += len(chunk)
	}
	return total
}

type fakeRunRecorder struct {
	runs []domain.ImportRun
	err  error
}

func (f *fakeRunRecorder) Record(ctx context.Context, run domain.ImportRun) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.runs = append(f.runs, run)
	return fmt.Sprintf("run-%d", len(f.runs)), nil
}
