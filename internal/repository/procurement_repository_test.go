package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/testutil"
)

func TestProcurementRepository_CreateThenGetRoundTrips(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProcurementRepository(db)
	ctx := context.Background()

	p := newProcurement("PE-001/2024")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("expected an id to be assigned")
	}

	got, err := repo.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got.NumeroProcesso != p.NumeroProcesso || got.Modalidade != p.Modalidade ||
		got.Objeto != p.Objeto || got.OrgaoResponsavel != p.OrgaoResponsavel ||
		got.Status != p.Status || !got.DataAbertura.Equal(p.DataAbertura) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", p, got)
	}
	if got.DataEncerramento == nil || !got.DataEncerramento.Equal(*p.DataEncerramento) {
		t.Fatalf("expected data_encerramento %v, got %v", p.DataEncerramento, got.DataEncerramento)
	}
}

func TestProcurementRepository_CreateRejectsDuplicateProcessNumber(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProcurementRepository(db)

	mustCreateProcurement(t, db, "PE-001/2024")

	err := repo.Create(context.Background(), newProcurement("PE-001/2024"))
	if !errors.Is(err, ErrProcessNumberTaken) || !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrProcessNumberTaken, got %v", err)
	}
}

func TestProcurementRepository_CreateValidates(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProcurementRepository(db)

	p := newProcurement("PE-002/2024")
	p.Status = "  "
	if err := repo.Create(context.Background(), p); !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestProcurementRepository_UpdateOnlyTouchesSuppliedFields(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProcurementRepository(db)
	ctx := context.Background()

	p := mustCreateProcurement(t, db, "PE-001/2024")

	updated, err := repo.Update(ctx, p.ID, models.ProcurementPatch{Status: models.Some("Encerrada")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != "Encerrada" {
		t.Fatalf("expected status Encerrada, got %q", updated.Status)
	}

	got, _ := repo.Get(ctx, p.ID)
	if got.NumeroProcesso != p.NumeroProcesso || got.Objeto != p.Objeto ||
		got.DataEncerramento == nil || got.Status != "Encerrada" {
		t.Fatalf("unexpected stored procurement %+v", got)
	}

	cleared, err := repo.Update(ctx, p.ID, models.ProcurementPatch{DataEncerramento: models.Null[models.Date]()})
	if err != nil {
		t.Fatalf("Update clearing data_encerramento: %v", err)
	}
	if cleared.DataEncerramento != nil {
		t.Fatalf("expected data_encerramento to be cleared, got %v", cleared.DataEncerramento)
	}
}

func TestProcurementRepository_UpdateRejectsTakenProcessNumber(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProcurementRepository(db)
	ctx := context.Background()

	mustCreateProcurement(t, db, "PE-001/2024")
	second := mustCreateProcurement(t, db, "PE-002/2024")

	_, err := repo.Update(ctx, second.ID, models.ProcurementPatch{NumeroProcesso: models.Some("PE-001/2024")})
	if !errors.Is(err, ErrProcessNumberTaken) {
		t.Fatalf("expected ErrProcessNumberTaken, got %v", err)
	}

	got, _ := repo.Get(ctx, second.ID)
	if got.NumeroProcesso != "PE-002/2024" {
		t.Fatalf("expected stored number to be unchanged, got %q", got.NumeroProcesso)
	}
}

func TestProcurementRepository_DeleteRestrictsWhileContractsExist(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProcurementRepository(db)
	contracts := NewContractRepository(db)
	ctx := context.Background()

	p := mustCreateProcurement(t, db, "PE-001/2024")
	c := newContract("CT-001/2024", p.ID)
	if err := contracts.Create(ctx, c); err != nil {
		t.Fatalf("create contract: %v", err)
	}

	if err := repo.Delete(ctx, p.ID); !errors.Is(err, ErrProcurementHasContracts) {
		t.Fatalf("expected ErrProcurementHasContracts, got %v", err)
	}
	if _, err := repo.Get(ctx, p.ID); err != nil {
		t.Fatalf("expected procurement to survive, got %v", err)
	}

	if err := contracts.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete contract: %v", err)
	}
	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("expected delete to succeed once contracts are gone: %v", err)
	}
	if _, err := repo.Get(ctx, p.ID); !errors.Is(err, ErrProcurementNotFound) {
		t.Fatalf("expected ErrProcurementNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestProcurementRepository_ListFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProcurementRepository(db)
	ctx := context.Background()

	mustCreateProcurement(t, db, "PE-001/2024")
	closed := mustCreateProcurement(t, db, "PE-002/2024")
	if _, err := repo.Update(ctx, closed.ID, models.ProcurementPatch{Status: models.Some("Encerrada")}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	all, err := repo.List(ctx, ProcurementFilter{}, Page{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 procurements, got %d", len(all))
	}

	open, err := repo.List(ctx, ProcurementFilter{Status: "Aberta"}, Page{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(open) != 1 || open[0].NumeroProcesso != "PE-001/2024" {
		t.Fatalf("expected only PE-001/2024, got %+v", open)
	}
}
