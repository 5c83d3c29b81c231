package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/logger"
	"tahseel-backend/internal/reconcile"
	"tahseel-backend/internal/repository"

	"github.com/google/uuid"
)

type notebookService struct {
	notebookRepo  repository.NotebookRepository
	receiptRepo   repository.ReceiptRepository
	collectorRepo repository.CollectorRepository

	// Cutoff lookback for incremental runs that give no explicit since.
	incrementalWindow time.Duration

	// Serializes reconciliation runs within this process. Writes per scope
	// are transactional, so readers are safe either way; the lock keeps two
	// runs from doing the same work and interleaving their replacements.
	syncMu sync.Mutex
}

func NewNotebookService(
	notebookRepo repository.NotebookRepository,
	receiptRepo repository.ReceiptRepository,
	collectorRepo repository.CollectorRepository,
	incrementalWindow time.Duration,
) NotebookService {
	return &notebookService{
		notebookRepo:      notebookRepo,
		receiptRepo:       receiptRepo,
		collectorRepo:     collectorRepo,
		incrementalWindow: incrementalWindow,
	}
}

func (s *notebookService) Sync(ctx context.Context, opts domain.SyncOptions) (*domain.SyncSummary, error) {
	if !s.syncMu.TryLock() {
		return nil, domain.ErrSyncInProgress
	}
	defer s.syncMu.Unlock()

	summary := &domain.SyncSummary{
		RunID:       uuid.NewString(),
		Incremental: opts.Incremental,
		StartedAt:   time.Now().UTC(),
	}
	logger.EnterMethod("notebookService.Sync", "runID", summary.RunID, "incremental", opts.Incremental)

	scopes, err := s.resolveScopes(ctx, opts)
	if err != nil {
		logger.ExitMethodWithError("notebookService.Sync", err, "runID", summary.RunID)
		return nil, err
	}

	for _, collectorID := range scopes {
		if err := s.syncCollector(ctx, collectorID, summary); err != nil {
			logger.ExitMethodWithError("notebookService.Sync", err, "runID", summary.RunID)
			return nil, err
		}
		summary.CollectorsAffected++
	}

	summary.Duration = time.Since(summary.StartedAt)
	logger.ExitMethod("notebookService.Sync", "runID", summary.RunID,
		"collectors", summary.CollectorsAffected, "notebooks", summary.NotebooksUpserted,
		"missing", summary.MissingFound, "pending", summary.PendingCount)
	return summary, nil
}

// resolveScopes decides which collectors to rebuild. A full run covers every
// collector plus the unassigned pool; an incremental run covers only
// collectors with receipts created since the cutoff. Each affected scope is
// still rebuilt from its complete receipt history.
func (s *notebookService) resolveScopes(ctx context.Context, opts domain.SyncOptions) ([]*int32, error) {
	if opts.Incremental {
		since := opts.Since
		if since.IsZero() {
			since = time.Now().UTC().Add(-s.incrementalWindow)
		}
		return s.receiptRepo.ListCollectorIDsModifiedSince(ctx, since)
	}

	collectors, err := s.collectorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	scopes := make([]*int32, 0, len(collectors)+1)
	for i := range collectors {
		id := collectors[i].ID
		scopes = append(scopes, &id)
	}
	scopes = append(scopes, nil) // unassigned pool
	return scopes, nil
}

func (s *notebookService) syncCollector(ctx context.Context, collectorID *int32, summary *domain.SyncSummary) error {
	receipts, err := s.receiptRepo.ListByCollector(ctx, collectorID)
	if err != nil {
		return err
	}

	annotations, err := s.loadAnnotations(ctx, collectorID)
	if err != nil {
		return err
	}

	slips := make([]reconcile.Slip, len(receipts))
	for i, r := range receipts {
		slips[i] = reconcile.Slip{Number: r.ReceiptNumber, Date: r.Date}
	}

	blocks := reconcile.BuildBlocks(slips)
	notebooks := make([]domain.Notebook, len(blocks))
	for i, b := range blocks {
		notebooks[i] = s.blockToNotebook(b, collectorID, annotations)
		summary.MissingFound += len(notebooks[i].MissingReceipts)
		summary.PendingCount += len(notebooks[i].PendingReceipts)
	}
	summary.NotebooksUpserted += len(notebooks)

	// A collector whose receipts vanished still gets replaced so stale
	// notebooks are cleared.
	return s.notebookRepo.ReplaceForCollector(ctx, collectorID, notebooks)
}

type annotationKey struct {
	Start  int32
	Number int32
}

type annotation struct {
	Status domain.MissingReceiptStatus
	Notes  string
}

// loadAnnotations snapshots human edits on currently missing slips so they
// survive the wholesale replacement, as long as the slip stays missing.
func (s *notebookService) loadAnnotations(ctx context.Context, collectorID *int32) (map[annotationKey]annotation, error) {
	existing, err := s.notebookRepo.ListForCollector(ctx, collectorID)
	if err != nil {
		return nil, err
	}

	annotations := make(map[annotationKey]annotation)
	for _, nb := range existing {
		for _, m := range nb.MissingReceipts {
			if m.Status == domain.MissingStatusMissing && m.Notes == "" {
				continue
			}
			annotations[annotationKey{Start: nb.StartNumber, Number: m.ReceiptNumber}] = annotation{
				Status: m.Status,
				Notes:  m.Notes,
			}
		}
	}
	return annotations, nil
}

func (s *notebookService) blockToNotebook(b reconcile.Block, collectorID *int32, annotations map[annotationKey]annotation) domain.Notebook {
	nb := domain.Notebook{
		CollectorID:     collectorID,
		StartNumber:     b.Start,
		EndNumber:       b.End,
		Status:          domain.NotebookStatusInUse,
		MinUsed:         b.MinUsed,
		MaxUsed:         b.MaxUsed,
		PendingReceipts: b.Pending,
	}
	if b.Complete {
		nb.Status = domain.NotebookStatusComplete
	}

	for _, m := range b.Missing {
		entry := domain.MissingReceipt{
			ReceiptNumber: m.Number,
			EstimatedDate: m.EstimatedDate,
			Status:        domain.MissingStatusMissing,
		}
		if prior, ok := annotations[annotationKey{Start: b.Start, Number: m.Number}]; ok {
			entry.Status = prior.Status
			entry.Notes = prior.Notes
		}
		nb.MissingReceipts = append(nb.MissingReceipts, entry)
	}
	return nb
}

func (s *notebookService) Annotate(ctx context.Context, notebookID, receiptNumber int32, status domain.MissingReceiptStatus, notes string) (*domain.Notebook, error) {
	switch status {
	case domain.MissingStatusMissing, domain.MissingStatusCancelled, domain.MissingStatusDamaged, domain.MissingStatusEntryError:
	default:
		return nil, fmt.Errorf("invalid missing receipt status %q", status)
	}
	return s.notebookRepo.UpdateMissingEntry(ctx, notebookID, receiptNumber, status, notes)
}

func (s *notebookService) Get(ctx context.Context, id int32) (*domain.Notebook, error) {
	return s.notebookRepo.GetByID(ctx, id)
}

func (s *notebookService) List(ctx context.Context, filter domain.NotebookFilter) ([]domain.Notebook, error) {
	return s.notebookRepo.List(ctx, filter)
}

// FindReceipt classifies a raw slip number. A recorded receipt wins outright,
// even one entered after the last sync rebuilt the notebooks; only then is the
// number classified against stored notebook state as missing, pending, or
// unknown when no notebook covers it.
func (s *notebookService) FindReceipt(ctx context.Context, receiptNumber int32, collectorID *int32) (*domain.ReceiptLookup, error) {
	receipts, err := s.receiptRepo.FindByNumber(ctx, receiptNumber, collectorID)
	if err != nil {
		return nil, err
	}
	if len(receipts) > 0 {
		lookup := &domain.ReceiptLookup{Status: domain.LookupStatusUsed, Receipt: &receipts[0]}
		covering, err := s.notebookRepo.FindByNumber(ctx, receiptNumber, receipts[0].CollectorID)
		if err != nil {
			return nil, err
		}
		if len(covering) > 0 {
			lookup.Notebook = &covering[0]
		}
		return lookup, nil
	}

	notebooks, err := s.notebookRepo.FindByNumber(ctx, receiptNumber, collectorID)
	if err != nil {
		return nil, err
	}
	if len(notebooks) == 0 {
		return &domain.ReceiptLookup{Status: domain.LookupStatusUnknown}, nil
	}

	// Without a collector filter several notebooks can cover the number; a
	// notebook that actually accounts for the slip wins over one where it is
	// merely pending.
	var fallback *domain.ReceiptLookup
	for i := range notebooks {
		nb := notebooks[i]
		if lookup := classifyInNotebook(&nb, receiptNumber); lookup != nil {
			if lookup.Status != domain.LookupStatusPending {
				return lookup, nil
			}
			if fallback == nil {
				fallback = lookup
			}
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return &domain.ReceiptLookup{Status: domain.LookupStatusUnknown}, nil
}

func classifyInNotebook(nb *domain.Notebook, number int32) *domain.ReceiptLookup {
	for i := range nb.MissingReceipts {
		if nb.MissingReceipts[i].ReceiptNumber == number {
			return &domain.ReceiptLookup{
				Status:   domain.LookupStatusMissing,
				Missing:  &nb.MissingReceipts[i],
				Notebook: nb,
			}
		}
	}
	for _, p := range nb.PendingReceipts {
		if p == number {
			return &domain.ReceiptLookup{Status: domain.LookupStatusPending, Notebook: nb}
		}
	}
	if number >= nb.MinUsed && number <= nb.MaxUsed {
		return &domain.ReceiptLookup{Status: domain.LookupStatusUsed, Notebook: nb}
	}
	return nil
}

func (s *notebookService) Overview(ctx context.Context) ([]domain.NotebookOverviewRow, error) {
	notebooks, err := s.notebookRepo.List(ctx, domain.NotebookFilter{})
	if err != nil {
		return nil, err
	}

	rows := make([]domain.NotebookOverviewRow, len(notebooks))
	for i, nb := range notebooks {
		used := nb.MaxUsed - nb.MinUsed + 1 - int32(len(nb.MissingReceipts))
		total := nb.EndNumber - nb.StartNumber + 1
		name := nb.CollectorName
		if nb.CollectorID == nil {
			name = "Unassigned"
		}
		rows[i] = domain.NotebookOverviewRow{
			NotebookID:           nb.ID,
			NotebookRange:        fmt.Sprintf("%d-%d", nb.StartNumber, nb.EndNumber),
			CollectorName:        name,
			TotalReceipts:        total,
			UsedReceiptsCount:    used,
			MissingReceiptsCount: int32(len(nb.MissingReceipts)),
			PendingReceiptsCount: int32(len(nb.PendingReceipts)),
			CompletionPercentage: float64(used) / float64(total) * 100,
			Status:               string(nb.Status),
			UpdatedAt:            nb.UpdatedAt,
		}
	}
	return rows, nil
}

func (s *notebookService) ListMissing(ctx context.Context, year int, collectorID, fundID *int32, search string) ([]domain.MissingReceiptDetail, error) {
	return s.notebookRepo.ListMissingInYear(ctx, year, collectorID, fundID, search)
}
