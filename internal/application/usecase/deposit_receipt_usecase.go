package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/goldfolio-api/internal/application/access"
	"github.com/jhoicas/goldfolio-api/internal/application/dto"
	"github.com/jhoicas/goldfolio-api/internal/application/ports"
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
	"github.com/jhoicas/goldfolio-api/internal/domain/search"
	"github.com/jhoicas/goldfolio-api/internal/domain/validation"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
)

// DuplicateCheck resultado de la verificación de número de operación.
type DuplicateCheck struct {
	IsDuplicate bool
	Existing    *entity.DepositReceipt // primera coincidencia en orden del store
}

// DepositReceiptUseCase boletas de depósito con control antifraude de número de operación por banco.
type DepositReceiptUseCase struct {
	repo       repository.DepositReceiptRepository
	branchRepo repository.BranchRepository
	userRepo   repository.UserRepository
	pdf        ports.ReceiptPDFGenerator
	metrics    ports.Recorder
	log        *logger.Logger
	now        func() time.Time
}

// NewDepositReceiptUseCase construye el caso de uso.
func NewDepositReceiptUseCase(
	repo repository.DepositReceiptRepository,
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
	pdf ports.ReceiptPDFGenerator,
	metrics ports.Recorder,
	log *logger.Logger,
) *DepositReceiptUseCase {
	if metrics == nil {
		metrics = ports.NopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DepositReceiptUseCase{
		repo:       repo,
		branchRepo: branchRepo,
		userRepo:   userRepo,
		pdf:        pdf,
		metrics:    metrics,
		log:        log.Named("deposit_receipts"),
		now:        time.Now,
	}
}

// CheckDuplicate busca boletas con el mismo banco y número de operación (coincidencia exacta),
// descartando excludeID. No bloquea: la decisión la toma Create/Update.
func (uc *DepositReceiptUseCase) CheckDuplicate(ctx context.Context, bank, operationNumber, excludeID string) (*DuplicateCheck, error) {
	matches, err := uc.repo.FindByBankAndOperation(ctx, bank, operationNumber)
	if err != nil {
		return nil, fmt.Errorf("deposit_receipts: verificar duplicado: %w", err)
	}
	for _, m := range matches {
		if excludeID != "" && m.ID == excludeID {
			continue
		}
		return &DuplicateCheck{IsDuplicate: true, Existing: m}, nil
	}
	return &DuplicateCheck{}, nil
}

// CheckDuplicateFor versión interactiva para el formulario: arma el aviso y solo expone
// la boleta existente si está dentro del alcance de quien consulta.
func (uc *DepositReceiptUseCase) CheckDuplicateFor(ctx context.Context, p access.Principal, q dto.DuplicateCheckQuery) (*dto.DuplicateCheckResponse, error) {
	bank := strings.TrimSpace(q.Bank)
	op := strings.TrimSpace(q.OperationNumber)
	if bank == "" || op == "" {
		return &dto.DuplicateCheckResponse{}, nil
	}
	res, err := uc.CheckDuplicate(ctx, bank, op, strings.TrimSpace(q.ExcludeID))
	if err != nil {
		return nil, err
	}
	if !res.IsDuplicate {
		return &dto.DuplicateCheckResponse{}, nil
	}
	out := &dto.DuplicateCheckResponse{
		IsDuplicate: true,
		Warning:     DuplicateWarning(bank, res.Existing),
	}
	if p.Scope().Contains(res.Existing.BranchID) {
		out.ExistingReceipt = ToDepositReceiptResponse(res.Existing)
	}
	return out, nil
}

// DuplicateWarning texto del aviso interactivo.
func DuplicateWarning(bank string, existing *entity.DepositReceipt) string {
	return fmt.Sprintf("ALERTA: Este número de operación ya existe para %s. Registrado el %s por %s.",
		bank, existing.CreatedAt.Format("02/01/2006 15:04"), existing.ClientName)
}

// Create registra una boleta. Rechaza con DuplicateOperationError si (banco, operación) ya existe.
// La sucursal es la del usuario; MASTER puede indicar otra.
func (uc *DepositReceiptUseCase) Create(ctx context.Context, p access.Principal, in dto.DepositReceiptRequest) (*dto.DepositReceiptResponse, error) {
	receipt := &entity.DepositReceipt{
		ID:                   uuid.New().String(),
		ClientName:           strings.TrimSpace(in.ClientName),
		ClientID:             strings.TrimSpace(in.ClientID),
		Bank:                 strings.TrimSpace(in.Bank),
		DepositAmount:        in.DepositAmount,
		DepositCurrency:      entity.Currency(strings.TrimSpace(in.DepositCurrency)),
		OperationNumber:      strings.TrimSpace(in.OperationNumber),
		CounterpartyCurrency: entity.Currency(strings.TrimSpace(in.CounterpartyCurrency)),
		BranchID:             p.ReceiptBranch(strings.TrimSpace(in.BranchID)),
		CreatedBy:            p.UserID,
		CreatedAt:            uc.now().UTC(),
		Notes:                strings.TrimSpace(in.Notes),
	}
	if err := validation.ValidateDepositReceipt(receipt); err != nil {
		return nil, err
	}
	if err := uc.rejectDuplicate(ctx, p, receipt.Bank, receipt.OperationNumber, ""); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, receipt); err != nil {
		return nil, uc.storeError(ctx, p, "crear", receipt, err)
	}
	if receipt.BranchID == "" {
		uc.log.Warn().Str("receipt_id", receipt.ID).Str("user_id", p.UserID).Msg("boleta registrada sin sucursal")
	}
	uc.metrics.ReceiptCreated(string(receipt.DepositCurrency))
	return ToDepositReceiptResponse(receipt), nil
}

// GetByID obtiene una boleta dentro del alcance.
func (uc *DepositReceiptUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.DepositReceiptResponse, error) {
	receipt, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return ToDepositReceiptResponse(receipt), nil
}

// List boletas visibles, más recientes primero; filtra por banco y término de búsqueda.
func (uc *DepositReceiptUseCase) List(ctx context.Context, p access.Principal, q dto.DepositReceiptQuery) (*dto.DepositReceiptListResponse, error) {
	scope := p.ScopeFor(strings.TrimSpace(q.BranchID))
	if scope.Empty() {
		return &dto.DepositReceiptListResponse{Items: []dto.DepositReceiptResponse{}}, nil
	}
	list, err := uc.repo.List(ctx, repository.DepositReceiptFilter{
		BranchID: scope.Filter(),
		Bank:     strings.TrimSpace(q.Bank),
	})
	if err != nil {
		return nil, fmt.Errorf("deposit_receipts: listar: %w", err)
	}
	m := search.NewMatcher(q.Q)
	items := make([]dto.DepositReceiptResponse, 0, len(list))
	for _, r := range list {
		if m.Match(r.ClientName, r.OperationNumber, r.Bank) {
			items = append(items, *ToDepositReceiptResponse(r))
		}
	}
	return &dto.DepositReceiptListResponse{Items: items, Total: len(items)}, nil
}

// ListByBank boletas de un banco dentro del alcance.
func (uc *DepositReceiptUseCase) ListByBank(ctx context.Context, p access.Principal, bank string) (*dto.DepositReceiptListResponse, error) {
	if strings.TrimSpace(bank) == "" {
		return nil, domain.NewValidationError("bank", validation.MsgBankRequired)
	}
	return uc.List(ctx, p, dto.DepositReceiptQuery{Bank: bank})
}

// Banks bancos distintos visibles para el usuario.
func (uc *DepositReceiptUseCase) Banks(ctx context.Context, p access.Principal) (*dto.BankListResponse, error) {
	scope := p.Scope()
	if scope.Empty() {
		return &dto.BankListResponse{Items: []string{}}, nil
	}
	banks, err := uc.repo.ListBanks(ctx, scope.Filter())
	if err != nil {
		return nil, fmt.Errorf("deposit_receipts: bancos: %w", err)
	}
	return &dto.BankListResponse{Items: banks}, nil
}

// Update merge parcial. Verifica duplicados solo si cambia el banco o el número de operación.
func (uc *DepositReceiptUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateDepositReceiptRequest) (*dto.DepositReceiptResponse, error) {
	receipt, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	prevBank, prevOp := receipt.Bank, receipt.OperationNumber

	setTrimmed(&receipt.ClientName, in.ClientName)
	setTrimmed(&receipt.ClientID, in.ClientID)
	setTrimmed(&receipt.Bank, in.Bank)
	setTrimmed(&receipt.OperationNumber, in.OperationNumber)
	setTrimmed(&receipt.Notes, in.Notes)
	if in.DepositAmount != nil {
		receipt.DepositAmount = *in.DepositAmount
	}
	if in.DepositCurrency != nil {
		receipt.DepositCurrency = entity.Currency(strings.TrimSpace(*in.DepositCurrency))
	}
	if in.CounterpartyCurrency != nil {
		receipt.CounterpartyCurrency = entity.Currency(strings.TrimSpace(*in.CounterpartyCurrency))
	}
	if err := validation.ValidateDepositReceipt(receipt); err != nil {
		return nil, err
	}
	if receipt.Bank != prevBank || receipt.OperationNumber != prevOp {
		if err := uc.rejectDuplicate(ctx, p, receipt.Bank, receipt.OperationNumber, receipt.ID); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Update(ctx, receipt); err != nil {
		return nil, uc.storeError(ctx, p, "actualizar", receipt, err)
	}
	return ToDepositReceiptResponse(receipt), nil
}

// Delete baja definitiva de una boleta visible.
func (uc *DepositReceiptUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if _, err := uc.load(ctx, p, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deposit_receipts: eliminar: %w", err)
	}
	return nil
}

// PDF genera el comprobante de una boleta visible. Devuelve bytes y nombre de archivo.
func (uc *DepositReceiptUseCase) PDF(ctx context.Context, p access.Principal, id string) ([]byte, string, error) {
	receipt, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, "", err
	}
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("deposit_receipts: generador PDF no configurado")
	}
	data := ports.ReceiptPDFData{Receipt: receipt, BranchName: receipt.BranchID, CreatedBy: receipt.CreatedBy}
	if receipt.BranchID != "" {
		if b, err := uc.branchRepo.GetByID(ctx, receipt.BranchID); err == nil && b != nil {
			data.BranchName = b.Name
		}
	}
	if u, err := uc.userRepo.GetByID(ctx, receipt.CreatedBy); err == nil && u != nil {
		data.CreatedBy = u.Username
	}
	out, err := uc.pdf.Generate(data)
	if err != nil {
		return nil, "", fmt.Errorf("deposit_receipts: generar PDF: %w", err)
	}
	filename := fmt.Sprintf("boleta-%s-%s.pdf", sanitizeFilename(receipt.Bank), sanitizeFilename(receipt.OperationNumber))
	return out, filename, nil
}

func (uc *DepositReceiptUseCase) rejectDuplicate(ctx context.Context, p access.Principal, bank, op, excludeID string) error {
	res, err := uc.CheckDuplicate(ctx, bank, op, excludeID)
	if err != nil {
		return err
	}
	if !res.IsDuplicate {
		return nil
	}
	uc.metrics.DuplicateRejected(bank)
	uc.log.Warn().
		Str("bank", bank).
		Str("operation_number", op).
		Str("existing_id", res.Existing.ID).
		Str("user_id", p.UserID).
		Msg("número de operación duplicado rechazado")
	return uc.duplicateError(p, bank, op, res.Existing)
}

func (uc *DepositReceiptUseCase) duplicateError(p access.Principal, bank, op string, existing *entity.DepositReceipt) *domain.DuplicateOperationError {
	e := &domain.DuplicateOperationError{Bank: bank, OperationNumber: op}
	if existing != nil {
		e.ExistingID = existing.ID
		e.ExistingClient = existing.ClientName
		e.ExistingAt = existing.CreatedAt
		if p.Scope().Contains(existing.BranchID) {
			e.Existing = existing
		}
	}
	return e
}

// storeError traduce la violación del índice único (carrera entre dos altas) al mismo error de duplicado.
func (uc *DepositReceiptUseCase) storeError(ctx context.Context, p access.Principal, op string, r *entity.DepositReceipt, err error) error {
	if !errors.Is(err, domain.ErrDuplicate) {
		return fmt.Errorf("deposit_receipts: %s: %w", op, err)
	}
	uc.metrics.DuplicateRejected(r.Bank)
	uc.log.Warn().Str("bank", r.Bank).Str("operation_number", r.OperationNumber).Msg("duplicado detectado por el índice único")
	res, _ := uc.CheckDuplicate(ctx, r.Bank, r.OperationNumber, r.ID)
	var existing *entity.DepositReceipt
	if res != nil {
		existing = res.Existing
	}
	return uc.duplicateError(p, r.Bank, r.OperationNumber, existing)
}

func (uc *DepositReceiptUseCase) load(ctx context.Context, p access.Principal, id string) (*entity.DepositReceipt, error) {
	receipt, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deposit_receipts: obtener: %w", err)
	}
	if receipt == nil || !p.Scope().Contains(receipt.BranchID) {
		return nil, domain.ErrNotFound
	}
	return receipt, nil
}

func sanitizeFilename(s string) string {
	s = search.Fold(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r == ' ' || r == '_' || r == '/':
			return '-'
		}
		return -1
	}, s)
}

// ToDepositReceiptResponse mapea la boleta al DTO de salida.
func ToDepositReceiptResponse(r *entity.DepositReceipt) *dto.DepositReceiptResponse {
	if r == nil {
		return nil
	}
	return &dto.DepositReceiptResponse{
		ID:                   r.ID,
		ClientName:           r.ClientName,
		ClientID:             r.ClientID,
		Bank:                 r.Bank,
		DepositAmount:        r.DepositAmount,
		DepositCurrency:      string(r.DepositCurrency),
		OperationNumber:      r.OperationNumber,
		CounterpartyCurrency: string(r.CounterpartyCurrency),
		BranchID:             r.BranchID,
		CreatedBy:            r.CreatedBy,
		CreatedAt:            r.CreatedAt,
		Notes:                r.Notes,
	}
}
