package ports

import "github.com/jhoicas/goldfolio-api/internal/domain/entity"

// ReceiptPDFData datos ya resueltos para el comprobante (nombres en vez de ids).
type ReceiptPDFData struct {
	Receipt    *entity.DepositReceipt
	BranchName string
	CreatedBy  string
}

// ReceiptPDFGenerator genera el comprobante PDF de una boleta de depósito.
type ReceiptPDFGenerator interface {
	Generate(data ReceiptPDFData) ([]byte, error)
}
