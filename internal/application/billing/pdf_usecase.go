package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/repository"
)

// PDFUseCase genera la representación imprimible (PDF) de una factura o nota
// crédito.
type PDFUseCase struct {
	documentRepo repository.DocumentRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	settingRepo  repository.SettingRepository
	generator    PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	documentRepo repository.DocumentRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	settingRepo repository.SettingRepository,
	generator PDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		documentRepo: documentRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		settingRepo:  settingRepo,
		generator:    generator,
	}
}

// DownloadDocumentPDF carga documento, cliente, datos del negocio y líneas
// enriquecidas con nombre de producto, y genera el PDF.
func (uc *PDFUseCase) DownloadDocumentPDF(ctx context.Context, documentID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.documentRepo.GetByID(documentID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}

	customer, err := uc.customerRepo.GetByID(doc.CustomerID)
	if err != nil || customer == nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}

	setting, err := uc.settingRepo.Get()
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener configuración: %w", err)
	}

	rawLines, err := uc.documentRepo.GetLines(documentID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	enriched := make([]DocumentLineForPDF, 0, len(rawLines))
	for _, l := range rawLines {
		name := "Producto " + l.ProductID // fallback
		if product, pErr := uc.productRepo.GetByID(l.ProductID); pErr == nil && product != nil {
			name = product.Name
		}
		enriched = append(enriched, DocumentLineForPDF{
			Name:      name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}

	pdfBytes, err = uc.generator.GenerateDocumentPDF(doc, setting, customer, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("%s_%s.pdf", doc.Kind, strings.ReplaceAll(doc.Number, "/", "-"))
	return pdfBytes, filename, nil
}
