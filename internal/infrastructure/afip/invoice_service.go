package afip

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/beevik/etree"

	"github.com/jmorales/ventaspro-api/internal/application/ports"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

// Verificar en tiempo de compilación que InvoiceService implementa Invoicer.
var _ ports.Invoicer = (*InvoiceService)(nil)

const (
	// caeValidityDays vigencia del CAE según RG 4291 (aprox).
	caeValidityDays = 10

	invoiceTypeB = "B" // consumidor final
	invoiceTypeA = "A" // responsable inscripto con CUIT
)

// InvoiceService emite comprobantes simulados con la forma del WSFEv1 de AFIP.
// Construye el request FECAESolicitar real (sirve para inspección y homologación)
// pero no lo envía: el CAE y el número se generan localmente. Una venta nunca se
// bloquea por facturación; el caller decide qué hacer ante un error.
type InvoiceService struct {
	puntoVenta  int
	environment string // "testing" | "production"
	log         *logger.Logger

	mu         sync.Mutex
	lastNumber map[string]int64 // por tipo de comprobante
}

// NewInvoiceService construye el emisor.
func NewInvoiceService(puntoVenta int, environment string, log *logger.Logger) *InvoiceService {
	if puntoVenta <= 0 {
		puntoVenta = 1
	}
	return &InvoiceService{
		puntoVenta:  puntoVenta,
		environment: environment,
		log:         log,
		lastNumber:  make(map[string]int64),
	}
}

// Authorize genera el comprobante para la venta. El tipo sale del documento del
// receptor: CUIT de 11 dígitos emite factura A, cualquier otro caso factura B.
func (s *InvoiceService) Authorize(ctx context.Context, sale *entity.Sale, profile entity.StoreProfile, customerDoc string) (*entity.InvoiceData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("afip: venta nula")
	}

	invoiceType := invoiceTypeB
	if len(customerDoc) == 11 {
		invoiceType = invoiceTypeA
	}

	s.mu.Lock()
	s.lastNumber[invoiceType]++
	number := s.lastNumber[invoiceType]
	s.mu.Unlock()

	cae, err := generateCAE()
	if err != nil {
		return nil, fmt.Errorf("afip: generar CAE: %w", err)
	}

	inv := &entity.InvoiceData{
		CAE:         cae,
		CAEExpiry:   time.Now().AddDate(0, 0, caeValidityDays),
		InvoiceType: invoiceType,
		PuntoVenta:  s.puntoVenta,
		Number:      number,
		CustomerDoc: customerDoc,
	}

	// El XML se arma igual que para el WS real; en modo simulado solo se loguea.
	doc := s.buildRequest(sale, profile, inv)
	if s.log != nil {
		raw, _ := doc.WriteToString()
		s.log.Debug().
			Str("cae", inv.CAE).
			Str("tipo", inv.InvoiceType).
			Int64("numero", inv.Number).
			Int("request_bytes", len(raw)).
			Msg("Comprobante autorizado (simulado)")
	}
	return inv, nil
}

// buildRequest arma el cuerpo FECAESolicitar del WSFEv1.
func (s *InvoiceService) buildRequest(sale *entity.Sale, profile entity.StoreProfile, inv *entity.InvoiceData) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("FECAESolicitar")
	root.CreateAttr("xmlns", "http://ar.gov.afip.dif.FEV1/")

	auth := root.CreateElement("Auth")
	auth.CreateElement("Cuit").SetText(profile.CUIT)

	req := root.CreateElement("FeCAEReq")
	cab := req.CreateElement("FeCabReq")
	cab.CreateElement("CantReg").SetText("1")
	cab.CreateElement("PtoVta").SetText(fmt.Sprintf("%d", inv.PuntoVenta))
	cab.CreateElement("CbteTipo").SetText(cbteTipo(inv.InvoiceType))

	det := req.CreateElement("FeDetReq").CreateElement("FECAEDetRequest")
	det.CreateElement("Concepto").SetText("1") // productos
	if inv.InvoiceType == invoiceTypeA {
		det.CreateElement("DocTipo").SetText("80") // CUIT
		det.CreateElement("DocNro").SetText(inv.CustomerDoc)
	} else {
		det.CreateElement("DocTipo").SetText("99") // consumidor final
		det.CreateElement("DocNro").SetText("0")
	}
	det.CreateElement("CbteDesde").SetText(fmt.Sprintf("%d", inv.Number))
	det.CreateElement("CbteHasta").SetText(fmt.Sprintf("%d", inv.Number))
	det.CreateElement("CbteFch").SetText(sale.Timestamp.Format("20060102"))
	det.CreateElement("ImpTotal").SetText(sale.TotalAmount.StringFixed(2))
	det.CreateElement("MonId").SetText("PES")
	det.CreateElement("MonCotiz").SetText("1")

	return doc
}

// cbteTipo mapea el tipo de factura al código de comprobante de AFIP.
func cbteTipo(invoiceType string) string {
	if invoiceType == invoiceTypeA {
		return "1" // Factura A
	}
	return "6" // Factura B
}

// generateCAE produce un código de 14 dígitos con el mismo formato que emite AFIP.
func generateCAE() (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(13), nil) // 10^13
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	// Primer dígito fijo en 7 como los CAE reales de homologación.
	return fmt.Sprintf("7%013d", n), nil
}
