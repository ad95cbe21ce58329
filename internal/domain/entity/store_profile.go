package entity

// StoreProfile es el único documento de configuración del negocio.
// Se lee y escribe completo; cada guardado pisa el anterior (sin historial).
type StoreProfile struct {
	BusinessName   string `json:"businessName,omitempty"`
	CUIT           string `json:"cuit,omitempty"`
	Address        string `json:"address,omitempty"`
	IVACondition   string `json:"ivaCondition,omitempty"` // Responsable Inscripto, Monotributo, etc.
	SellerPIN      string `json:"sellerPin,omitempty"`    // 4 dígitos; vacío equivale a "0000"
	AFIPCertBase64 string `json:"afipCert,omitempty"`     // credenciales AFIP (solo almacenadas, el stub no las usa)
	AFIPKeyBase64  string `json:"afipKey,omitempty"`
}

// DefaultSellerPIN es el PIN asumido cuando el perfil no tiene uno configurado.
const DefaultSellerPIN = "0000"

// PIN devuelve el PIN efectivo del perfil.
func (p StoreProfile) PIN() string {
	if p.SellerPIN == "" {
		return DefaultSellerPIN
	}
	return p.SellerPIN
}
