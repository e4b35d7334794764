package agyo

// Documento come compare nel listing della console TeamSystem/Agyo.
// I campi sono il sottoinsieme del payload che il motore usa davvero.
type Invoice struct {
	ID                  string  `json:"id"`
	Number              string  `json:"number"`
	Date                string  `json:"date"`
	DocumentType        string  `json:"documentType"`
	RecipientID         string  `json:"recipientId"`
	RecipientName       string  `json:"recipientName"`
	RecipientCode       string  `json:"recipientCode"`
	RecipientFiscalCode string  `json:"recipientFiscalCode"`
	SenderID            string  `json:"senderId"`
	TotalAmount         float64 `json:"totalAmount"`
	PaymentAmount       float64 `json:"paymentAmount"`
	StampDutyAmount     float64 `json:"stampDutyAmount"`
	FlowType            string  `json:"flowType"`
	Trashed             bool    `json:"trashed"`
}

// listResponse involucro HAL del listing.
type listResponse struct {
	Embedded struct {
		Invoices []Invoice `json:"invoices"`
	} `json:"_embedded"`
}

// nonceResponse risposta del portale alla richiesta di nonce.
type nonceResponse struct {
	Nonce string `json:"nonce"`
}

// loginRequest corpo della login al portale.
type loginRequest struct {
	ID     string `json:"id"`
	Digest string `json:"digest"`
}

// loginResponse risposta della login: il token è il bearer da usare
// verso la console.
type loginResponse struct {
	Token string `json:"token"`
}
