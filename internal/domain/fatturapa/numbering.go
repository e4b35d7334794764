package fatturapa

import "github.com/nitonic/fatture-cli/internal/domain/entity"

// NextNumber calcola il prossimo numero di sequenza per un tipo documento
// nell'anno fiscale indicato: 1 + max(numero) sul sottoinsieme del corpus
// con quel tipo e data di emissione in quell'anno. Sottoinsieme vuoto -> 1.
//
// L'ambito è sempre l'anno fiscale del documento da creare, non l'anno
// corrente al momento della chiamata: le numerazioni ripartono da 1 a ogni
// cambio d'anno, per ciascun tipo in modo indipendente. In caso di numeri
// duplicati nel corpus vince comunque il massimo numerico.
func NextNumber(docs []entity.Document, tipo entity.TipoDocumento, anno int) int {
	max := 0
	for _, d := range docs {
		if d.Tipo() != tipo {
			continue
		}
		if d.DataEmissione().Year() != anno {
			continue
		}
		if n := d.NumeroInt(); n > max {
			max = n
		}
	}
	return max + 1
}
