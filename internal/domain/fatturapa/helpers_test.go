package fatturapa_test

import "github.com/nitonic/fatture-cli/internal/domain/entity"

// buildDoc costruisce un documento minimo ma coerente per i test del package.
func buildDoc(tipo entity.TipoDocumento, data, numero string) entity.Document {
	var d entity.Document
	d.Header.DatiTrasmissione = entity.DatiTrasmissione{
		IdTrasmittente:      entity.IDFiscale{IdPaese: "IT", IdCodice: "01234567890"},
		ProgressivoInvio:    "abc123def4",
		FormatoTrasmissione: "FPR12",
		CodiceDestinatario:  "0000000",
	}
	d.Header.CedentePrestatore = entity.CedentePrestatore{
		DatiAnagrafici: entity.DatiAnagrafici{
			IdFiscaleIVA:  entity.IDFiscale{IdPaese: "IT", IdCodice: "01234567890"},
			CodiceFiscale: "RSSMRA80A01H501U",
			Anagrafica:    entity.Anagrafica{Denominazione: "NITONIC DI MARIO ROSSI"},
			RegimeFiscale: "RF19",
		},
		Sede: entity.Sede{
			Indirizzo: "VIA ROMA", NumeroCivico: "1", CAP: "90100",
			Comune: "PALERMO", Provincia: "PA", Nazione: "IT",
		},
		IscrizioneREA: entity.IscrizioneREA{Ufficio: "PA", NumeroREA: "123456", StatoLiquidazione: "LN"},
	}
	d.Header.CessionarioCommittente = entity.CessionarioCommittente{
		DatiAnagrafici: entity.DatiAnagrafici{
			IdFiscaleIVA: entity.IDFiscale{IdPaese: "IT", IdCodice: "09876543210"},
			Anagrafica:   entity.Anagrafica{Denominazione: "ACME S.R.L."},
		},
		Sede: entity.Sede{
			Indirizzo: "VIA MILANO", NumeroCivico: "2", CAP: "20100",
			Comune: "MILANO", Provincia: "MI", Nazione: "IT",
		},
	}
	d.Body.DatiGenerali.DatiGeneraliDocumento = entity.DatiGeneraliDocumento{
		TipoDocumento:          tipo,
		Divisa:                 "EUR",
		Data:                   data,
		Numero:                 numero,
		DatiBollo:              entity.DatiBollo{BolloVirtuale: "SI", ImportoBollo: "2.00"},
		ImportoTotaleDocumento: "3910.00",
		Causale:                "DITTA IN REGIME CONTABILE FORFETTARIO L. 190/2014 - ART. 1 C. 54/89",
	}
	d.Body.DatiBeniServizi = entity.DatiBeniServizi{
		DettaglioLinee: entity.DettaglioLinee{
			NumeroLinea: "1", Descrizione: "Prestazione di servizi",
			Quantita: "1.00", PrezzoUnitario: "3910.00", PrezzoTotale: "3910.00",
			AliquotaIVA: "0.00", Natura: "N2.2",
		},
		DatiRiepilogo: entity.DatiRiepilogo{
			AliquotaIVA: "0.00", Natura: "N2.2", Arrotondamento: "0.00",
			ImponibileImporto: "3910.00", Imposta: "0.00",
		},
	}
	d.Body.DatiPagamento = entity.DatiPagamento{
		CondizioniPagamento: "TP02",
		DettaglioPagamento: entity.DettaglioPagamento{
			Beneficiario:                    "MARIO ROSSI",
			ModalitaPagamento:               "MP05",
			DataRiferimentoTerminiPagamento: data,
			ImportoPagamento:                "3910.00",
			IstitutoFinanziario:             "BANCA INTESA SAN PAOLO",
			IBAN:                            "IT84O0306904632100000000120",
			ABI:                             "03069",
			CAB:                             "04632",
		},
	}
	return d
}
