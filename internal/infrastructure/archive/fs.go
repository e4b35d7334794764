// Package archive è l'archivio XML locale: una directory documents/ nella
// home dell'applicazione in cui ogni documento è salvato con il nome
// canonico derivato dal suo contenuto.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	documentsDir = "documents"
	dirMode      = 0o755
	fileMode     = 0o644
)

// FS archivio su filesystem. Implementa billing.DocumentArchive.
type FS struct {
	homeDir string
}

// Provision crea la home dell'applicazione e la directory documents/ se
// mancanti e restituisce l'archivio pronto all'uso.
func Provision(homeDir string) (*FS, error) {
	if err := os.MkdirAll(filepath.Join(homeDir, documentsDir), dirMode); err != nil {
		return nil, fmt.Errorf("archivio: provisioning %s: %w", homeDir, err)
	}
	return &FS{homeDir: homeDir}, nil
}

// WriteDocument salva il contenuto XML con il nome dato; una scrittura
// ripetuta sovrascrive, così il sync è rieseguibile.
func (a *FS) WriteDocument(filename string, data []byte) error {
	path := filepath.Join(a.homeDir, documentsDir, filename)
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return fmt.Errorf("archivio: scrittura %s: %w", filename, err)
	}
	return nil
}

// ReadDocument rilegge un documento archiviato.
func (a *FS) ReadDocument(filename string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(a.homeDir, documentsDir, filename))
	if err != nil {
		return nil, fmt.Errorf("archivio: lettura %s: %w", filename, err)
	}
	return data, nil
}

// DocumentsDir restituisce il percorso assoluto della directory documenti.
func (a *FS) DocumentsDir() string {
	return filepath.Join(a.homeDir, documentsDir)
}
