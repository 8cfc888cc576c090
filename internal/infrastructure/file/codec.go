package file

import (
	"io"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
)

// Codec bundles decoding and workbook rendering for the HTTP layer.
type Codec struct{}

func (Codec) Decode(fileName string, payload []byte) ([]domain.ImportRow, error) {
	return Decode(fileName, payload)
}

func (Codec) WriteErrorWorkbook(w io.Writer, rows []domain.RejectedRow) error {
	return WriteErrorWorkbook(w, rows)
}

func (Codec) WriteTemplate(w io.Writer) error {
	return WriteTemplate(w)
}
