package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fxamacker/cbor/v2"
)

// Record is a complete run as exported.
type Record struct {
	Meta  RunMetadata `json:"meta" cbor:"1,keyasint"`
	Table Table       `json:"table" cbor:"2,keyasint"`
}

var (
	recordEncMode cbor.EncMode
	recordDecMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	recordEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create record CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}
	recordDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create record CBOR decoder mode: %v", err))
	}
}

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatCBOR Format = "cbor"
)

// Export writes a stored run to w.
func (s *Store) Export(runID string, format Format, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	table, err := s.LoadTable(runID)
	if err != nil {
		return err
	}
	rec := Record{Meta: *meta, Table: *table}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case FormatCSV:
		return writeCSV(w, rec.Table)
	case FormatCBOR:
		return recordEncMode.NewEncoder(w).Encode(rec)
	}
	return fmt.Errorf("unknown export format: %s", format)
}

// DecodeCBOR reads one record written by Export with FormatCBOR.
func DecodeCBOR(r io.Reader) (*Record, error) {
	var rec Record
	if err := recordDecMode.NewDecoder(r).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func writeCSV(w io.Writer, table Table) error {
	cw := csv.NewWriter(w)

	header := []string{"energy", "idos"}
	if len(table.DOS) > 0 {
		header = append(header, "dos")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range table.Energies {
		row := []string{formatFloat(table.Energies[i]), formatFloat(table.IDOS[i])}
		if len(table.DOS) > 0 {
			row = append(row, formatFloat(table.DOS[i]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
