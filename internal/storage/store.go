package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/spectra/internal/lattice"
	"github.com/san-kum/spectra/internal/spectral"
	"github.com/san-kum/spectra/internal/templates"
)

const (
	metadataFile = "metadata.json"
	tableFile    = "table.csv"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrBadTable    = errors.New("storage: malformed table")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id" cbor:"1,keyasint"`
	Template    string             `json:"template" cbor:"2,keyasint"`
	Mode        string             `json:"mode" cbor:"3,keyasint"`
	Timestamp   time.Time          `json:"timestamp" cbor:"4,keyasint"`
	Geometry    templates.Geometry `json:"geometry" cbor:"5,keyasint"`
	Hamiltonian lattice.Params     `json:"hamiltonian" cbor:"6,keyasint"`
	Sites       int                `json:"sites" cbor:"7,keyasint"`
	Samples     int                `json:"samples" cbor:"8,keyasint"`
	Moments     int                `json:"moments,omitempty" cbor:"9,keyasint,omitempty"`
	Degraded    bool               `json:"degraded,omitempty" cbor:"10,keyasint,omitempty"`
	Elapsed     float64            `json:"elapsed_seconds" cbor:"11,keyasint"`
}

// Table is a stored IDOS curve. DOS may be empty.
type Table struct {
	Energies []float64 `json:"energies" cbor:"1,keyasint"`
	IDOS     []float64 `json:"idos" cbor:"2,keyasint"`
	DOS      []float64 `json:"dos,omitempty" cbor:"3,keyasint,omitempty"`
}

func TableFrom(res *spectral.IDOSResult) Table {
	return Table{Energies: res.Energies, IDOS: res.IDOS, DOS: res.DOS}
}

// Save writes a new run and returns its id. meta.ID and meta.Timestamp
// are assigned here. A run that fails to save leaves no directory behind.
func (s *Store) Save(meta RunMetadata, table Table) (runID string, err error) {
	if len(table.Energies) != len(table.IDOS) {
		return "", fmt.Errorf("%w: %d energies, %d idos", ErrBadTable, len(table.Energies), len(table.IDOS))
	}
	if len(table.DOS) != 0 && len(table.DOS) != len(table.Energies) {
		return "", fmt.Errorf("%w: %d energies, %d dos", ErrBadTable, len(table.Energies), len(table.DOS))
	}

	runID = fmt.Sprintf("%s_%s", meta.Template, uuid.New().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
			runID = ""
		}
	}()

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Samples = len(table.Energies)

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), append(data, '\n'), 0644); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, tableFile))
	if err != nil {
		return "", err
	}
	if err := writeCSV(csvFile, table); err != nil {
		csvFile.Close()
		return "", err
	}
	if err := csvFile.Close(); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTable(runID string) (*Table, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, tableFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	table := &Table{}
	if len(records) < 2 {
		return table, nil
	}
	withDOS := len(records[0]) > 2

	for i, record := range records[1:] {
		if len(record) < 2 {
			return nil, fmt.Errorf("%w: row %d has %d fields", ErrBadTable, i+1, len(record))
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrBadTable, i+1, err)
			}
			vals[j] = v
		}
		table.Energies = append(table.Energies, vals[0])
		table.IDOS = append(table.IDOS, vals[1])
		if withDOS && len(vals) > 2 {
			table.DOS = append(table.DOS, vals[2])
		}
	}
	return table, nil
}
