package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	"github.com/harik/certchain/ledger"
)

// FileStore keeps the whole chain in a single JSON file. Every save
// rewrites the file through a temporary file and an atomic rename, so
// a crash mid-write never leaves a half-written chain behind.
type FileStore struct {
	path     string
	validate *validator.Validate
}

// NewFileStore creates a store backed by the file at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:     path,
		validate: validator.New(),
	}
}

// record is the strict wire shape of one persisted block. Fields are
// pointers so an absent field is distinguishable from a zero value.
type record struct {
	Index       *int            `json:"index" validate:"required"`
	Timestamp   *int64          `json:"timestamp" validate:"required"`
	PrevHash    *string         `json:"prev_hash" validate:"required,len=64,hexadecimal"`
	Data        json.RawMessage `json:"data" validate:"required"`
	CurrentHash *string         `json:"current_hash" validate:"required,len=64,hexadecimal"`
}

// payloadRecord is the union of all payload fields. Which ones must be
// present, and which must be absent, depends on the type tag.
type payloadRecord struct {
	Type        *string `json:"type" validate:"required,oneof=GENESIS MINT TRANSFER"`
	Note        *string `json:"note"`
	CertHash    *string `json:"cert_hash"`
	FileHash    *string `json:"file_hash"`
	StudentName *string `json:"student_name"`
	Course      *string `json:"course"`
	Year        *string `json:"year"`
	Owner       *string `json:"owner"`
	From        *string `json:"from"`
	To          *string `json:"to"`
}

// Load reads the persisted chain back, field for field. Any record
// with a missing, extra or mistyped field fails the load; failures
// across records are collected so the error names every bad record at
// once. A missing file surfaces as an os.ErrNotExist so callers can
// tell a first run from a corrupt chain.
func (f *FileStore) Load() ([]ledger.Block, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("could not read chain file: %w", err)
	}

	var raws []json.RawMessage
	err = json.Unmarshal(data, &raws)
	if err != nil {
		return nil, fmt.Errorf("could not decode chain file: %w", err)
	}

	blocks := make([]ledger.Block, 0, len(raws))
	var errs *multierror.Error
	for i, raw := range raws {
		block, err := f.decodeRecord(raw)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("invalid record %d: %w", i, err))
			continue
		}
		blocks = append(blocks, block)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return blocks, nil
}

// Save rewrites the full chain as an indented JSON array, replacing
// the previous file atomically.
func (f *FileStore) Save(blocks []ledger.Block) error {
	data, err := json.MarshalIndent(blocks, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode chain: %w", err)
	}

	tmp := f.path + ".tmp"
	err = os.WriteFile(tmp, data, 0644)
	if err != nil {
		return fmt.Errorf("could not write chain file: %w", err)
	}
	err = os.Rename(tmp, f.path)
	if err != nil {
		return fmt.Errorf("could not replace chain file: %w", err)
	}

	return nil
}

// decodeRecord strictly decodes and validates one block record.
func (f *FileStore) decodeRecord(raw json.RawMessage) (ledger.Block, error) {
	var rec record
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	err := dec.Decode(&rec)
	if err != nil {
		return ledger.Block{}, fmt.Errorf("could not decode record: %w", err)
	}
	err = f.validate.Struct(rec)
	if err != nil {
		return ledger.Block{}, fmt.Errorf("invalid record fields: %w", err)
	}

	payload, err := f.decodePayload(rec.Data)
	if err != nil {
		return ledger.Block{}, err
	}

	return ledger.Block{
		Index:       *rec.Index,
		Timestamp:   *rec.Timestamp,
		PrevHash:    *rec.PrevHash,
		Payload:     payload,
		CurrentHash: *rec.CurrentHash,
	}, nil
}

// decodePayload checks the payload record against its variant schema
// and builds the typed payload.
func (f *FileStore) decodePayload(raw json.RawMessage) (ledger.Payload, error) {
	var rec payloadRecord
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	err := dec.Decode(&rec)
	if err != nil {
		return nil, fmt.Errorf("could not decode payload: %w", err)
	}
	err = f.validate.Struct(rec)
	if err != nil {
		return nil, fmt.Errorf("invalid payload fields: %w", err)
	}

	fields := map[string]*string{
		"note":         rec.Note,
		"cert_hash":    rec.CertHash,
		"file_hash":    rec.FileHash,
		"student_name": rec.StudentName,
		"course":       rec.Course,
		"year":         rec.Year,
		"owner":        rec.Owner,
		"from":         rec.From,
		"to":           rec.To,
	}

	var want []string
	switch ledger.Kind(*rec.Type) {
	case ledger.KindGenesis:
		want = []string{"note"}
	case ledger.KindMint:
		want = []string{"cert_hash", "file_hash", "student_name", "course", "year", "owner"}
	case ledger.KindTransfer:
		want = []string{"cert_hash", "from", "to"}
	}

	var errs *multierror.Error
	wanted := make(map[string]bool, len(want))
	for _, name := range want {
		wanted[name] = true
		if fields[name] == nil {
			errs = multierror.Append(errs, fmt.Errorf("%s payload misses field %q", *rec.Type, name))
		}
	}
	for name, value := range fields {
		if value != nil && !wanted[name] {
			errs = multierror.Append(errs, fmt.Errorf("%s payload carries foreign field %q", *rec.Type, name))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	switch ledger.Kind(*rec.Type) {
	case ledger.KindGenesis:
		return ledger.Genesis{Note: str(rec.Note)}, nil
	case ledger.KindMint:
		return ledger.Mint{
			CertHash:    *rec.CertHash,
			FileHash:    *rec.FileHash,
			StudentName: *rec.StudentName,
			Course:      *rec.Course,
			Year:        *rec.Year,
			Owner:       *rec.Owner,
		}, nil
	case ledger.KindTransfer:
		return ledger.Transfer{
			CertHash: *rec.CertHash,
			From:     *rec.From,
			To:       *rec.To,
		}, nil
	default:
		return nil, fmt.Errorf("unknown payload type %q", *rec.Type)
	}
}
