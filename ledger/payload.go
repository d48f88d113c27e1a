package ledger

import (
	"fmt"
)

// Kind discriminates the payload variants stored in a block.
type Kind string

const (
	KindGenesis  Kind = "GENESIS"
	KindMint     Kind = "MINT"
	KindTransfer Kind = "TRANSFER"
)

// Payload is the closed set of events a block can record. Consumers
// switch exhaustively on the concrete type; there is no open-ended
// field bag to probe.
type Payload interface {
	// Kind returns the wire tag of the variant.
	Kind() Kind

	// Certificate returns the fingerprint the event refers to, or the
	// empty string for the genesis payload.
	Certificate() string

	// canonical returns the textual form fed to the hash linker. It is
	// stable across runs for identical field values.
	canonical() string
}

// Genesis anchors the chain. It carries no certificate fields.
type Genesis struct {
	Note string `json:"note"`
}

func (g Genesis) Kind() Kind          { return KindGenesis }
func (g Genesis) Certificate() string { return "" }

func (g Genesis) canonical() string {
	return fmt.Sprintf("%s|%s", KindGenesis, g.Note)
}

// Mint records the initial registration of a certificate and its first
// owner.
type Mint struct {
	CertHash    string `json:"cert_hash"`
	FileHash    string `json:"file_hash"`
	StudentName string `json:"student_name"`
	Course      string `json:"course"`
	Year        string `json:"year"`
	Owner       string `json:"owner"`
}

func (m Mint) Kind() Kind          { return KindMint }
func (m Mint) Certificate() string { return m.CertHash }

func (m Mint) canonical() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s",
		KindMint, m.CertHash, m.FileHash, m.StudentName, m.Course, m.Year, m.Owner)
}

// Transfer records a change of holder for an already registered
// certificate.
type Transfer struct {
	CertHash string `json:"cert_hash"`
	From     string `json:"from"`
	To       string `json:"to"`
}

func (t Transfer) Kind() Kind          { return KindTransfer }
func (t Transfer) Certificate() string { return t.CertHash }

func (t Transfer) canonical() string {
	return fmt.Sprintf("%s|%s|%s|%s", KindTransfer, t.CertHash, t.From, t.To)
}
