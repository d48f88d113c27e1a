package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/harik/certchain/registry"
)

// maxPromptAttempts bounds how often an empty answer is re-asked
// before the flow is aborted.
const maxPromptAttempts = 3

// errPromptAborted signals that the user gave no usable answer.
var errPromptAborted = errors.New("prompt aborted")

// promptRequired asks for a non-empty value, retrying a bounded number
// of times.
func promptRequired(label string) (string, error) {
	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		value, err := pterm.DefaultInteractiveTextInput.Show(label)
		if err != nil {
			return "", fmt.Errorf("could not read input: %w", err)
		}
		value = strings.TrimSpace(value)
		if value != "" {
			return value, nil
		}
		pterm.Warning.Println("A value is required.")
	}

	return "", fmt.Errorf("%w: no answer after %d attempts", errPromptAborted, maxPromptAttempts)
}

func mintFlow(reg *registry.Registry) {
	pterm.DefaultSection.Println("Mint/Register Certificate")

	student, err := promptRequired("Student name")
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	course, err := promptRequired("Course name")
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	year, err := promptRequired("Year (e.g., 2025)")
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	path, err := promptRequired("Path to certificate file (PDF/image)")
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	block, certHash, err := reg.Mint(path, student, course, year)
	if errors.Is(err, registry.ErrDuplicateCertificate) {
		pterm.Error.Printfln("Certificate already registered with hash: %s", certHash)
		return
	}
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Success.Printfln("Minted certificate. Block index: %d", block.Index)
	pterm.Info.Printfln("Certificate fingerprint (cert_hash): %s", certHash)
}

func transferFlow(reg *registry.Registry) {
	pterm.DefaultSection.Println("Transfer Certificate")

	certHash, err := promptRequired("Certificate fingerprint (cert_hash)")
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	owner, err := reg.Owner(certHash)
	if errors.Is(err, registry.ErrUnknownCertificate) {
		pterm.Error.Println("No record found for that certificate.")
		return
	}
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	pterm.Info.Printfln("Current owner: %s", owner)

	newOwner, err := promptRequired("New owner/holder identifier (email or org)")
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	block, err := reg.Transfer(certHash, newOwner)
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Success.Printfln("Transfer recorded. Block index: %d", block.Index)
}

func verifyFlow(reg *registry.Registry) {
	pterm.DefaultSection.Println("Verify Certificate")

	certHash, err := promptRequired("Certificate fingerprint (cert_hash)")
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	history, owner, err := reg.Verify(certHash)
	if errors.Is(err, registry.ErrUnknownCertificate) {
		pterm.Error.Println("No record found for that certificate.")
		return
	}
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Success.Println("Certificate found. History:")
	for _, block := range history {
		pterm.Println(summarizeBlock(block))
	}
	pterm.Info.Printfln("Current owner/holder: %s", owner)
}

func viewLedger(reg *registry.Registry) {
	pterm.DefaultSection.Println("Full Ledger")

	for _, block := range reg.Ledger() {
		pterm.Println(summarizeBlock(block))
	}
}
