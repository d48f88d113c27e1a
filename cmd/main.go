package main

import (
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/harik/certchain/ledger"
	"github.com/harik/certchain/registry"
	"github.com/harik/certchain/storage"
)

const (
	success = 0
	failure = 1
)

const (
	optionMint     = "Mint/register certificate"
	optionTransfer = "Transfer certificate (change owner/holder)"
	optionVerify   = "Verify certificate (history)"
	optionLedger   = "View full ledger"
	optionExit     = "Exit"
)

func main() {
	os.Exit(run())
}

func run() int {

	// Command line parameter initialization.
	var (
		flagChain string
		flagLevel string
	)

	pflag.StringVarP(&flagChain, "chain", "c", "cert_chain.json", "path to the chain file")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	// The chain lives in a single file rewritten on every append; the
	// store loads it back or signals the blockchain to start fresh.
	store := storage.NewFileStore(flagChain)
	chain := ledger.New(log, store)
	reg := registry.New(log, chain)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Cert", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Chain", pterm.FgDarkGray.ToStyle()),
	).Render()
	pterm.Info.Println("Decentralized Academic Certificate Registry")
	pterm.Println()

	for {
		choice, err := pterm.DefaultInteractiveSelect.
			WithOptions([]string{optionMint, optionTransfer, optionVerify, optionLedger, optionExit}).
			Show("Choose an option")
		if err != nil {
			log.Error().Err(err).Msg("could not read menu choice")
			return failure
		}

		switch choice {
		case optionMint:
			mintFlow(reg)
		case optionTransfer:
			transferFlow(reg)
		case optionVerify:
			verifyFlow(reg)
		case optionLedger:
			viewLedger(reg)
		case optionExit:
			pterm.Info.Println("Bye.")
			return success
		}

		pterm.Println()
	}
}
