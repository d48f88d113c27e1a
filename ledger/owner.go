package ledger

// ResolveOwner derives the current holder of a certificate from its
// ordered event history, oldest first. A mint sets the owner, each
// transfer overwrites it with the receiving party; the last event
// wins. The boolean is false when the history contains no ownership
// event at all.
func ResolveOwner(history []Block) (string, bool) {
	owner := ""
	found := false
	for _, block := range history {
		switch payload := block.Payload.(type) {
		case Mint:
			owner = payload.Owner
			found = true
		case Transfer:
			owner = payload.To
			found = true
		case Genesis:
			// Genesis carries no ownership information.
		}
	}

	return owner, found
}
