package garden

// Quick-touch token ledger.
//
// Quick touches are cheap, so they're rate limited: one token is earned
// per two completed contact cycles, where a cycle is any successful
// REGULAR or DEEP action. QUICK actions themselves never advance the
// cycle counter.
const cyclesPerToken = 2

// earnCycle advances the cycle counter for a REGULAR/DEEP action and
// returns the updated (cycles, tokens) pair plus the token delta to
// report in feedback.
//
// Reaching the threshold sets the balance to exactly 1, not +1, so a
// hoarded token is never stacked.
func earnCycle(cycles, tokens int) (newCycles, newTokens, tokenChange int) {
	cycles++
	if cycles < cyclesPerToken {
		return cycles, tokens, 0
	}
	return 0, 1, 1 - tokens
}
