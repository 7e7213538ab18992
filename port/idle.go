package port

import "time"

// idleWaitPoll bounds how often IdleWait re-checks its pending predicate.
// Real hardware ports block on an actual interrupt; this is the closest Go
// analogue without a dedicated wake channel per idle cycle.
const idleWaitPoll = 200 * time.Microsecond

func idleBackoff() {
	time.Sleep(idleWaitPoll)
}
