// Banker's-algorithm request admission, grounded on SystemState::bankers_valid
// (original_source/SystemState.cpp). A pure function over a snapshot of
// active jobs: never mutates SimulationState, the caller commits a grant.

package sim

// BankersSafe reports whether granting requester's pending device request
// would leave the system in a safe state (§4.4). It panics with a
// *FatalError if requester's pending request exceeds its declared remaining
// claim — per §4.4 step 1, that is a programming error in the input, not a
// policy decision.
//
// activeJobs must be exactly {CPU} ∪ Ready ∪ Wait, in that order, which is
// the order the original builds its vector in.
func BankersSafe(activeJobs []*Job, requesterID int, available int) bool {
	n := len(activeJobs)
	requesterIdx := -1
	maxVec := make([]int, n)
	allocation := make([]int, n)
	need := make([]int, n)
	for i, j := range activeJobs {
		maxVec[i] = j.MaxDevices
		allocation[i] = j.AllocatedDevices
		need[i] = maxVec[i] - allocation[i]
		if j.Number == requesterID {
			requesterIdx = i
		}
	}
	if requesterIdx == -1 {
		panic(fatalf("bankers: requester %d not in active job set", requesterID))
	}

	request := activeJobs[requesterIdx].RequestedDevices

	// Step 1: claim check.
	if request > need[requesterIdx] {
		panic(fatalf("job %d exceeded its maximum device claim", requesterID))
	}
	// Step 2: availability.
	if request > available {
		return false
	}
	// Step 3: trial grant (never committed here).
	available -= request
	allocation[requesterIdx] += request
	need[requesterIdx] -= request

	// Safety algorithm. Note the strict `<` below (not `<=`) is preserved
	// from the source per §9/§4.4's bit-compatibility note: a job whose
	// Need exactly equals the current Work cannot "finish" under this
	// rule, diverging from the textbook `<=` formulation. Tests must not
	// depend on the exact-match boundary case.
	work := available
	finished := make([]bool, n)
	for {
		progressed := false
		for i := range activeJobs {
			if !finished[i] && need[i] < work {
				work += allocation[i]
				finished[i] = true
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	for _, f := range finished {
		if !f {
			return false
		}
	}
	return true
}
