package sim

import "testing"

func newBankerJob(number, maxDevices, allocated, requested int) *Job {
	return &Job{Number: number, MaxDevices: maxDevices, AllocatedDevices: allocated, RequestedDevices: requested}
}

func TestBankersSafe_GrantsWhenAvailabilityAndSafetyHold(t *testing.T) {
	// GIVEN two active jobs; job 1 requests 2 of 5 available devices and can
	// still finish with its max claim
	jobs := []*Job{
		newBankerJob(1, 4, 1, 2),
		newBankerJob(2, 4, 2, 0),
	}

	// THEN the request is judged safe
	if !BankersSafe(jobs, 1, 5) {
		t.Error("expected request to be judged safe")
	}
}

func TestBankersSafe_DeniesWhenRequestExceedsAvailable(t *testing.T) {
	// GIVEN a requester asking for more than the current available pool
	jobs := []*Job{newBankerJob(1, 10, 0, 6)}

	// THEN the request is denied (§4.4 step 2)
	if BankersSafe(jobs, 1, 5) {
		t.Error("expected request to be denied: request exceeds available")
	}
}

func TestBankersSafe_PanicsOnClaimViolation(t *testing.T) {
	// GIVEN a requester asking for more than its declared remaining claim
	// (max 4, allocated 3, so need = 1, but it requests 2)
	jobs := []*Job{newBankerJob(1, 4, 3, 2)}

	// THEN BankersSafe panics with a FatalError (§4.4 step 1)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on claim violation")
		}
		if _, ok := r.(*FatalError); !ok {
			t.Errorf("expected *FatalError panic, got %T", r)
		}
	}()
	BankersSafe(jobs, 1, 100)
}

func TestBankersSafe_PanicsWhenRequesterMissing(t *testing.T) {
	// GIVEN an active-job vector that does not include the requester
	jobs := []*Job{newBankerJob(2, 4, 0, 0)}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when requester is not in the active job set")
		}
	}()
	BankersSafe(jobs, 1, 10)
}

func TestBankersSafe_DeniesWhenNoJobCanFinishAfterTrialGrant(t *testing.T) {
	// GIVEN a single job (max=4, allocated=0) requesting exactly the 2
	// devices available. After the trial grant, available = 0, allocation
	// = 2, need = max-allocation = 2. The safety scan starts at work = 0,
	// so need(2) < work(0) is false and the job never "finishes".
	jobs := []*Job{newBankerJob(1, 4, 0, 2)}

	// THEN BankersSafe denies the request: no job can finish from work = 0.
	// Need (2) is above work (0), so the denial holds under `<` and `<=`
	// alike; this case does not sit on the need-equals-work boundary.
	if BankersSafe(jobs, 1, 2) {
		t.Error("expected denial: no job can finish after the trial grant")
	}
}
