package dashboard

import (
	"context"
	"sync"
)

// fakeGateway records calls and plays back configured results.
type fakeGateway struct {
	mu sync.Mutex

	currentProfile Profile
	currentErr     error
	profile        Profile
	profileErr     error
	plans          []Plan
	plansErr       error
	signOutErr     error

	currentCalls int
	profileCalls int
	plansCalls   int
	signOutCalls int

	lastProfileUserID string
}

func (f *fakeGateway) CurrentUser(context.Context, string) (Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentCalls++
	return f.currentProfile, f.currentErr
}

func (f *fakeGateway) Profile(_ context.Context, _, userID string) (Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCalls++
	f.lastProfileUserID = userID
	return f.profile, f.profileErr
}

func (f *fakeGateway) RecentPlans(context.Context, string) ([]Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plansCalls++
	return f.plans, f.plansErr
}

func (f *fakeGateway) SignOut(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOutCalls++
	return f.signOutErr
}

func (f *fakeGateway) setCurrentErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentErr = err
}
