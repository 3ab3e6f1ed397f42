package authpage

import (
	"context"
)

// fakeGateway records calls and plays back configured results.
type fakeGateway struct {
	signInGrant Grant
	signInErr   error
	signUpGrant Grant
	signUpErr   error
	sessionOK   bool
	sessionErr  error

	signInCalls  int
	signUpCalls  int
	sessionCalls int

	lastEmail    string
	lastPassword string
	lastFullName string
}

func (f *fakeGateway) SignIn(_ context.Context, email, password string) (Grant, error) {
	f.signInCalls++
	f.lastEmail = email
	f.lastPassword = password
	return f.signInGrant, f.signInErr
}

func (f *fakeGateway) SignUp(_ context.Context, email, password, fullName string) (Grant, error) {
	f.signUpCalls++
	f.lastEmail = email
	f.lastPassword = password
	f.lastFullName = fullName
	return f.signUpGrant, f.signUpErr
}

func (f *fakeGateway) SessionFor(context.Context, string) (bool, error) {
	f.sessionCalls++
	return f.sessionOK, f.sessionErr
}
