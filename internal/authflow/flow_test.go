package authflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminEmail = "admin@zamanix.com"

func TestLoginFlow_NonAdminRequiresPassphraseStep(t *testing.T) {
	f := New(adminEmail)

	require.NoError(t, f.SubmitCredentials(Fields{Email: "user@x.com", Password: "pw"}))
	assert.Equal(t, StateSubmittingCredentials, f.State())

	require.NoError(t, f.CredentialsAccepted())
	assert.Equal(t, StateAwaitingPassphrase, f.State())

	require.NoError(t, f.SubmitPassphrase("correct horse battery staple"))
	assert.Equal(t, StateSubmittingPassphrase, f.State())

	require.NoError(t, f.Succeed("logged in"))
	assert.Equal(t, StateSuccess, f.State())
}

func TestLoginFlow_AdminSkipsPassphraseStep(t *testing.T) {
	f := New(adminEmail)

	require.NoError(t, f.SubmitCredentials(Fields{Email: "Admin@Zamanix.com", Password: "pw"}))
	require.NoError(t, f.CredentialsAccepted())
	assert.Equal(t, StateSuccess, f.State(), "admin goes straight to success")
}

func TestSignupFlow_CompletesWithoutPassphraseStep(t *testing.T) {
	f := New(adminEmail)
	f.ToggleMode()
	require.Equal(t, ModeSignup, f.Mode())

	require.NoError(t, f.SubmitCredentials(Fields{Name: "Ada", Email: "ada@x.com", Password: "pw"}))
	require.NoError(t, f.CredentialsAccepted())
	assert.Equal(t, StateSuccess, f.State())
}

func TestFail_PreservesFields(t *testing.T) {
	f := New(adminEmail)

	require.NoError(t, f.SubmitCredentials(Fields{Email: "user@x.com", Password: "pw"}))
	require.NoError(t, f.Fail("wrong password"))

	assert.Equal(t, StateError, f.State())
	assert.Equal(t, "wrong password", f.Message())
	assert.Equal(t, "user@x.com", f.Fields().Email)
	assert.Equal(t, "pw", f.Fields().Password)

	// Retry is legal from the error state.
	require.NoError(t, f.SubmitCredentials(Fields{Email: "user@x.com", Password: "pw2"}))
	assert.Equal(t, StateSubmittingCredentials, f.State())
}

func TestDismissPassphrase_ClearsOnlyPassphrase(t *testing.T) {
	f := New(adminEmail)

	require.NoError(t, f.SubmitCredentials(Fields{Email: "user@x.com", Password: "pw"}))
	require.NoError(t, f.CredentialsAccepted())
	require.NoError(t, f.SubmitPassphrase("some words"))
	require.NoError(t, f.Fail("invalid passphrase"))

	require.NoError(t, f.SubmitCredentials(Fields{Email: "user@x.com", Password: "pw"}))
	require.NoError(t, f.CredentialsAccepted())
	require.NoError(t, f.DismissPassphrase())

	assert.Equal(t, StateIdle, f.State())
	assert.Empty(t, f.Fields().Passphrase)
	assert.Equal(t, "user@x.com", f.Fields().Email)
}

func TestToggleMode_ResetsEverything(t *testing.T) {
	f := New(adminEmail)

	require.NoError(t, f.SubmitCredentials(Fields{Email: "user@x.com", Password: "pw"}))
	require.NoError(t, f.Fail("nope"))

	f.ToggleMode()
	assert.Equal(t, ModeSignup, f.Mode())
	assert.Equal(t, StateIdle, f.State())
	assert.Equal(t, Fields{}, f.Fields())
	assert.Empty(t, f.Message())
}

func TestSuccess_DelayedCompletionCallback(t *testing.T) {
	done := make(chan struct{})
	f := New(adminEmail,
		WithCompletionDelay(10*time.Millisecond),
		WithCompletion(func() { close(done) }),
	)

	require.NoError(t, f.SubmitCredentials(Fields{Email: adminEmail, Password: "pw"}))
	require.NoError(t, f.CredentialsAccepted())
	assert.Equal(t, StateSuccess, f.State())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("completion callback never fired")
	}
}

func TestInvalidTransitions(t *testing.T) {
	f := New(adminEmail)

	assert.ErrorIs(t, f.CredentialsAccepted(), ErrInvalidTransition)
	assert.ErrorIs(t, f.SubmitPassphrase("x"), ErrInvalidTransition)
	assert.ErrorIs(t, f.Succeed("x"), ErrInvalidTransition)
	assert.ErrorIs(t, f.Fail("x"), ErrInvalidTransition)
	assert.ErrorIs(t, f.DismissPassphrase(), ErrInvalidTransition)
}
