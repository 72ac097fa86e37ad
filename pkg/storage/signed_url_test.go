package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestURLSignerSignAndVerify(t *testing.T) {
	signer := NewURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Sign("report-1", "req-1/week-2/photo-0.jpg")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, expiresAt.IsZero())

	grant, err := signer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "report-1", grant.ResourceID)
	require.Equal(t, "req-1/week-2/photo-0.jpg", grant.Path)
	require.WithinDuration(t, expiresAt, grant.ExpiresAt, time.Second)
}

func TestURLSignerExpired(t *testing.T) {
	signer := NewURLSigner("secret", time.Minute)
	issued := time.Now()
	signer.now = func() time.Time { return issued }
	token, _, err := signer.Sign("report-1", "file.pdf")
	require.NoError(t, err)

	signer.now = func() time.Time { return issued.Add(2 * time.Minute) }
	grant, err := signer.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.Equal(t, "report-1", grant.ResourceID)
}

func TestURLSignerRejectsTampering(t *testing.T) {
	signer := NewURLSigner("secret", time.Hour)
	token, _, err := signer.Sign("report-1", "file.pdf")
	require.NoError(t, err)

	other := NewURLSigner("other-secret", time.Hour)
	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = signer.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestURLSignerRequiresInputs(t *testing.T) {
	_, _, err := NewURLSigner("secret", 0).Sign("", "file.pdf")
	require.Error(t, err)

	_, _, err = NewURLSigner("", time.Hour).Sign("id", "file.pdf")
	require.Error(t, err)
}
