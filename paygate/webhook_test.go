package paygate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

func signedHeader(payload []byte, at time.Time) string {
	ts := at.Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, ComputeSignature(ts, payload, testSecret))
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	now := time.Now()

	err := VerifySignature(payload, signedHeader(payload, now), testSecret, DefaultTolerance, now)
	assert.NoError(t, err)
}

func TestVerifySignatureRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now()
	header := signedHeader(payload, now)

	err := VerifySignature([]byte(`{"id":"evt_2"}`), header, testSecret, DefaultTolerance, now)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now()
	ts := now.Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, ComputeSignature(ts, payload, "whsec_other"))

	err := VerifySignature(payload, header, testSecret, DefaultTolerance, now)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignatureRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	signedAt := time.Now().Add(-10 * time.Minute)

	err := VerifySignature(payload, signedHeader(payload, signedAt), testSecret, DefaultTolerance, time.Now())
	assert.ErrorIs(t, err, ErrStaleTimestamp)
}

func TestVerifySignatureRejectsMalformedHeader(t *testing.T) {
	payload := []byte(`{}`)
	for _, header := range []string{"", "t=abc,v1=00", "v1=00", "t=123"} {
		err := VerifySignature(payload, header, testSecret, DefaultTolerance, time.Now())
		assert.Error(t, err, "header %q", header)
	}
}

func TestVerifySignatureAcceptsAnyValidV1(t *testing.T) {
	// Secret rotation sends multiple v1 entries; one match suffices.
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now()
	ts := now.Unix()
	header := fmt.Sprintf("t=%d,v1=%s,v1=%s",
		ts, ComputeSignature(ts, payload, "whsec_old"), ComputeSignature(ts, payload, testSecret))

	err := VerifySignature(payload, header, testSecret, DefaultTolerance, now)
	assert.NoError(t, err)
}

func TestConstructEvent(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","metadata":{"bookingId":"3"}}}}`)

	event, err := ConstructEvent(payload, signedHeader(payload, time.Now()), testSecret)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, EventPaymentIntentSucceeded, event.Type)

	intent, err := event.Intent()
	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "3", intent.Metadata["bookingId"])
}

func TestParseEventSessionPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_2","type":"checkout.session.expired","data":{"object":{"id":"cs_1","metadata":{"bookingId":"9"}}}}`)

	event, err := ParseEvent(payload)
	require.NoError(t, err)

	session, err := event.Session()
	require.NoError(t, err)
	assert.Equal(t, "cs_1", session.ID)
	assert.Equal(t, "9", session.Metadata["bookingId"])
}
