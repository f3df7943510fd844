package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudEventEnvelope(t *testing.T) {
	requestID := uuid.New()
	ce, err := NewCloudEvent("service-adoption", AdoptionRequestCreated, RequestCreatedEvent{
		RequestID:    requestID,
		PetID:        uuid.New(),
		AdopterEmail: "maria@example.com",
		OccurredAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ce.ID)
	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.Equal(t, AdoptionRequestCreated, ce.Type)

	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	parsed, err := ParseCloudEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ce.ID, parsed.ID)

	var data RequestCreatedEvent
	require.NoError(t, parsed.ParseData(&data))
	assert.Equal(t, requestID, data.RequestID)
	assert.Equal(t, "maria@example.com", data.AdopterEmail)
}

func TestParseCloudEventRejectsGarbage(t *testing.T) {
	_, err := ParseCloudEvent([]byte("not json"))
	assert.Error(t, err)
}
