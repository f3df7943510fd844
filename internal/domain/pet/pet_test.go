package pet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adota-pet/service-adoption/internal/domain"
)

func newTestPet(t *testing.T) *Pet {
	t.Helper()
	p, err := NewPet(
		uuid.New(),
		"Rex",
		SpeciesDog,
		time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC),
		"friendly mutt",
		SizeMedium,
		"playful",
	)
	require.NoError(t, err)
	return p
}

func TestNewPet(t *testing.T) {
	p := newTestPet(t)

	assert.Equal(t, StatusAvailable, p.Status())
	assert.True(t, p.IsAvailable())
	assert.NotEqual(t, uuid.Nil, p.ID())
}

func TestNewPetValidation(t *testing.T) {
	birthDate := time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC)

	_, err := NewPet(uuid.Nil, "Rex", SpeciesDog, birthDate, "", SizeMedium, "")
	assert.Error(t, err)

	_, err = NewPet(uuid.New(), "", SpeciesDog, birthDate, "", SizeMedium, "")
	assert.Error(t, err)

	_, err = NewPet(uuid.New(), "Rex", Species("dragon"), birthDate, "", SizeMedium, "")
	assert.Error(t, err)

	_, err = NewPet(uuid.New(), "Rex", SpeciesDog, time.Time{}, "", SizeMedium, "")
	assert.Error(t, err)

	_, err = NewPet(uuid.New(), "Rex", SpeciesDog, birthDate, "", Size("giant"), "")
	assert.Error(t, err)
}

func TestMarkAdopted(t *testing.T) {
	p := newTestPet(t)

	require.NoError(t, p.MarkAdopted())
	assert.Equal(t, StatusAdopted, p.Status())
	assert.False(t, p.IsAvailable())
}

func TestMarkAdoptedTwice(t *testing.T) {
	p := newTestPet(t)
	require.NoError(t, p.MarkAdopted())

	err := p.MarkAdopted()
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidState, domain.CodeOf(err))
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	p := newTestPet(t)

	err := p.Update("Bob", "", time.Time{}, "", "", "calm")
	require.NoError(t, err)

	assert.Equal(t, "Bob", p.Name())
	assert.Equal(t, SpeciesDog, p.Species(), "untouched field keeps its value")
	assert.Equal(t, "calm", p.Personality())
}

func TestUpdateRejectsInvalidValues(t *testing.T) {
	p := newTestPet(t)

	assert.Error(t, p.Update("", Species("dragon"), time.Time{}, "", "", ""))
	assert.Error(t, p.Update("", "", time.Time{}, "", Size("giant"), ""))
}

func TestSetImageURL(t *testing.T) {
	p := newTestPet(t)

	p.SetImageURL("/uploads/rex.jpg")
	assert.Equal(t, "/uploads/rex.jpg", p.ImageURL())
}
