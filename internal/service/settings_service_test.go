package service

import (
	"context"
	"testing"

	"ai-knowledgebase-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsReturnsDefaults(t *testing.T) {
	uow := newFakeUow()
	svc := NewSettingsService(&fakeUowFactory{uow: uow})

	res, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultAssistantName, res.AssistantName)
	assert.Empty(t, res.AvatarDataURI)
}

func TestUpdateSettingsRoundTrip(t *testing.T) {
	uow := newFakeUow()
	svc := NewSettingsService(&fakeUowFactory{uow: uow})

	name := "Atlas"
	avatar := "data:image/png;base64,iVBORw0KGgo="
	res, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{
		AssistantName: &name,
		AvatarDataURI: &avatar,
	})
	require.NoError(t, err)
	assert.Equal(t, "Atlas", res.AssistantName)
	assert.Equal(t, avatar, res.AvatarDataURI)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Atlas", got.AssistantName)
	assert.Equal(t, avatar, got.AvatarDataURI)
}

func TestUpdateSettingsPartialUpdateKeepsOtherValue(t *testing.T) {
	uow := newFakeUow()
	svc := NewSettingsService(&fakeUowFactory{uow: uow})

	name := "Atlas"
	_, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{AssistantName: &name})
	require.NoError(t, err)

	avatar := "data:image/png;base64,AAAA"
	res, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{AvatarDataURI: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "Atlas", res.AssistantName)
	assert.Equal(t, avatar, res.AvatarDataURI)
}

func TestUpdateSettingsEmptyNameFallsBackToDefault(t *testing.T) {
	uow := newFakeUow()
	svc := NewSettingsService(&fakeUowFactory{uow: uow})

	empty := ""
	res, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{AssistantName: &empty})
	require.NoError(t, err)
	assert.Equal(t, DefaultAssistantName, res.AssistantName)
}
