package service

import (
	"context"

	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/repository/unitofwork"
)

const (
	SettingKeyAssistantName = "assistant_name"
	SettingKeyAvatarDataURI = "avatar_data_uri"

	DefaultAssistantName = "Analyst"
)

type ISettingsService interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSettingsService(uowFactory unitofwork.RepositoryFactory) ISettingsService {
	return &settingsService{
		uowFactory: uowFactory,
	}
}

func (s *settingsService) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.load(ctx, uow)
}

func (s *settingsService) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.AssistantName != nil {
		if err := uow.SettingRepository().Set(ctx, SettingKeyAssistantName, *req.AssistantName); err != nil {
			return nil, err
		}
	}
	if req.AvatarDataURI != nil {
		if err := uow.SettingRepository().Set(ctx, SettingKeyAvatarDataURI, *req.AvatarDataURI); err != nil {
			return nil, err
		}
	}

	return s.load(ctx, uow)
}

func (s *settingsService) load(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.SettingsResponse, error) {
	res := &dto.SettingsResponse{
		AssistantName: DefaultAssistantName,
	}

	name, err := uow.SettingRepository().Get(ctx, SettingKeyAssistantName)
	if err != nil {
		return nil, err
	}
	if name != nil && name.Value != "" {
		res.AssistantName = name.Value
	}

	avatar, err := uow.SettingRepository().Get(ctx, SettingKeyAvatarDataURI)
	if err != nil {
		return nil, err
	}
	if avatar != nil {
		res.AvatarDataURI = avatar.Value
	}

	return res, nil
}
