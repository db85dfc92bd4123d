package dto

type SettingsResponse struct {
	AssistantName string `json:"assistant_name"`
	AvatarDataURI string `json:"avatar_data_uri,omitempty"`
}

type UpdateSettingsRequest struct {
	AssistantName *string `json:"assistant_name" validate:"omitempty,max=64"`
	AvatarDataURI *string `json:"avatar_data_uri"`
}
