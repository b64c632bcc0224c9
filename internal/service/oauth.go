package service

import (
	"fmt"

	"complaint-backend/internal/apperr"
	"complaint-backend/internal/models"
)

// MapOAuthIdentity extracts the canonical (id, name, email) triple from a
// provider's raw attribute map. Each provider nests its profile differently;
// an unrecognized provider is a validation error, never a silent pass.
func MapOAuthIdentity(provider string, attributes map[string]any) (*models.OAuthIdentity, error) {
	switch provider {
	case "naver":
		return mapNaver(attributes)
	case "kakao":
		return mapKakao(attributes)
	default:
		return nil, apperr.Wrap(apperr.ErrValidation, "unknown oauth provider %q", provider)
	}
}

// Naver nests everything under a "response" object.
func mapNaver(attributes map[string]any) (*models.OAuthIdentity, error) {
	response, ok := attributes["response"].(map[string]any)
	if !ok {
		return nil, apperr.Wrap(apperr.ErrValidation, "naver payload missing response object")
	}
	return &models.OAuthIdentity{
		ID:    stringAttr(response, "id"),
		Name:  stringAttr(response, "name"),
		Email: stringAttr(response, "email"),
	}, nil
}

// Kakao nests the profile under kakao_account.profile; the email may be
// absent entirely, in which case the NO_EMAIL sentinel is substituted.
func mapKakao(attributes map[string]any) (*models.OAuthIdentity, error) {
	account, ok := attributes["kakao_account"].(map[string]any)
	if !ok {
		return nil, apperr.Wrap(apperr.ErrValidation, "kakao payload missing kakao_account object")
	}
	profile, ok := account["profile"].(map[string]any)
	if !ok {
		return nil, apperr.Wrap(apperr.ErrValidation, "kakao payload missing profile object")
	}

	email := models.NoEmail
	if v, ok := account["email"].(string); ok && v != "" {
		email = v
	}

	return &models.OAuthIdentity{
		ID:    fmt.Sprintf("%v", attributes["id"]),
		Name:  stringAttr(profile, "nickname"),
		Email: email,
	}, nil
}

func stringAttr(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}
