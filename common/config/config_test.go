package config

import (
	"testing"

	"github.com/bsthun/gut"
	"github.com/stretchr/testify/require"

	"github.com/harnoor-dev/event-cert-api/type/shared"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func minimalConfig() *shared.Config {
	return &shared.Config{
		Environment:   boolPtr(true),
		Port:          strPtr(":3000"),
		BackendURL:    strPtr("http://localhost:3000"),
		Cors:          []*string{strPtr("http://localhost:5173")},
		JWTSecret:     strPtr("test-secret"),
		Postgres:      strPtr("postgres://localhost/app"),
		Mongo:         strPtr("mongodb://localhost"),
		MongoDatabase: strPtr("app"),
		VerifyHost:    strPtr("http://localhost:3000"),
		MailHost:      strPtr("smtp.example.com"),
		MailUser:      strPtr("noreply@example.com"),
		MailPass:      strPtr("secret"),
	}
}

func TestConfigValidation_MinioIsOptional(t *testing.T) {
	cfg := minimalConfig()
	require.Nil(t, gut.Validate(cfg), "config without object storage must validate")
}

func TestConfigValidation_MissingRequiredField(t *testing.T) {
	cfg := minimalConfig()
	cfg.Port = nil
	require.NotNil(t, gut.Validate(cfg))
}
