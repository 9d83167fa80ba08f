package config

import "testing"

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_MAX_OPEN_CONNS", "42")
	t.Setenv("SMTP_USE_TLS", "true")

	config := &Config{}
	setDefaults(config)

	if err := applyEnvOverrides(config); err != nil {
		t.Fatalf("apply overrides: %v", err)
	}

	if config.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", config.Logging.Level)
	}
	if config.Database.MaxOpenConns != 42 {
		t.Errorf("max open conns = %d, want 42", config.Database.MaxOpenConns)
	}
	if !config.Notify.SMTP.UseTLS {
		t.Error("smtp use_tls should be overridden to true")
	}
	// Untouched variables keep their defaults.
	if config.Server.Port != "8080" {
		t.Errorf("server port = %q, want default 8080", config.Server.Port)
	}
}

func TestApplyEnvOverridesRejectsBadValue(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")

	config := &Config{}
	setDefaults(config)

	if err := applyEnvOverrides(config); err == nil {
		t.Fatal("expected an error for a non-integer override")
	}
}
