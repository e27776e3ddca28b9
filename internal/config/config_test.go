package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"LOG_LEVEL", "REDIS_ENABLED", "REDIS_DB", "REDIS_CHANNEL", "EVENTS_ENCODING", "EVENTS_QUEUE_SIZE", "OUTPUT_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Redis.Enabled {
		t.Fatalf("expected redis disabled by default")
	}
	if cfg.Redis.Channel != "tickets.events" {
		t.Fatalf("expected default channel, got %q", cfg.Redis.Channel)
	}
	if cfg.Events.Encoding != "json" || cfg.Output.Format != "text" {
		t.Fatalf("unexpected defaults: %+v %+v", cfg.Events, cfg.Output)
	}
	if cfg.Events.QueueSize != 256 {
		t.Fatalf("expected queue size 256, got %d", cfg.Events.QueueSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("EVENTS_ENCODING", "CBOR")
	t.Setenv("OUTPUT_FORMAT", "yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.Redis.Enabled || cfg.Redis.DB != 3 {
		t.Fatalf("expected redis overrides, got %+v", cfg.Redis)
	}
	if cfg.Events.Encoding != "cbor" || cfg.Output.Format != "yaml" {
		t.Fatalf("expected encoding and format overrides, got %+v %+v", cfg.Events, cfg.Output)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"REDIS_DB":        "not-a-number",
		"EVENTS_ENCODING": "xml",
		"OUTPUT_FORMAT":   "html",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}
