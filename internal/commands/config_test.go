package commands

import (
	"testing"

	"github.com/ragu/kaiwa/internal/config"
	"github.com/ragu/kaiwa/internal/models"
)

func TestRunConfigSet(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		check   func(t *testing.T, cfg config.Config)
	}{
		{
			name:  "model alias",
			key:   "model",
			value: "pro",
			check: func(t *testing.T, cfg config.Config) {
				if cfg.DefaultModel != models.ModelPro {
					t.Errorf("DefaultModel = %s, want %s", cfg.DefaultModel, models.ModelPro)
				}
			},
		},
		{
			name:  "language",
			key:   "language",
			value: "Korean",
			check: func(t *testing.T, cfg config.Config) {
				if cfg.ReplyLanguage != "Korean" {
					t.Errorf("ReplyLanguage = %s, want Korean", cfg.ReplyLanguage)
				}
			},
		},
		{
			name:  "verbose true",
			key:   "verbose",
			value: "true",
			check: func(t *testing.T, cfg config.Config) {
				if !cfg.Verbose {
					t.Error("Verbose not set")
				}
			},
		},
		{
			name:  "clipboard true",
			key:   "clipboard",
			value: "true",
			check: func(t *testing.T, cfg config.Config) {
				if !cfg.CopyToClipboard {
					t.Error("CopyToClipboard not set")
				}
			},
		},
		{
			name:  "style",
			key:   "style",
			value: "light",
			check: func(t *testing.T, cfg config.Config) {
				if cfg.Markdown.Style != "light" {
					t.Errorf("Markdown.Style = %s, want light", cfg.Markdown.Style)
				}
			},
		},
		{
			name:    "verbose not a bool",
			key:     "verbose",
			value:   "maybe",
			wantErr: true,
		},
		{
			name:    "unknown key",
			key:     "persona",
			value:   "pirate",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())

			err := runConfigSet(tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("runConfigSet failed: %v", err)
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestConfigCommand_Subcommands(t *testing.T) {
	for _, sub := range []string{"show", "set", "set-key", "unset-key", "path"} {
		t.Run(sub, func(t *testing.T) {
			found := false
			for _, cmd := range configCmd.Commands() {
				if cmd.Name() == sub {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Subcommand %s not found", sub)
			}
		})
	}
}
