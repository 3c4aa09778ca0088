package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ragu/kaiwa/internal/config"
	"github.com/ragu/kaiwa/internal/models"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	Long: `Show and change kaiwa settings.

Settings live in ~/.kaiwa/config.json. The API key is stored in the
system keychain, never in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and save it.

Keys:
  model       Default model (fast, lite, pro, or a full model name)
  language    Target reply language (e.g. Japanese, French)
  verbose     Debug logging (true/false)
  clipboard   Copy single-query replies to the clipboard (true/false)
  style       Markdown style (dark, light, or path to a glamour theme)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(args[0], args[1])
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the API key in the system keychain",
	Long: `Store the Gemini API key in the system keychain.

The key is read from the terminal without echo and never written to
disk. GEMINI_API_KEY in the environment takes precedence over the
stored key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSetKey()
	},
}

var configUnsetKeyCmd = &cobra.Command{
	Use:   "unset-key",
	Short: "Remove the API key from the system keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.DeleteAPIKey(); err != nil {
			return fmt.Errorf("failed to remove key: %w", err)
		}
		fmt.Println("API key removed from keychain")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configUnsetKeyCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	keySource := "not set"
	if os.Getenv(config.EnvAPIKey) != "" {
		keySource = "environment (" + config.EnvAPIKey + ")"
	} else if _, err := config.ResolveAPIKey(); err == nil {
		keySource = "system keychain"
	}

	rows := []struct{ key, value string }{
		{"model", cfg.DefaultModel},
		{"language", cfg.ReplyLanguage},
		{"verbose", strconv.FormatBool(cfg.Verbose)},
		{"clipboard", strconv.FormatBool(cfg.CopyToClipboard)},
		{"style", cfg.Markdown.Style},
		{"api key", keySource},
	}
	for _, row := range rows {
		fmt.Printf("%s %s\n", keyStyle.Render(fmt.Sprintf("%-10s", row.key)), row.value)
	}

	if path, err := config.GetConfigPath(); err == nil {
		fmt.Println(dimStyle.Render("config: " + path))
	}
	return nil
}

func runConfigSet(key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch key {
	case "model":
		cfg.DefaultModel = models.ResolveModel(value)
	case "language":
		cfg.ReplyLanguage = value
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose must be true or false")
		}
		cfg.Verbose = b
	case "clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("clipboard must be true or false")
		}
		cfg.CopyToClipboard = b
	case "style":
		cfg.Markdown.Style = value
	default:
		return fmt.Errorf("unknown setting '%s'", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("%s set\n", key)
	return nil
}

func runConfigSetKey() error {
	fmt.Fprint(os.Stderr, "Gemini API key: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	key := strings.TrimSpace(string(raw))
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if err := config.StoreAPIKey(key); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}
	fmt.Println("API key stored in keychain")
	return nil
}
