// Package commands provides CLI commands for kaiwa.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ragu/kaiwa/internal/config"
	"github.com/ragu/kaiwa/internal/models"
)

var (
	// Global flags
	modelFlag    string
	languageFlag string
	outputFlag   string
	fileFlag     string
	rawFlag      bool
	verboseFlag  bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kaiwa [prompt]",
	Short: "Conversation partner for language learners, powered by Gemini",
	Long: `kaiwa is a command-line conversation partner for language learners.
It forwards your messages to the Gemini generateContent API and replies
in your target language (Japanese by default).

The API key is read from the GEMINI_API_KEY environment variable or the
system keychain ('kaiwa config set-key'). It is never written to disk
or embedded in request URLs.

Examples:
  kaiwa chat                           Start interactive chat
  kaiwa "自己紹介してください"            Send a single query
  kaiwa --lang French "Hello"          Practice another language
  kaiwa -f prompt.md                   Read prompt from file
  cat prompt.md | kaiwa                Read prompt from stdin
  kaiwa "こんにちは" -o reply.md         Save response to file`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("kaiwa %s (built %s)\n", Version, BuildTime)
			return nil
		}

		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), rawFlag)
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), rawFlag)
		}

		if len(args) > 0 {
			return runQuery(args[0], rawFlag)
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (fast, lite, pro, or a full model name)")
	rootCmd.PersistentFlags().StringVarP(&languageFlag, "lang", "l", "", "Target reply language (default Japanese)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging on stderr")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the raw response without decoration")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging configures the global zerolog logger. Debug output goes to
// stderr so it never mixes with the rendered response on stdout.
func setupLogging() {
	level := zerolog.WarnLevel
	if verboseFlag {
		level = zerolog.DebugLevel
	} else if cfg, err := config.LoadConfig(); err == nil && cfg.Verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// getModel returns the model to use (from flag or config)
func getModel() string {
	if modelFlag != "" {
		return models.ResolveModel(modelFlag)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return models.DefaultModel
	}

	return models.ResolveModel(cfg.DefaultModel)
}

// getLanguage returns the target reply language (from flag or config)
func getLanguage() string {
	if languageFlag != "" {
		return languageFlag
	}

	cfg, err := config.LoadConfig()
	if err != nil || cfg.ReplyLanguage == "" {
		return models.DefaultLanguage
	}

	return cfg.ReplyLanguage
}
