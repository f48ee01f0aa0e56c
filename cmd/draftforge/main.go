package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/draftforge/draftforge/internal/ai"
	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/httpx"
	"github.com/draftforge/draftforge/internal/keyring"
	"github.com/draftforge/draftforge/internal/media"
	"github.com/draftforge/draftforge/internal/publish"
	"github.com/draftforge/draftforge/internal/research"
	"github.com/draftforge/draftforge/internal/workflow"
)

// CLI defines the draftforge command structure.
type CLI struct {
	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate a complete blog post for a topic"`
	Preview  PreviewCmd  `cmd:"" help:"Generate a first-draft preview for a topic"`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration"`
}

// GenerateCmd runs the full post workflow from the terminal.
type GenerateCmd struct {
	Topic      string `arg:"" help:"Topic to write about"`
	Keyword    string `flag:"" optional:"" help:"Target keyword (overrides the extracted one)"`
	Context    string `flag:"" optional:"" help:"Additional context passed to the writer"`
	CompanyURL string `flag:"" optional:"" name:"company-url" help:"Company site for internal links and screenshots"`
	Internal   bool   `flag:"" help:"Internal usage mode: HTML rendering, banner, WordPress publish"`
	Output     string `flag:"" optional:"" short:"o" help:"Write the post content to this file instead of stdout"`
	JSON       bool   `flag:"" help:"Print the full result as JSON"`
}

// Run executes the generate command.
func (c *GenerateCmd) Run() error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	res, err := engine.RunFull(context.Background(), workflow.Input{
		Topic:             c.Topic,
		Keyword:           c.Keyword,
		AdditionalContext: c.Context,
		CompanyURL:        c.CompanyURL,
		InternalUsage:     c.Internal,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if c.JSON {
		return printJSON(res)
	}
	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(res.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Printf("wrote %s (%q, keyword %q)\n", c.Output, res.Title, res.KeywordUsed)
		if res.PublishedToWordPress {
			fmt.Printf("published: %s\n", res.LiveBlogURL)
		}
		return nil
	}

	fmt.Println(res.Content)
	return nil
}

// PreviewCmd runs the shorter preview workflow that stops after the
// first draft.
type PreviewCmd struct {
	Topic      string `arg:"" help:"Topic to write about"`
	Keyword    string `flag:"" optional:"" help:"Target keyword (overrides the extracted one)"`
	Context    string `flag:"" optional:"" help:"Additional context passed to the writer"`
	CompanyURL string `flag:"" optional:"" name:"company-url" help:"Company site for internal links and screenshots"`
	Output     string `flag:"" optional:"" short:"o" help:"Write the draft to this file instead of stdout"`
	JSON       bool   `flag:"" help:"Print the full result as JSON"`
}

// Run executes the preview command.
func (c *PreviewCmd) Run() error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	res, err := engine.RunPreview(context.Background(), workflow.Input{
		Topic:             c.Topic,
		Keyword:           c.Keyword,
		AdditionalContext: c.Context,
		CompanyURL:        c.CompanyURL,
	})
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	if c.JSON {
		return printJSON(res)
	}
	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(res.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Printf("wrote %s (%q, keyword %q)\n", c.Output, res.Title, res.KeywordUsed)
		return nil
	}

	fmt.Println(res.Content)
	return nil
}

// ConfigCmd groups configuration-related subcommands.
type ConfigCmd struct {
	SetKey   SetKeyCmd   `cmd:"" help:"Store an API key in system keychain"`
	ListKeys ListKeysCmd `cmd:"" name:"list-keys" help:"Show which API keys are configured"`
}

// SetKeyCmd stores an API key in the system keychain.
type SetKeyCmd struct {
	Service string `arg:"" enum:"openai,anthropic,search,wordpress" help:"Service name"`
	Secret  string `arg:"" help:"API key value"`
}

// Run executes the set-key command.
func (c *SetKeyCmd) Run() error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("API key cannot be empty")
	}

	apiKey, err := keyring.APIKeyFromServiceName(c.Service)
	if err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}

	if err := keyring.Set(apiKey, c.Secret); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Printf("%s API key stored in keychain\n", c.Service)

	return nil
}

// ListKeysCmd shows which API keys are configured.
type ListKeysCmd struct{}

// Run executes the list-keys command.
//
//nolint:unparam // error return required by Kong interface
func (c *ListKeysCmd) Run() error {
	allSet := true

	for _, apiKey := range keyring.AllAPIKeys() {
		if keyring.IsSet(apiKey) {
			fmt.Printf("%s: configured\n", apiKey.DisplayName())
		} else {
			fmt.Printf("%s: not set\n", apiKey.DisplayName())
			allSet = false
		}
	}

	if !allSet {
		fmt.Println("\nRun 'draftforge config set-key <service> <key>' to configure.")
	}

	return nil
}

func main() {
	// Set up text-based logger for CLI output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cli := &CLI{}
	ctx := kong.Parse(cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}

// buildEngine loads configuration, resolves API keys, and assembles
// the workflow engine with its live collaborators.
func buildEngine() (*workflow.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	resolveKeys(cfg)

	var missing []string
	if cfg.OpenAIAPIKey == "" {
		missing = append(missing, "openai")
	}
	if cfg.AnthropicAPIKey == "" {
		missing = append(missing, "anthropic")
	}
	if cfg.SearchAPIKey == "" {
		missing = append(missing, "search")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing API keys: %s. Set via environment variables or run 'draftforge config set-key'",
			strings.Join(missing, ", "))
	}

	logger := slog.Default()
	httpClient := httpx.New(logger,
		httpx.WithMaxRetries(cfg.HTTPMaxRetries),
		httpx.WithTimeout(time.Duration(cfg.HTTPTimeoutSec)*time.Second),
	)

	return workflow.NewEngine(
		logger,
		cfg,
		ai.NewClient(cfg),
		research.NewSearcher(httpClient, cfg),
		research.NewScraper(httpClient, cfg),
		media.NewLibrary(httpClient, cfg),
		publish.NewPublisher(httpClient, cfg),
	), nil
}

// resolveKeys fills empty key fields from the system keychain.
// Environment variables take priority, keychain is the fallback.
func resolveKeys(cfg *config.Config) {
	lookups := []struct {
		field *string
		key   keyring.APIKey
	}{
		{&cfg.OpenAIAPIKey, keyring.OpenAI},
		{&cfg.AnthropicAPIKey, keyring.Anthropic},
		{&cfg.SearchAPIKey, keyring.Search},
		{&cfg.WordPressAppPass, keyring.WordPress},
	}
	for _, l := range lookups {
		if *l.field != "" {
			continue
		}
		if secret, err := keyring.Get(l.key); err == nil {
			*l.field = secret
		} else {
			slog.Debug("keychain lookup failed", "key", l.key.DisplayName(), "error", err)
		}
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
