package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"landtalk/analysis"
	"landtalk/config"
	"landtalk/llm"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// newAnalyzeCmd builds the headless one-shot analysis command
func newAnalyzeCmd() *cobra.Command {
	var (
		prompt    string
		modelName string
		stateDir  string
	)

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Run one analysis and print the result",
		Long: `Analyze sends the image and prompt to the configured AI model and
prints the response to stdout, without starting the interactive UI.

When no API key is stored for the model's provider, the key is read
from the terminal with echo disabled and saved for future runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAnalyze(args[0], prompt, modelName, stateDir)
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "analyze this image", "analysis prompt")
	cmd.Flags().StringVar(&modelName, "model", "", "AI model to use (defaults to the last selected model)")
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "directory for settings, keys and logs (default ~/.landtalk)")

	return cmd
}

func runAnalyze(imagePath, prompt, modelName, stateDir string) error {
	if stateDir == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return fmt.Errorf("failed to resolve state directory: %v", err)
		}
		stateDir = dir
	}
	store := config.NewStore(stateDir)
	settings := store.Settings()

	if modelName == "" {
		modelName = settings.LastSelectedModel
	}
	if !IsKnownModel(modelName) {
		return fmt.Errorf("unknown model %q", modelName)
	}
	modelConfig := GetModelConfig(modelName)

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %v", imagePath, err)
	}

	apiKey := store.APIKey(modelConfig.Provider)
	if apiKey == "" {
		apiKey, err = promptForKey(modelConfig)
		if err != nil {
			return err
		}
		if err := store.SetAPIKey(modelConfig.Provider, apiKey); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save API key: %v\n", err)
		}
	}

	session := analysis.NewSession(store.SystemPrompt(), settings.ConfidenceThreshold)
	session.SetModel(modelConfig.Name, settings.AutoClearOnModelChange)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Second)
	defer cancel()

	result := session.Analyze(ctx, analysis.Request{
		Image:    imageData,
		MimeType: mimeTypeForPath(imagePath),
		Prompt:   prompt,
		Provider: modelConfig.Provider,
		Model:    modelConfig.Name,
		APIKey:   apiKey,
	})
	if !result.OK {
		return fmt.Errorf("%s", result.Reason)
	}

	if len(result.Detections) > 0 {
		for _, det := range result.Detections {
			fmt.Println(det.Label)
			if det.Reason != "" {
				fmt.Println("   " + det.Reason)
			}
		}
		fmt.Println()
		fmt.Println(analysis.FormatSuccessMessage(len(result.Detections), modelConfig.Provider, result.Stats))
		fmt.Println()
	} else if result.Stats.Total > 0 {
		fmt.Println(analysis.FormatWarningMessage(modelConfig.Provider, result.Stats, settings.ConfidenceThreshold))
		fmt.Println()
	}

	fmt.Println(result.CleanedText)
	return nil
}

// promptForKey reads an API key from the terminal with echo disabled.
// Gemini keys are verified with a round trip before being accepted.
func promptForKey(modelConfig ModelConfig) (string, error) {
	fmt.Fprintf(os.Stderr, "Enter your %s API key: ", modelConfig.CompanyName)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %v", err)
	}

	key := strings.TrimSpace(string(raw))
	if key == "" {
		return "", fmt.Errorf("API key cannot be empty")
	}

	if modelConfig.Provider == llm.ProviderGemini {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := llm.VerifyGeminiKey(ctx, key); err != nil {
			return "", fmt.Errorf("API key verification failed: %v", err)
		}
	}

	return key, nil
}
