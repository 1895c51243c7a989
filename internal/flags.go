package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddTranscriptionFlags adds flags related to transcription functionality
func AddTranscriptionFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "", "Speech-to-text backend: local or openai")
	cmd.Flags().StringP("model", "m", "", "Whisper model for the local backend")
	cmd.Flags().StringP("language", "l", "", "Spoken language hint (ISO-639-1, e.g. en)")
	cmd.Flags().String("segmentation", "", "Cue policy: word (one cue per word) or wrap (40 character lines)")
	cmd.Flags().Int("words-per-segment", 0, "Wrap width in units of 10 characters (wrap segmentation)")
	cmd.Flags().StringP("prompt", "p", "", "Vocabulary hint for the model (string or template file path)")
}

// AddRenderFlags adds flags related to composing the output video
func AddRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("background", "b", "", "Background audio track mixed under the original sound")
	cmd.Flags().Bool("no-background", false, "Do not offer background audio")
	cmd.Flags().StringP("output-dir", "o", "", "Directory for rendered videos")
	cmd.Flags().Bool("keep-temp", false, "Keep the run's work directory")
}

// ApplyTranscriptionFlags copies explicitly set transcription flags into config
// and validates the resulting values
func ApplyTranscriptionFlags(cmd *cobra.Command, config *Config) error {
	flags := cmd.Flags()
	if flags.Changed("backend") {
		config.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("model") {
		config.WhisperModel, _ = flags.GetString("model")
	}
	if flags.Changed("language") {
		config.Language, _ = flags.GetString("language")
	}
	if flags.Changed("segmentation") {
		config.Segmentation, _ = flags.GetString("segmentation")
	}
	if flags.Changed("words-per-segment") {
		config.WordsPerSegment, _ = flags.GetInt("words-per-segment")
	}
	if flags.Changed("prompt") {
		config.Prompt, _ = flags.GetString("prompt")
	}

	if _, err := ParseBackend(config.Backend); err != nil {
		return err
	}
	if _, err := ParseSegmentation(config.Segmentation); err != nil {
		return err
	}
	if config.WordsPerSegment <= 0 {
		return fmt.Errorf("words per segment must be positive, got %d", config.WordsPerSegment)
	}
	return ValidateOpenAIRequirements(config)
}

// ApplyRenderFlags copies explicitly set render flags into config
func ApplyRenderFlags(cmd *cobra.Command, config *Config) error {
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		dir, err := flags.GetString("output-dir")
		if err != nil {
			return fmt.Errorf("failed to get output-dir flag: %w", err)
		}
		config.OutputDir = dir
	}
	if flags.Changed("keep-temp") {
		config.KeepTemp, _ = flags.GetBool("keep-temp")
	}
	if config.BackgroundVolume < 0 {
		return fmt.Errorf("background volume must not be negative, got %g", config.BackgroundVolume)
	}
	return nil
}

// HandleVerboseFlag processes the --verbose and --quiet flags to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	if cmd.Flags().Changed("verbose") {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return fmt.Errorf("failed to get verbose flag: %w", err)
		}
		config.Verbose = verbose
	}
	if cmd.Flags().Changed("quiet") {
		quiet, err := cmd.Flags().GetBool("quiet")
		if err != nil {
			return fmt.Errorf("failed to get quiet flag: %w", err)
		}
		config.Quiet = quiet
	}
	return nil
}

// ValidateOpenAIRequirements checks the API key when the hosted backend is selected
func ValidateOpenAIRequirements(config *Config) error {
	backend, err := ParseBackend(config.Backend)
	if err != nil {
		return err
	}
	if backend != BackendOpenAI {
		return nil
	}
	return ValidateOpenAIAPIKey(config.OpenAIAPIKey)
}
