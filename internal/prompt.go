package internal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// PromptData for template injection
type PromptData struct {
	Title    string
	Language string
}

// PromptManager builds the optional vocabulary hint sent to the speech model
type PromptManager struct {
	promptFile   string
	promptString string
}

// NewPromptManager creates a new prompt manager. The setting is either a
// template string or a path to a template file; empty disables the hint.
func NewPromptManager(promptSetting string) *PromptManager {
	pm := &PromptManager{}

	if promptSetting != "" {
		if IsLikelyFilePath(promptSetting) && FileExists(promptSetting) {
			pm.promptFile = promptSetting
		} else {
			pm.promptString = promptSetting
		}
	}

	return pm
}

// CreatePrompt renders the hint for a video. Returns "" when no prompt is configured.
func (pm *PromptManager) CreatePrompt(videoPath, language string) (string, error) {
	tmplContent := pm.promptString
	if pm.promptFile != "" {
		content, err := os.ReadFile(pm.promptFile)
		if err != nil {
			return "", fmt.Errorf("reading prompt template: %w", err)
		}
		tmplContent = string(content)
	}
	if strings.TrimSpace(tmplContent) == "" {
		return "", nil
	}

	base := filepath.Base(videoPath)
	data := PromptData{
		Title:    strings.TrimSuffix(base, filepath.Ext(base)),
		Language: language,
	}
	return pm.buildPromptFromTemplate(tmplContent, data)
}

// buildPromptFromTemplate executes the prompt template
func (pm *PromptManager) buildPromptFromTemplate(templateContent string, data PromptData) (string, error) {
	tmpl, err := template.New("prompt").Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("parsing prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// IsLikelyFilePath uses heuristics to determine if a string is likely a file path
func IsLikelyFilePath(s string) bool {
	// Check for common file path indicators
	if strings.Contains(s, "/") || strings.Contains(s, "\\") {
		return true
	}

	// Check for common file extensions
	if strings.Contains(s, ".txt") || strings.Contains(s, ".md") ||
		strings.Contains(s, ".template") || strings.Contains(s, ".tmpl") {
		return true
	}

	// If it's longer than 200 characters, it's likely a prompt string
	if len(s) > 200 {
		return false
	}

	// Default to treating as file path if it doesn't contain spaces and newlines
	return !strings.Contains(s, " ") && !strings.Contains(s, "\n")
}
