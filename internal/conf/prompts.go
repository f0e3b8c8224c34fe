package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// PromptsConfig contains all prompt configurations loaded from YAML
type PromptsConfig struct {
	Pipeline PipelinePrompts `yaml:"pipeline"`
	Social   SocialPrompts   `yaml:"social"`
}

// PipelinePrompts contains the content pipeline stage prompts
type PipelinePrompts struct {
	TopicsSystem string `yaml:"topics_system"`
	TopicsPrompt string `yaml:"topics_prompt"`
	BriefSystem  string `yaml:"brief_system"`
	BriefPrompt  string `yaml:"brief_prompt"`
	DraftSystem  string `yaml:"draft_system"`
	DraftPrompt  string `yaml:"draft_prompt"`
	EditSystem   string `yaml:"edit_system"`
	EditPrompt   string `yaml:"edit_prompt"`
}

// SocialPrompts contains the teaser snippet prompts
type SocialPrompts struct {
	TeaserSystem string `yaml:"teaser_system"`
	TeaserPrompt string `yaml:"teaser_prompt"`
}

// LoadPromptsConfig loads prompts configuration from YAML file
func LoadPromptsConfig(configPath string) (*PromptsConfig, error) {
	// Try multiple paths
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/prompts.yaml",
			"./configs/prompts.yaml",
			"/etc/blogpipe/prompts.yaml",
		}
		// Add path relative to executable
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "prompts.yaml"))
		}
		// Add path relative to working directory
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, "configs", "prompts.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	var err error

	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			loadedPath = p
			break
		}
	}

	if data == nil {
		// Return default config if no file found
		fmt.Println("[Config] No prompts.yaml found, using defaults")
		return DefaultPromptsConfig(), nil
	}

	fmt.Printf("[Config] Loading prompts from: %s\n", loadedPath)

	var config PromptsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse prompts.yaml: %w", err)
	}

	// Fill in defaults for empty values
	config.fillDefaults()

	return &config, nil
}

// fillDefaults fills in default values for empty fields
func (c *PromptsConfig) fillDefaults() {
	defaults := DefaultPromptsConfig()

	if c.Pipeline.TopicsSystem == "" {
		c.Pipeline.TopicsSystem = defaults.Pipeline.TopicsSystem
	}
	if c.Pipeline.TopicsPrompt == "" {
		c.Pipeline.TopicsPrompt = defaults.Pipeline.TopicsPrompt
	}
	if c.Pipeline.BriefSystem == "" {
		c.Pipeline.BriefSystem = defaults.Pipeline.BriefSystem
	}
	if c.Pipeline.BriefPrompt == "" {
		c.Pipeline.BriefPrompt = defaults.Pipeline.BriefPrompt
	}
	if c.Pipeline.DraftSystem == "" {
		c.Pipeline.DraftSystem = defaults.Pipeline.DraftSystem
	}
	if c.Pipeline.DraftPrompt == "" {
		c.Pipeline.DraftPrompt = defaults.Pipeline.DraftPrompt
	}
	if c.Pipeline.EditSystem == "" {
		c.Pipeline.EditSystem = defaults.Pipeline.EditSystem
	}
	if c.Pipeline.EditPrompt == "" {
		c.Pipeline.EditPrompt = defaults.Pipeline.EditPrompt
	}

	if c.Social.TeaserSystem == "" {
		c.Social.TeaserSystem = defaults.Social.TeaserSystem
	}
	if c.Social.TeaserPrompt == "" {
		c.Social.TeaserPrompt = defaults.Social.TeaserPrompt
	}
}

// FormatTopicsPrompt formats the topic generation prompt with the topic count
func (c *PromptsConfig) FormatTopicsPrompt(numTopics int) string {
	return strings.ReplaceAll(c.Pipeline.TopicsPrompt, "{{num_topics}}", strconv.Itoa(numTopics))
}

// FormatBriefPrompt formats the content brief prompt with the topic
func (c *PromptsConfig) FormatBriefPrompt(topic string) string {
	return strings.ReplaceAll(c.Pipeline.BriefPrompt, "{{topic}}", topic)
}

// FormatDraftPrompt formats the draft writing prompt with the brief
func (c *PromptsConfig) FormatDraftPrompt(brief string) string {
	return strings.ReplaceAll(c.Pipeline.DraftPrompt, "{{brief}}", brief)
}

// FormatEditPrompt formats the editing prompt with the draft
func (c *PromptsConfig) FormatEditPrompt(draft string) string {
	return strings.ReplaceAll(c.Pipeline.EditPrompt, "{{draft}}", draft)
}

// FormatTeaserPrompt formats the teaser prompt with post details
func (c *PromptsConfig) FormatTeaserPrompt(title, description, link string) string {
	result := c.Social.TeaserPrompt
	result = strings.ReplaceAll(result, "{{title}}", title)
	result = strings.ReplaceAll(result, "{{description}}", description)
	result = strings.ReplaceAll(result, "{{link}}", link)
	return result
}

// DefaultPromptsConfig returns the default prompts configuration
func DefaultPromptsConfig() *PromptsConfig {
	return &PromptsConfig{
		Pipeline: PipelinePrompts{
			TopicsSystem: "You are an expert HCM content strategist.",
			TopicsPrompt: `Generate {{num_topics}} blog topic ideas for a Human Capital Management (HCM) blog aimed at HR leaders and practitioners.

Requirements:
- Topics should be timely and relevant to current HR and workforce trends
- Mix strategic topics (workforce planning, culture) with practical ones (tools, processes)
- Each topic should work as a standalone blog post of 800-1200 words

Return the topics as a numbered list, one topic per line, no explanations.`,
			BriefSystem: "You are a content strategist for HCM blogs.",
			BriefPrompt: `Create a content brief for a blog post on the following topic:

{{topic}}

The brief should include:
- Objective: what the reader should take away
- Target audience
- Key points to cover (3-5 bullet points)
- Suggested structure (sections with one-line descriptions)
- Tone and style notes`,
			DraftSystem: "You are a professional blog writer for HCM topics.",
			DraftPrompt: `Write a complete blog post draft based on the following content brief:

{{brief}}

Requirements:
- 800-1200 words
- Markdown format with a # title and ## section headings
- Practical, grounded tone; avoid buzzword filler
- End with a short takeaway or call to action`,
			EditSystem: "You are an experienced editor for HCM blog content.",
			EditPrompt: `Edit the following blog post draft for clarity, flow, and correctness. Preserve the author's voice and the markdown structure. Tighten wording, fix grammar, and improve transitions. Return only the edited draft.

{{draft}}`,
		},
		Social: SocialPrompts{
			TeaserSystem: "You are a social media copywriter.",
			TeaserPrompt: `Create a short, engaging teaser for this blog post:

Title: {{title}}
Description: {{description}}

The teaser should:
- Be 100-150 characters
- Spark interest
- End with a call to read more
- Include the link: {{link}}`,
		},
	}
}
