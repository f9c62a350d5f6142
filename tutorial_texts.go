package main

// Text content for the tutorial dialog, separated from the UI code for
// easier maintenance.

// Window and header texts
const (
	tutorialWindowTitle = "Welcome to LandTalk"
	tutorialSubtitle    = "Your Landscape Talks With You - using AI"
	tutorialDescription = "This tutorial will help you get started with LandTalk. " +
		"Learn how to analyze map areas using AI and discover tips for better results."

	tutorialDontShowAgainText = "Don't show this tutorial again"
)

// Tab names in display order
var tutorialTabNames = []string{"Getting Started", "Tips and Tricks", "FAQ"}

const tutorialGettingStarted = `Step 1: Set Up Your API Keys

Before you can use LandTalk, you need to register with Google Gemini
and/or OpenAI and then get an API key:

  - Google Gemini: visit Google AI Studio
    (https://aistudio.google.com/apikey) to get your free API key
  - OpenAI GPT: visit the OpenAI Platform
    (https://platform.openai.com/api-keys) to get your API key

Once you have your key, press ctrl+g (Gemini) or ctrl+o (OpenAI) to
enter it. Recommendation: try both AI providers to see which one works
best for your use case.

Step 2: Basic Workflow

The basic workflow for using LandTalk is simple:

  1. Capture an area: launch landtalk with the image of the map area
     you want to analyze
  2. Add a message (optional): explain in more detail what you want to
     analyze in the text box
  3. Choose AI model (optional): press ctrl+p to select from the Gemini
     or GPT models
  4. Analyze: press Enter to send your request to the AI
  5. View results: the AI response and detected features appear in the
     results pane

Step 3: Understanding Results

When the AI analyzes your map area, it will:

  - List detected features: each feature is numbered and labeled
  - Show confidence scores: each feature includes a confidence
    percentage (0-100)
  - Provide explanations: the AI explains why it identified each
    feature
  - Filter by confidence: features below the configured threshold are
    dropped from the list`

const tutorialTipsTricks = `Tips for Better Results

To get the best results from LandTalk:

  - Adjust confidence threshold: filter out low-confidence detections
    if needed. 80% makes a good starting point but try different values
  - Adjust resolution: higher resolution images work better for
    detailed analysis
  - Add messages (prompts): asking more specifically for features you
    are interested in will guide the AI (e.g., 'Focus on medieval
    features')
  - Try different models: Gemini and GPT may give different results, so
    often it is worth trying several models
  - Have a longer chat: discuss the AI response across several chat
    steps to refine the results

Customizing AI Behavior with Rules

One of LandTalk's most powerful features is the ability to customize
how the AI analyzes your maps:

  - Edit instructions: modify the rules (called "system prompt") in
    systemprompt.txt in the state directory to change how the AI
    behaves across all your requests
  - Specialize analysis: add instructions for specific types of
    analysis. If you do not work in archaeology, change the text so
    that it matches your interests
  - Add context: include information about your specific use case or
    region

Example customizations:

  - 'Always identify building types and construction materials'
  - 'Focus on environmental features like water bodies and vegetation'
  - 'Provide detailed explanations for each detected feature'
  - 'Use specific terminology for urban planning analysis'`

const tutorialFAQ = `Q1: What types of features can LandTalk detect?
LandTalk can detect a wide variety of landscape features including
buildings, roads, water bodies, vegetation, agricultural areas,
infrastructure, and more. The specific features depend on the AI model
used and your custom rules.

Q2: How accurate are the AI detections?
Accuracy varies depending on image quality, feature clarity, and AI
model. Each detection includes a confidence score. You can adjust the
confidence threshold to show only high-confidence detections.

Q3: Can I use both Gemini and GPT models?
Yes! You can switch between different AI models with the model picker.
Each model may provide different insights and detection capabilities.

Q4: How do I get better results?
For better results: select clear, well-defined areas; use appropriate
resolution settings; be specific in your prompts; try different AI
models; and customize the rules for your specific use case.

Q5: What if the AI doesn't detect what I'm looking for?
Try adjusting your prompt to be more specific, lower the confidence
threshold, try a different AI model, or customize the rules to focus on
the features you're interested in.

Q6: Can I analyze the same area multiple times?
Yes! You can continue conversations about the same area by adding new
messages. The AI will remember the previous context and build upon it.

Q7: How do I customize the AI behavior?
Edit systemprompt.txt in the state directory to change the system
prompt. This allows you to customize how the AI analyzes your maps,
what features to focus on, and how to structure the output.

Q8: What if I get an API key error?
Make sure you've entered a valid API key. Check that your API key has
the necessary permissions and that you have sufficient credits/quota
remaining.`

// tutorialTabContent returns the body text for a tab index
func tutorialTabContent(tab int) string {
	switch tab {
	case 0:
		return tutorialGettingStarted
	case 1:
		return tutorialTipsTricks
	case 2:
		return tutorialFAQ
	}
	return ""
}
