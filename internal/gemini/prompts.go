package gemini

import "fmt"

// Prompt templates for the content endpoints. The %s placeholder is the
// topic or subtopic.

const (
	factPrompt = `Generate an interesting, surprising fact about %s.
Make it engaging and educational. Include why this fact is important or fascinating.
Keep it under 150 words. Format as a single engaging paragraph.`

	storyPrompt = `Tell a brief, captivating story related to %s.
It could be historical, biographical, or about a discovery/invention.
Make it narrative and engaging. Keep it under 200 words.`

	questionPrompt = `Create a thought-provoking question about %s followed by
an insightful explanation of the answer. Make it intellectually stimulating.
Keep it under 150 words.`

	tipPrompt = `Provide a practical, actionable tip or insight related to %s.
Make it something someone can apply or think about in their daily life.
Keep it under 100 words.`

	challengePrompt = `Present an interesting challenge or puzzle related to %s.
Include the solution and explanation. Make it engaging and educational.
Keep it under 180 words.`

	curriculumPrompt = `You are a Computer Science curriculum designer. Generate a comprehensive curriculum for "%s".

Create a structured list of 8-10 major concepts that a student should learn, ordered from beginner to advanced.
Each concept should be clear, specific, and build upon previous concepts.

Format your response as a JSON array of concept objects with this structure:
[
  {"title": "Concept Name", "level": "beginner|intermediate|advanced", "description": "Brief 1-sentence description"},
  ...
]

Return ONLY the JSON array, no other text.`

	summaryPrompt = `Write a brief, engaging one-paragraph summary about %s.
Make it informative and captivating in 2-3 sentences (max 60 words).
Focus on why it's interesting and what makes it worth learning about.`
)

var contentPrompts = map[string]string{
	"fact":      factPrompt,
	"story":     storyPrompt,
	"question":  questionPrompt,
	"tip":       tipPrompt,
	"challenge": challengePrompt,
}

// ContentPrompt renders the prompt for a content type; unknown types fall
// back to "fact".
func ContentPrompt(contentType, topic string) string {
	tpl, ok := contentPrompts[contentType]
	if !ok {
		tpl = factPrompt
	}
	return fmt.Sprintf(tpl, topic)
}

func CurriculumPrompt(subtopic string) string { return fmt.Sprintf(curriculumPrompt, subtopic) }

func SummaryPrompt(topic string) string { return fmt.Sprintf(summaryPrompt, topic) }
