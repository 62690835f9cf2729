package prompts

import (
	"fmt"
	"strings"
)

// NoResponse is written for an empty answer slot.
const NoResponse = "(No response provided)"

const guidanceTemplate = `Provide comprehensive career guidance based on the following user input: %s

Please include:
1. Suitable career paths that match their skills and interests
2. Specific skills they should develop or improve
3. Industries and companies to explore
4. Next steps they should take
5. Potential challenges and how to overcome them

Make the response practical and actionable.`

const resumeTemplate = `Analyze the following resume and provide comprehensive feedback.

Resume Content:
%s

Please provide:
1. Overall structure and formatting assessment
2. Strengths and positive aspects
3. Areas for improvement with specific suggestions
4. Missing skills or sections that should be added
5. Industry-specific recommendations
6. ATS (Applicant Tracking System) optimization tips
7. A rating from 1-10 with detailed reasoning
8. Specific action items to improve the resume

Make the feedback constructive and actionable.`

const learningPathTemplate = `Create a comprehensive, personalized learning path for the following skills: %s

Please include:
1. Learning roadmap with clear progression steps
2. Recommended courses from platforms like Coursera, Udemy, edX, LinkedIn Learning
3. Free resources and tutorials
4. Books and documentation to read
5. Hands-on projects to build practical experience
6. Certifications worth pursuing
7. Estimated timeline for each learning phase
8. Tips for effective learning and skill development

Structure the response in a clear, step-by-step format.`

const channelsTemplate = `Based on the following skills: %s, recommend 6 of the best YouTube channels for free learning resources.

For each channel, provide:
1. The exact channel name
2. A working YouTube channel URL (format: https://www.youtube.com/@channelname or https://www.youtube.com/c/channelname)
3. A detailed description of what the channel offers related to the skills
4. The type of content they create (tutorials, projects, theory, etc.)
5. Skill level (beginner, intermediate, advanced, or mixed)

Format the response as a numbered list with each channel clearly separated.`

const marketInsightsPrompt = `Generate comprehensive current job market insights including:

1. Top 8 trending job roles in technology and other growing industries
2. Top 8 emerging skills that are in highest demand
3. Salary trends for popular roles (entry, mid, senior levels)
4. Industry growth predictions
5. Remote work trends and impact
6. Skills gap analysis
7. Geographic trends (which regions are hiring most)
8. Future predictions for the next 2-3 years

Present the information in a structured, detailed format with specific data points where possible.`

const networkingTemplate = `Provide comprehensive professional networking suggestions for someone in %s at the %s level with a focus on %s.

Include:
1. Industry-specific networking strategies
2. Key professional associations and organizations to join
3. Important conferences, events, and meetups to attend
4. LinkedIn optimization tips for this industry
5. Online communities and forums to participate in
6. Mentorship opportunities and how to find mentors
7. Personal branding strategies
8. Networking conversation starters and tips
9. Follow-up strategies after networking events
10. Virtual networking best practices

Make the advice specific to the industry and career stage provided.`

const questionsTemplate = `Generate %d unique and highly relevant interview questions for a %s position.

Requirements:
- Interview style: %s
- Difficulty level: %s
- Include a mix of behavioral, technical, and situational questions appropriate for this role
- Questions should be realistic and commonly asked in actual interviews
- Avoid generic questions - make them specific to %s
- Each question should be clear and well-structured

Format: Return only the questions, one per line, without numbering or prefixes.`

func Guidance(freeText string) string {
	return fmt.Sprintf(guidanceTemplate, freeText)
}

func Resume(resumeText string) string {
	return fmt.Sprintf(resumeTemplate, resumeText)
}

func LearningPath(skillsCsv string) string {
	return fmt.Sprintf(learningPathTemplate, skillsCsv)
}

func Channels(skillsCsv string) string {
	return fmt.Sprintf(channelsTemplate, skillsCsv)
}

func MarketInsights() string {
	return marketInsightsPrompt
}

func Networking(industry, careerStage, goal string) string {
	return fmt.Sprintf(networkingTemplate, industry, careerStage, goal)
}

func Questions(jobRole string, count int, style, difficulty string) string {
	return fmt.Sprintf(questionsTemplate, count, jobRole, style, difficulty, jobRole)
}

// Evaluation lists every question with its response. A missing or empty
// response slot is written as NoResponse.
func Evaluation(jobRole string, questions, responses []string) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Evaluate the following mock interview for a %s position and provide comprehensive feedback:\n\n", jobRole))
	prompt.WriteString("Interview Questions and Responses:\n")
	for i, q := range questions {
		answer := NoResponse
		if i < len(responses) && responses[i] != "" {
			answer = responses[i]
		}
		if i > 0 {
			prompt.WriteString("\n")
		}
		prompt.WriteString(fmt.Sprintf("Q%d: %s\nA%d: %s\n", i+1, q, i+1, answer))
	}

	prompt.WriteString("\nPlease provide:\n")
	prompt.WriteString("1. **Overall Performance Assessment** (1-10 score with reasoning)\n")
	prompt.WriteString("2. **Strengths Demonstrated** - Specific examples from responses\n")
	prompt.WriteString("3. **Areas for Improvement** - Detailed, actionable feedback\n")
	prompt.WriteString("4. **Communication Skills Analysis** - Clarity, structure, confidence\n")
	prompt.WriteString(fmt.Sprintf("5. **Role-Specific Evaluation** - How well responses align with %s requirements\n", jobRole))
	prompt.WriteString("6. **STAR Method Usage** - Assessment of Situation, Task, Action, Result structure\n")
	prompt.WriteString("7. **Recommended Improvements** - Specific steps to enhance interview performance\n")
	prompt.WriteString("8. **Follow-up Questions** - 3 additional questions a real interviewer might ask\n")
	prompt.WriteString("9. **Final Recommendations** - Key takeaways and next steps\n\n")
	prompt.WriteString("Make the feedback constructive, specific, and actionable for interview improvement.")

	return prompt.String()
}
