package quizgen

import "fmt"

// DefaultQuestionCount is used when the caller does not ask for a specific
// number of questions.
const DefaultQuestionCount = 5

// difficultyPhrases maps a difficulty level to the descriptive phrase
// embedded in the prompt. Unrecognized levels fall back to the medium
// phrase rather than erroring.
var difficultyPhrases = map[string]string{
	"easy":   "easy questions suitable for beginners",
	"medium": "moderately difficult questions",
	"hard":   "challenging questions that test deep understanding",
}

const defaultDifficultyPhrase = "moderately difficult questions"

// promptTemplate embeds the line-oriented output schema that ParseResponse
// depends on. The field markers here and the markers in parser.go must stay
// in lock-step; drift between them silently breaks parsing.
const promptTemplate = `Based on the following PDF content from a course, generate %d multiple-choice quizzes.

Course: %s
Instructor: %s
PDF Title: %s
Difficulty Level: %s
Number of Questions: %d

PDF Content:
%s

Generate exactly %d quizzes with the following format for EACH quiz:

QUESTION: [The question text]
OPTION_A: [Option A]
OPTION_B: [Option B]
OPTION_C: [Option C]
OPTION_D: [Option D]
CORRECT_ANSWER: [A/B/C/D]

IMPORTANT:
1. Use this EXACT format for each quiz
2. Separate each quiz with a blank line
3. Only output the quizzes, no additional text
4. Each question should test important concepts from the PDF
5. Options should be plausible but only one correct
6. Questions should cover different parts of the content

Now generate %d quizzes:
`

// BuildPrompt formats the extracted text and course metadata into the
// instruction sent to the generative backend. It is a pure function: same
// inputs, same prompt.
func BuildPrompt(text, courseName, instructorName, pdfTitle string, numQuestions int, difficulty string) string {
	if numQuestions <= 0 {
		numQuestions = DefaultQuestionCount
	}
	phrase, ok := difficultyPhrases[difficulty]
	if !ok {
		phrase = defaultDifficultyPhrase
	}
	return fmt.Sprintf(promptTemplate,
		numQuestions, courseName, instructorName, pdfTitle, phrase,
		numQuestions, text, numQuestions, numQuestions)
}
