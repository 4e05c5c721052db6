package form

import (
	"strconv"
	"strings"
)

const promptRules = `Rules:
1. Output a single valid JSON object and nothing else.
2. Use exactly the keys listed above. Do not add, rename or drop keys.
3. If a field is not mentioned in the transcript, use an empty string "".
4. If the transcript is not in English, translate the values to English.
5. Write ages and counts as digits only (e.g. "42", not "forty-two").
6. Write dates as YYYY-MM-DD.
7. Write phone numbers as digits only, without spaces or symbols.
8. Keep values short and factual. Do not add commentary or explanations.
9. Do NOT answer yes/no questions and do not infer yes/no values; those are filled manually.
10. Do not wrap the output in markdown or code fences.`

// Prompt renders the extraction instruction for one transcript.
func Prompt(schema Schema, transcript string) string {
	var b strings.Builder

	b.WriteString("You are an expert medical scribe specializing in dental forms. ")
	b.WriteString("Read the transcript of a conversation between a doctor and a patient and extract the information needed to fill the form below.\n\n")

	b.WriteString("Form fields (key: description):\n")

	for _, f := range schema {
		b.WriteString("- ")
		b.WriteString(strconv.Quote(f.Name))
		b.WriteString(": ")
		b.WriteString(strconv.Quote(f.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(promptRules)
	b.WriteString("\n\n")

	b.WriteString("Transcript:\n---\n")
	b.WriteString(transcript)
	b.WriteString("\n---\n\n")

	b.WriteString("Now produce the JSON object only.")

	return b.String()
}
