// Package transcript separates the tool output of one conversational turn
// from the natural-language reply inside the raw captured text.
package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	funcMarker    = "FUNC:"
	funcDelim     = "FUNCTION_OUTPUT:"
	naturalDelim  = "NATURAL_OUTPUT:"
	noteReadToken = "NOTE_CONTENT_FOR_PROCESSING"

	// Apology spoken when a turn produced nothing usable.
	Apology = "I apologize, but I seem to be having trouble processing that request. Could you try again?"
)

// Noise markers dropped from a raw transcript before classification.
var noiseMarkers = []string{
	">>>",
	"<<<",
	"Stats:",
	"WARNING",
	"Bye, hope this was useful!",
}

var ansiRe = regexp.MustCompile(`\x1B(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// StripANSI removes terminal color and formatting escape sequences.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// Partition de-noises a raw turn transcript and, when at least one FUNC:
// line is present, frames the result with FUNCTION_OUTPUT/NATURAL_OUTPUT
// delimiters for the second-stage Parse. Without a FUNC: line it returns
// the joined natural-language lines as-is.
func Partition(raw string) string {
	var funcLines, naturalLines []string

	for _, line := range strings.Split(StripANSI(raw), "\n") {
		if isNoise(line) {
			continue
		}
		if strings.Contains(line, funcMarker) {
			funcLines = append(funcLines, line)
		} else {
			naturalLines = append(naturalLines, line)
		}
	}

	if len(funcLines) > 0 {
		return funcDelim + strings.Join(funcLines, "\n") +
			"\n" + naturalDelim + strings.Join(naturalLines, "\n")
	}
	return strings.Join(naturalLines, "\n")
}

func isNoise(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	for _, m := range noiseMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// Parse consumes the combined string produced by Partition and returns the
// natural-language reply plus the tool output. ok reports whether a tool
// output was present. An empty natural segment yields the fixed apology.
func Parse(combined string) (natural, function string, ok bool) {
	if strings.TrimSpace(combined) == "" {
		return Apology, "", false
	}

	if strings.Contains(combined, funcDelim) {
		parts := strings.SplitN(combined, naturalDelim, 2)
		if len(parts) == 2 {
			funcPart := strings.TrimSpace(strings.Replace(parts[0], funcDelim, "", 1))
			naturalPart := strings.TrimSpace(parts[1])

			// A turn with nothing conversational to say is treated as a
			// failed turn: apology only, tool output discarded.
			if naturalPart == "" {
				return Apology, "", false
			}

			// Note reads carry the file body back for the model; the user
			// only hears how much was retrieved.
			if strings.Contains(funcPart, noteReadToken) {
				content := strings.Replace(funcPart, funcMarker+" "+noteReadToken+"\n", "", 1)
				return naturalPart, fmt.Sprintf("Note content retrieved: %d characters", len(content)), true
			}

			funcPart = strings.TrimSpace(strings.ReplaceAll(funcPart, funcMarker, ""))
			return naturalPart, funcPart, true
		}
	}

	return combined, "", false
}

// Side-effect confirmation sentences recognized by ExtractSideEffect, in
// match priority order.
var sideEffectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)RGB lights changed to:.*$`),
	regexp.MustCompile(`(?im)Now playing:.*$`),
	regexp.MustCompile(`(?im)Humor level changed to:.*$`),
}

// ExtractSideEffect pulls a known side-effect confirmation out of text that
// never went through the delimiter framing, e.g. a direct command answered
// without the agent loop. The first matching pattern wins; unmatched text
// passes through unchanged.
func ExtractSideEffect(s string) (natural, function string, ok bool) {
	for _, re := range sideEffectPatterns {
		if m := re.FindString(s); m != "" {
			return strings.TrimSpace(re.ReplaceAllString(s, "")), m, true
		}
	}
	return s, "", false
}
