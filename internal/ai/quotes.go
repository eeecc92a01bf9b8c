package ai

// FallbackQuotes are shown when no collaborator is configured or it fails.
var FallbackQuotes = []string{
	"Small steps forward are still progress. You've got this!",
	"Every completed task is a victory, no matter how small.",
	"Your pace is perfect. Keep moving forward.",
	"Breaking things down isn't weakness, it's wisdom.",
	"Today's small win is tomorrow's foundation.",
}

// FallbackQuote picks a quote by index, wrapping around.
func FallbackQuote(i int) string {
	if i < 0 {
		i = -i
	}
	return FallbackQuotes[i%len(FallbackQuotes)]
}
