// Package safety screens free text for signs of distress so the app can
// surface support resources. It never blocks what the user was doing.
package safety

import (
	"regexp"
	"strings"
)

var phrases = []string{
	"kill myself", "end my life", "end it all", "end everything",
	"want to die", "not want to live",
	"hurt myself", "self harm", "cut myself", "harm myself",
	"hang myself", "hanging myself",
	"hurt someone", "harm someone",
	"no reason to live", "better off dead", "can't go on", "can't do this anymore",
	"medication abuse", "substance abuse",
	"no point", "nothing matters", "give up", "too much",
	"last time", "never see", "won't be here",
}

// Whole words only, so "coding" never matches "die".
var words = []string{
	"suicide", "suicidal", "die", "death", "dying", "dead",
	"hang", "kill", "killing", "murder", "murdering",
	"violence", "violent", "attack", "assault",
	"drugs", "drug", "overdose", "overdosing",
	"smoking", "smoke", "cigarette", "cigarettes", "nicotine",
	"alcohol", "drinking", "drunk", "alcoholic",
	"addiction", "addicted", "relapse", "using",
	"pills", "worthless", "hopeless",
	"overwhelmed", "drowning", "suffocating",
	"goodbye", "final",
}

var patterns = []*regexp.Regexp{
	regexp.MustCompile(`i (want|wish|hope) (i was|to be) (dead|gone|not here)`),
	regexp.MustCompile(`(i|i'm) (going to|gonna) (kill|hurt|end|murder|hang) (myself|my life|someone|anyone)`),
	regexp.MustCompile(`(life|everything) (is|has) (no|not) (point|meaning|purpose)`),
	regexp.MustCompile(`(i|i'm) (worthless|useless|hopeless|broken)`),
	regexp.MustCompile(`(can't|cannot) (do this|go on|handle|take) (anymore|any more)`),
	regexp.MustCompile(`(want|going|gonna) to (kill|murder|hurt|harm|hang) (myself|someone|anyone|people)`),
	regexp.MustCompile(`(using|abusing|taking) (drugs|drug|pills|substances)`),
	regexp.MustCompile(`(addicted|addiction) (to|with)`),
	regexp.MustCompile(`\bod\b.*(overdose|drug)`),
}

var wordPattern = buildWordPattern(words)

func buildWordPattern(ws []string) *regexp.Regexp {
	quoted := make([]string, len(ws))
	for i, w := range ws {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
}

var apostrophes = strings.NewReplacer("’", "'", "‘", "'")

// Concerning reports whether text contains distress, self-harm, violence or
// substance-use language.
func Concerning(text string) bool {
	lower := apostrophes.Replace(strings.ToLower(strings.TrimSpace(text)))
	if lower == "" {
		return false
	}
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	if wordPattern.MatchString(lower) {
		return true
	}
	for _, p := range patterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

type Resource struct {
	Name        string
	Number      string
	Email       string
	Website     string
	Available   string
	Description string
}

type Support struct {
	Message   string
	Resources []Resource
}

func SupportResources() Support {
	return Support{
		Message: "You are not alone. There are people who want to help and support you.",
		Resources: []Resource{
			{
				Name:        "Befrienders Malaysia",
				Number:      "03-7627 2929",
				Email:       "sam@befrienders.org.my",
				Website:     "https://www.befrienders.org.my",
				Available:   "24/7",
				Description: "Free and confidential emotional support",
			},
			{
				Name:        "Befrienders Kuching",
				Number:      "082-242800",
				Website:     "https://befrienderskch.org.my",
				Available:   "6:30 PM - 9:30 PM daily",
				Description: "Available in Kuching area",
			},
		},
	}
}
