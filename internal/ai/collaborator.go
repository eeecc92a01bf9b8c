package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandeepkv93/focusd/internal/model"
)

const maxBreakdownSteps = 5

type StepKind string

const (
	StepWork  StepKind = "work"
	StepBreak StepKind = "break"
)

// Analysis is the collaborator's read on a single task.
type Analysis struct {
	Difficulty   model.Complexity `json:"difficulty"`
	TimeEstimate string           `json:"timeEstimate"`
	XPReward     int              `json:"xpReward"`
	Tips         []string         `json:"tips"`
}

type Step struct {
	Text string   `json:"text"`
	Kind StepKind `json:"type"`
}

const analyzeSystem = `You help people with ADHD start tasks. Reply with a single JSON object and nothing else:
{"difficulty":"low|medium|high","timeEstimate":"short human estimate","xpReward":10-50,"tips":["tip one","tip two"]}`

const breakdownSystem = `You break tasks into small, concrete steps for people with ADHD. Reply with a JSON array of at most 5 items and nothing else:
[{"text":"step","type":"work"},{"text":"short rest","type":"break"}]`

const motivateSystem = `You write one short, warm, non-judgmental sentence of encouragement for someone with ADHD. No quotes, no emoji.`

func (c *Client) Analyze(ctx context.Context, text string, mood model.Mood) (Analysis, error) {
	prompt := fmt.Sprintf("Task: %s\nFeeling about tasks: %s\nEnergy level: %s",
		text, orUnknown(string(mood.Feeling())), orUnknown(string(mood.Energy())))
	reply, err := c.complete(ctx, "analyze", analyzeSystem, prompt)
	if err != nil {
		return Analysis{}, err
	}
	return parseAnalysis(reply)
}

func (c *Client) Breakdown(ctx context.Context, text string) ([]Step, error) {
	reply, err := c.complete(ctx, "breakdown", breakdownSystem, "Task: "+text)
	if err != nil {
		return nil, err
	}
	return parseSteps(reply)
}

func (c *Client) Motivate(ctx context.Context, mood model.Mood) (string, error) {
	prompt := fmt.Sprintf("Feeling about tasks: %s. Energy level: %s.",
		orUnknown(string(mood.Feeling())), orUnknown(string(mood.Energy())))
	reply, err := c.complete(ctx, "motivate", motivateSystem, prompt)
	if err != nil {
		return "", err
	}
	return strings.Trim(reply, "\"' \n"), nil
}

func parseAnalysis(reply string) (Analysis, error) {
	raw, ok := extractJSON(reply, '{', '}')
	if !ok {
		return Analysis{}, fmt.Errorf("%w: no json object", ErrMalformed)
	}
	var out Analysis
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	out.Difficulty = model.Complexity(strings.ToLower(strings.TrimSpace(string(out.Difficulty))))
	if !out.Difficulty.IsValid() {
		return Analysis{}, fmt.Errorf("%w: difficulty %q", ErrMalformed, out.Difficulty)
	}
	if out.XPReward <= 0 {
		out.XPReward = out.Difficulty.DefaultXPReward()
	}
	tips := make([]string, 0, 2)
	for _, tip := range out.Tips {
		if tip = strings.TrimSpace(tip); tip != "" && len(tips) < 2 {
			tips = append(tips, tip)
		}
	}
	out.Tips = tips
	out.TimeEstimate = strings.TrimSpace(out.TimeEstimate)
	return out, nil
}

func parseSteps(reply string) ([]Step, error) {
	raw, ok := extractJSON(reply, '[', ']')
	if !ok {
		return nil, fmt.Errorf("%w: no json array", ErrMalformed)
	}
	var steps []Step
	if err := json.Unmarshal([]byte(raw), &steps); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	out := make([]Step, 0, maxBreakdownSteps)
	for _, s := range steps {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		if s.Kind != StepBreak {
			s.Kind = StepWork
		}
		out = append(out, s)
		if len(out) == maxBreakdownSteps {
			break
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyResponse
	}
	return out, nil
}

// extractJSON returns the outermost open..close span, tolerating prose or
// code fences around it.
func extractJSON(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
