// Package commands parses the palette's one-line commands and dispatches
// them to handlers.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/focusd/internal/model"
)

type Type string

const (
	TypeAdd       Type = "add"
	TypeDone      Type = "done"
	TypeDelete    Type = "delete"
	TypeSnooze    Type = "snooze"
	TypeWake      Type = "wake"
	TypeMove      Type = "move"
	TypeMood      Type = "mood"
	TypeDump      Type = "dump"
	TypeBreakdown Type = "breakdown"
)

// Types lists every command in palette order.
var Types = []Type{TypeAdd, TypeDone, TypeDelete, TypeSnooze, TypeWake, TypeMove, TypeMood, TypeDump, TypeBreakdown}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type TextArgs struct {
	Text string
}

// TargetArgs names a task by its 1-based position in the shown list.
type TargetArgs struct {
	Index int
}

type SnoozeArgs struct {
	Index int
	// Minutes is 0 when omitted.
	Minutes int
}

type MoveArgs struct {
	Index int
	// Position is 1-based.
	Position int
}

type MoodArgs struct {
	Feeling model.TaskFeeling
	Energy  model.EnergyLevel
}

type Command struct {
	Type   Type
	Raw    string
	Text   *TextArgs
	Target *TargetArgs
	Snooze *SnoozeArgs
	Move   *MoveArgs
	Mood   *MoodArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := Type(strings.ToLower(parts[0]))
	args := parts[1:]

	switch head {
	case TypeAdd, TypeDump:
		return parseText(input, head, args)
	case TypeDone, TypeDelete, TypeWake, TypeBreakdown:
		return parseTarget(input, head, args)
	case TypeSnooze:
		return parseSnooze(input, args)
	case TypeMove:
		return parseMove(input, args)
	case TypeMood:
		return parseMood(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseText(raw string, typ Type, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" && typ == TypeAdd {
		return Command{}, invalid("add requires task text")
	}
	return Command{Type: typ, Raw: raw, Text: &TextArgs{Text: text}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires a task number", typ)
	}
	n, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Index: n}}, nil
}

func parseSnooze(raw string, args []string) (Command, error) {
	if len(args) < 1 || len(args) > 2 {
		return Command{}, invalid("snooze requires a task number and optional minutes")
	}
	n, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	minutes := 0
	if len(args) == 2 {
		m, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(args[1]), "m"))
		if err != nil || m <= 0 {
			return Command{}, invalid("snooze minutes must be a positive number, got %q", args[1])
		}
		minutes = m
	}
	return Command{Type: TypeSnooze, Raw: raw, Snooze: &SnoozeArgs{Index: n, Minutes: minutes}}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("move requires a task number and a position")
	}
	n, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	pos, err := parseIndex(args[1])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{Index: n, Position: pos}}, nil
}

func parseMood(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("mood requires a feeling and an energy level")
	}
	feeling := model.TaskFeeling(strings.ToLower(args[0]))
	if !feeling.IsValid() {
		return Command{}, invalid("feeling must be overwhelmed or structure, got %q", args[0])
	}
	energy := model.EnergyLevel(strings.ToLower(args[1]))
	if !energy.IsValid() {
		return Command{}, invalid("energy must be low, moderate or high, got %q", args[1])
	}
	return Command{Type: TypeMood, Raw: raw, Mood: &MoodArgs{Feeling: feeling, Energy: energy}}, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || n < 1 {
		return 0, invalid("task number must be 1 or more, got %q", s)
	}
	return n, nil
}
