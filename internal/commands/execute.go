package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add       func(TextArgs) (Result, error)
	Done      func(TargetArgs) (Result, error)
	Delete    func(TargetArgs) (Result, error)
	Snooze    func(SnoozeArgs) (Result, error)
	Wake      func(TargetArgs) (Result, error)
	Move      func(MoveArgs) (Result, error)
	Mood      func(MoodArgs) (Result, error)
	Dump      func(TextArgs) (Result, error)
	Breakdown func(TargetArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		return call(cmd.Type, handlers.Add, cmd.Text)
	case TypeDone:
		return call(cmd.Type, handlers.Done, cmd.Target)
	case TypeDelete:
		return call(cmd.Type, handlers.Delete, cmd.Target)
	case TypeSnooze:
		return call(cmd.Type, handlers.Snooze, cmd.Snooze)
	case TypeWake:
		return call(cmd.Type, handlers.Wake, cmd.Target)
	case TypeMove:
		return call(cmd.Type, handlers.Move, cmd.Move)
	case TypeMood:
		return call(cmd.Type, handlers.Mood, cmd.Mood)
	case TypeDump:
		return call(cmd.Type, handlers.Dump, cmd.Text)
	case TypeBreakdown:
		return call(cmd.Type, handlers.Breakdown, cmd.Target)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func call[A any](typ Type, fn func(A) (Result, error), args *A) (Result, error) {
	if fn == nil {
		return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", typ)}
	}
	if args == nil {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s command has no arguments", typ)}
	}
	return fn(*args)
}
