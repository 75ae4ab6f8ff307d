package autowire

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// fromDig asks the dig container for a value of type t by invoking a
// synthesized func(t).
func (e *Engine) fromDig(t reflect.Type) (any, error) {
	if e.dig == nil {
		return nil, fmt.Errorf("no dig container configured")
	}

	var out reflect.Value
	fnType := reflect.FuncOf([]reflect.Type{t}, nil, false)
	fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		out = args[0]
		return nil
	})

	if err := e.dig.Invoke(fn.Interface()); err != nil {
		return nil, fmt.Errorf("dig cannot provide %s: %w", TypeName(t), err)
	}

	e.logger.Debug("resolved from dig", zap.String("type", TypeName(t)))

	return out.Interface(), nil
}
