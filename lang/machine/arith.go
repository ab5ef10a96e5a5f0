package machine

// Binary implements Add and Sub. Both require Int operands; any other type is
// a TypeError. x is the first-pushed (left, "beneath") operand, y is the
// second-pushed (top, "right") operand: Sub always computes x - y, never
// y - x.
func Binary(op Opcode, x, y Value) (Value, error) {
	xi, ok := x.(Int)
	if !ok {
		return nil, &TypeError{Op: op.String(), Got: x.Type()}
	}
	yi, ok := y.(Int)
	if !ok {
		return nil, &TypeError{Op: op.String(), Got: y.Type()}
	}

	switch op {
	case Add:
		return xi + yi, nil
	case Sub:
		return xi - yi, nil
	default:
		panic("machine: Binary called with non-arithmetic opcode")
	}
}

// UnaryNegate implements Negate: Int or Number only.
func UnaryNegate(x Value) (Value, error) {
	switch v := x.(type) {
	case Int:
		return -v, nil
	case Number:
		return -v, nil
	default:
		return nil, &TypeError{Op: Negate.String(), Got: x.Type()}
	}
}

// Compare implements Equals, NotEq, Less, More, LessOrEq and MoreOrEq.
// Equals/NotEq require the same tag (mismatched tags are a TypeError here,
// stricter than the general Equals helper used internally for MemoryObj
// semantics). Less/More/LessOrEq/MoreOrEq require both operands to be Int or
// both Number; Number comparison is float-vs-float only, never mixed with
// Int.
func Compare(op Opcode, x, y Value) (Bool, error) {
	switch op {
	case Equals, NotEq:
		if x.Type() != y.Type() {
			return false, &TypeError{Op: op.String(), Got: y.Type()}
		}
		eq, err := Equals(x, y)
		if err != nil {
			return false, err
		}
		if op == NotEq {
			return Bool(!eq), nil
		}
		return Bool(eq), nil

	case Less, More, LessOrEq, MoreOrEq:
		if xi, ok := x.(Int); ok {
			yi, ok := y.(Int)
			if !ok {
				return false, &TypeError{Op: op.String(), Got: y.Type()}
			}
			return compareOrdered(op, int64(xi), int64(yi)), nil
		}
		if xn, ok := x.(Number); ok {
			yn, ok := y.(Number)
			if !ok {
				return false, &TypeError{Op: op.String(), Got: y.Type()}
			}
			return compareOrderedFloat(op, float64(xn), float64(yn)), nil
		}
		return false, &TypeError{Op: op.String(), Got: x.Type()}

	default:
		panic("machine: Compare called with non-comparison opcode")
	}
}

func compareOrdered[T int64 | float64](op Opcode, x, y T) Bool {
	switch op {
	case Less:
		return Bool(x < y)
	case More:
		return Bool(x > y)
	case LessOrEq:
		return Bool(x <= y)
	case MoreOrEq:
		return Bool(x >= y)
	default:
		panic("machine: unreachable")
	}
}

func compareOrderedFloat(op Opcode, x, y float64) Bool {
	return compareOrdered(op, x, y)
}

// LogicalBinary implements And and Or: both operands must be Bool.
func LogicalBinary(op Opcode, x, y Value) (Value, error) {
	xb, ok := x.(Bool)
	if !ok {
		return nil, &TypeError{Op: op.String(), Got: x.Type()}
	}
	yb, ok := y.(Bool)
	if !ok {
		return nil, &TypeError{Op: op.String(), Got: y.Type()}
	}
	switch op {
	case And:
		return xb && yb, nil
	case Or:
		return xb || yb, nil
	default:
		panic("machine: LogicalBinary called with non-logical opcode")
	}
}

// LogicalNot implements Not: Bool only.
func LogicalNot(x Value) (Value, error) {
	xb, ok := x.(Bool)
	if !ok {
		return nil, &TypeError{Op: Not.String(), Got: x.Type()}
	}
	return !xb, nil
}
