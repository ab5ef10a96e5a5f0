package machine

// GetIndex implements array lookup or string byte lookup for GetArray.
// Non-container operands and out-of-bounds indices are errors.
func GetIndex(container, index Value) (Value, error) {
	idx, ok := index.(Int)
	if !ok {
		return nil, &TypeError{Op: GetArray.String(), Got: index.Type()}
	}

	m, ok := container.(MemoryObj)
	if !ok {
		return nil, &TypeError{Op: GetArray.String(), Got: container.Type()}
	}
	obj := m.Object()

	i := int(idx)
	switch obj.kind {
	case kindArray:
		if i < 0 || i >= len(obj.arr) {
			return nil, &IndexError{Index: i, Len: len(obj.arr)}
		}
		return obj.arr[i], nil
	case kindString:
		if i < 0 || i >= len(obj.str) {
			return nil, &IndexError{Index: i, Len: len(obj.str)}
		}
		return Char(obj.str[i]), nil
	default:
		return nil, &TypeError{Op: GetArray.String(), Got: container.Type()}
	}
}

// SetIndex implements array element assign or string byte assign for
// SetArray. Array elements are not counted towards a referenced object's
// refcount (only local slots and global entries are); storing a MemoryObj
// into an array/string does not retain it.
func SetIndex(container Value, index Value, value Value) error {
	idx, ok := index.(Int)
	if !ok {
		return &TypeError{Op: SetArray.String(), Got: index.Type()}
	}

	m, ok := container.(MemoryObj)
	if !ok {
		return &TypeError{Op: SetArray.String(), Got: container.Type()}
	}
	obj := m.Object()

	i := int(idx)
	switch obj.kind {
	case kindArray:
		if i < 0 || i >= len(obj.arr) {
			return &IndexError{Index: i, Len: len(obj.arr)}
		}
		obj.arr[i] = value
		return nil
	case kindString:
		if i < 0 || i >= len(obj.str) {
			return &IndexError{Index: i, Len: len(obj.str)}
		}
		c, ok := value.(Char)
		if !ok {
			return &TypeError{Op: SetArray.String(), Got: value.Type()}
		}
		obj.str[i] = byte(c)
		return nil
	default:
		return &TypeError{Op: SetArray.String(), Got: container.Type()}
	}
}
