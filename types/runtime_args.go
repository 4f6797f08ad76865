package types

// RuntimeArg is one named argument of an executable item. The receiving
// contract looks arguments up by name, but their serialization order is
// fixed by insertion order and feeds the body hash.
type RuntimeArg struct {
	Name  string
	Value CLValue
}

// RuntimeArgs is an insertion-ordered argument list.
type RuntimeArgs struct {
	args []RuntimeArg
}

// NewRuntimeArgs creates an empty argument list.
func NewRuntimeArgs() *RuntimeArgs {
	return &RuntimeArgs{}
}

// Insert appends a named argument and returns the list for chaining.
// Names are not deduplicated; inserting a name twice serializes it twice.
func (a *RuntimeArgs) Insert(name string, value CLValue) *RuntimeArgs {
	a.args = append(a.args, RuntimeArg{Name: name, Value: value})
	return a
}

// Get returns the first argument with the given name.
func (a *RuntimeArgs) Get(name string) (CLValue, bool) {
	for _, arg := range a.args {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return CLValue{}, false
}

// Len returns the number of arguments.
func (a *RuntimeArgs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.args)
}

// List returns the arguments in insertion order.
func (a *RuntimeArgs) List() []RuntimeArg {
	if a == nil {
		return nil
	}
	out := make([]RuntimeArg, len(a.args))
	copy(out, a.args)
	return out
}

// Bytes serializes the list: a u32 count, then per argument the
// length-prefixed name, the length-prefixed value payload, and the value's
// self-delimiting type descriptor.
func (a *RuntimeArgs) Bytes() []byte {
	count := 0
	if a != nil {
		count = len(a.args)
	}
	out := u32LE(uint32(count))
	if a == nil {
		return out
	}
	for _, arg := range a.args {
		out = append(out, stringBytes(arg.Name)...)
		out = append(out, u32LE(uint32(len(arg.Value.Bytes)))...)
		out = append(out, arg.Value.Bytes...)
		out = append(out, arg.Value.ClType.Bytes()...)
	}
	return out
}
