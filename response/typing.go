package response

import "github.com/sycomix/rift/ir"

// typingNames is the set of names exported by python's typing module,
// per PEP 484.
var typingNames = map[string]bool{
	"Any": true, "Union": true, "Callable": true, "Tuple": true,
	"TypeVar": true, "Generic": true, "Type": true,

	"Dict": true, "DefaultDict": true, "List": true, "Set": true,
	"FrozenSet": true,

	"Awaitable": true, "AsyncIterable": true, "AsyncIterator": true,
	"ByteString": true, "Collection": true, "Container": true,
	"ContextManager": true, "Coroutine": true, "Generator": true,
	"Hashable": true, "ItemsView": true, "Iterable": true,
	"Iterator": true, "KeysView": true, "Mapping": true,
	"MappingView": true, "MutableMapping": true, "MutableSequence": true,
	"MutableSet": true, "Sequence": true, "AbstractSet": true,
	"Sized": true,

	"Reversible": true, "SupportsAbs": true, "SupportsComplex": true,
	"SupportsFloat": true, "SupportsInt": true, "SupportsRound": true,
	"SupportsBytes": true,

	"Optional": true, "Text": true, "AnyStr": true, "NamedTuple": true,
	"NewType": true,

	"IO": true, "BinaryIO": true, "TextIO": true,
}

// IsTypingType reports whether name is exported by python's typing
// module.
func IsTypingType(name string) bool {
	return typingNames[name]
}

// TypingNamesFromTypes collects the typing-module names referenced
// anywhere in the given types, recursing through type arguments.
func TypingNamesFromTypes(types []*ir.Type) map[string]bool {
	names := map[string]bool{}
	collectTypingNames(types, names)
	return names
}

func collectTypingNames(types []*ir.Type, names map[string]bool) {
	for _, t := range types {
		if t == nil {
			continue
		}
		collectTypingName(t, names)
	}
}

func collectTypingName(t *ir.Type, names map[string]bool) {
	if t.Name != "" && IsTypingType(t.Name) {
		names[t.Name] = true
	}
	for i := range t.Arguments {
		collectTypingName(&t.Arguments[i], names)
	}
}
