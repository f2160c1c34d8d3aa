package sysfs

// Access is the access mode of an attribute.
type Access int

const (
	ReadOnly Access = iota
	ReadWrite
)

func (a Access) String() string {
	if a == ReadWrite {
		return "rw"
	}
	return "ro"
}

// Device is one concrete device instance: a class template bound to a
// locator and the filesystem it lives on. A nil FS means Host.
type Device struct {
	FS       FileSystem
	Template Template
	Locator  Locator
}

// Dir returns the instance directory.
func (d Device) Dir() string { return d.Template.Expand(d.Locator) }

// Path returns the path of attribute name in this instance.
func (d Device) Path(name string) string { return Resolve(d.Template, d.Locator, name) }

func (d Device) fs() FileSystem {
	if d.FS == nil {
		return Host
	}
	return d.FS
}

// Descriptor is the untyped view of an attribute used by runtime tables.
type Descriptor interface {
	Name() string
	Access() Access
	Kind() ValueKind
	// Value reads the attribute and returns the decoded value.
	Value(d Device) (any, error)
}

// Setter is implemented by writable descriptors only.
type Setter interface {
	Descriptor
	// SetText decodes text with the attribute's codec and writes the result.
	SetText(d Device, text string) error
}

// Attr is a read-only attribute. It has no setter.
type Attr[T any] struct {
	name  string
	codec Codec[T]
}

// NewAttr declares a read-only attribute stored in file name.
func NewAttr[T any](name string, c Codec[T]) Attr[T] {
	return Attr[T]{name: name, codec: c}
}

func (a Attr[T]) Name() string    { return a.name }
func (a Attr[T]) Access() Access  { return ReadOnly }
func (a Attr[T]) Kind() ValueKind { return a.codec.Kind() }
func (a Attr[T]) Codec() Codec[T] { return a.codec }

// Labels returns the accepted labels of an enumerated attribute, nil for
// any other kind.
func (a Attr[T]) Labels() []string {
	if l, ok := a.codec.(labeler); ok {
		return l.Labels()
	}
	return nil
}

// Get reads the attribute of device d.
func (a Attr[T]) Get(d Device) (T, error) {
	return Read(d.fs(), d.Path(a.name), a.codec)
}

// Value implements Descriptor.
func (a Attr[T]) Value(d Device) (any, error) {
	v, err := a.Get(d)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// RWAttr is a read-write attribute.
type RWAttr[T any] struct {
	Attr[T]
}

// NewRWAttr declares a read-write attribute stored in file name.
func NewRWAttr[T any](name string, c Codec[T]) RWAttr[T] {
	return RWAttr[T]{Attr: NewAttr(name, c)}
}

func (a RWAttr[T]) Access() Access { return ReadWrite }

// Set writes v to the attribute of device d.
func (a RWAttr[T]) Set(d Device, v T) error {
	return Write(d.fs(), d.Path(a.name), a.codec, v)
}

// SetText implements Setter. Text is parsed as a value to write, which for
// Selected codecs is the bare label rather than a bracketed list.
func (a RWAttr[T]) SetText(d Device, text string) error {
	parse := a.codec.Decode
	if p, ok := a.codec.(inputParser[T]); ok {
		parse = p.ParseInput
	}
	v, err := parse(text)
	if err != nil {
		return &Error{Kind: KindInvalidValue, Op: "write", Path: d.Path(a.name), Err: err}
	}
	return a.Set(d, v)
}
