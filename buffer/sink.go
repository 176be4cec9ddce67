package buffer

// Sink is the capability every byte-sink implementation satisfies: the
// encoder layer is polymorphic over this interface only.
type Sink interface {
	// Append writes a single byte to the end of the sink.
	Append(b byte) error

	// AppendBytes writes a sequence of bytes to the end of the sink.
	AppendBytes(p []byte) error

	// Size returns the number of bytes written to the sink so far.
	Size() int
}

// DataSink is a Sink that also exposes a read-only view of its backing
// storage. Appendable and Executable implement it; Persistent does not
// — it has no in-memory buffer to view.
type DataSink interface {
	Sink
	// Data returns a view of the bytes written so far. The slice is
	// only valid until the next mutating call on the sink.
	Data() []byte
}
