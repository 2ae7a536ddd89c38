package bind_group_provider

// BufferWrite is a pending queue write of Data into the buffer bound at Binding on Provider.
// Writes whose provider has no buffer at that binding are skipped by the renderer.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// UniformWrite replaces the whole uniform at binding 0, the slot camera uniforms use.
func UniformWrite(p BindGroupProvider, data []byte) BufferWrite {
	return BufferWrite{Provider: p, Binding: 0, Data: data}
}
