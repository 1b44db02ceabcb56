package schema

// Schema is a named collection of fields describing one configuration object
// type, together with its list-view and form-section layout. Schemas are
// assembled through the staged builder and never mutated afterwards.
type Schema struct {
	Key          string
	Singular     string
	Plural       string
	KeyPrefix    string
	KeySuffix    string
	ReloadPrefix string
	List         ListView
	Sections     []Section

	fields []Field
	index  map[string]int
}

// Fields returns the declared fields in declaration order, which is also the
// default rendering order. Callers must not modify the returned slice.
func (s *Schema) Fields() []Field { return s.fields }

// Field looks up one field by id.
func (s *Schema) Field(id string) (Field, bool) {
	i, ok := s.index[id]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Has reports whether the schema declares the given field id.
func (s *Schema) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// IDField returns the conventional identifier field when the schema declares
// one. Singleton settings schemas have none.
func (s *Schema) IDField() (Field, bool) {
	return s.Field(IDFieldName)
}

// Registry maps schema keys to their descriptors. It is produced once by the
// staged builder and is read-only from then on, so any number of validation
// and visibility evaluations may share it without synchronization.
type Registry struct {
	keys    []string
	schemas map[string]*Schema
}

// Schema looks up one schema by key.
func (r *Registry) Schema(key string) (*Schema, bool) {
	s, ok := r.schemas[key]
	return s, ok
}

// Keys returns the schema keys in registration order.
func (r *Registry) Keys() []string { return r.keys }

// Len reports how many schemas the registry holds.
func (r *Registry) Len() int { return len(r.keys) }
